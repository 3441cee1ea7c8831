package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Known drive types. Any other value is rendered with the generic icon.
const (
	DriveTypeGoogleDrive = "googledrive"
	DriveTypeOneDrive    = "onedrive"
	DriveTypeDropbox     = "dropbox"
	DriveTypeProtonDrive = "protondrive"
	DriveTypeUnknown     = "unknown"
)

// RemoteEntry is the persisted record about one rclone remote
type RemoteEntry struct {
	RemoteName  string `toml:"remote_name"`  // rclone remote id, without trailing colon
	DisplayName string `toml:"display_name"` // user-editable label
	DriveType   string `toml:"drive_type"`   // picks icon and color only
	Enabled     bool   `toml:"enabled"`
}

// NewRemoteEntry creates an enabled entry with a label and type guessed from the remote name
func NewRemoteEntry(remoteName string) RemoteEntry {
	name := NormalizeRemoteName(remoteName)
	return RemoteEntry{
		RemoteName:  name,
		DisplayName: GuessDisplayName(name),
		DriveType:   GuessDriveType(name),
		Enabled:     true,
	}
}

// Label returns the display name, falling back to the remote name
func (e RemoteEntry) Label() string {
	if strings.TrimSpace(e.DisplayName) != "" {
		return e.DisplayName
	}
	return e.RemoteName
}

// NormalizeRemoteName trims spaces and the trailing colon rclone prints after remote names
func NormalizeRemoteName(remoteName string) string {
	return strings.TrimRight(strings.TrimSpace(remoteName), ":")
}

// GuessDisplayName derives a readable label from a remote name, e.g. "work-onedrive" -> "Work"
func GuessDisplayName(remoteName string) string {
	name := strings.ReplaceAll(remoteName, "-onedrive", "")
	name = strings.ReplaceAll(name, "-gdrive", "")
	name = strings.ReplaceAll(name, "-drive", "")
	name = strings.ReplaceAll(name, ":", "")
	name = strings.ReplaceAll(name, "-", " ")
	return cases.Title(language.Und).String(name)
}

// GuessDriveType infers the provider from common substrings of the remote name
func GuessDriveType(remoteName string) string {
	lower := strings.ToLower(remoteName)
	switch {
	case strings.Contains(lower, "gdrive") || strings.Contains(lower, "googledrive"):
		return DriveTypeGoogleDrive
	case strings.Contains(lower, "onedrive"):
		return DriveTypeOneDrive
	case strings.Contains(lower, "dropbox"):
		return DriveTypeDropbox
	case strings.Contains(lower, "protondrive"):
		return DriveTypeProtonDrive
	default:
		return DriveTypeUnknown
	}
}
