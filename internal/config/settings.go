package config

import (
	"strings"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences. These are per-machine UI preferences
// kept out of the shared TOML file.
const (
	KeyLanguage     = "app_language"
	KeyRcloneBinary = "rclone_binary"
	KeyDebugLogging = "debug_logging"
)

// Default values
const (
	DefaultLanguage     = "system"
	DefaultRcloneBinary = "rclone"
)

// Settings manages UI preferences stored by Fyne
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetRcloneBinary returns the rclone executable to run.
// GUI apps started from a launcher often lack the shell PATH, so users can pin it.
func (s *Settings) GetRcloneBinary() string {
	return s.app.Preferences().StringWithFallback(KeyRcloneBinary, DefaultRcloneBinary)
}

// SetRcloneBinary sets the rclone executable; blank restores the default
func (s *Settings) SetRcloneBinary(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultRcloneBinary
	}
	s.app.Preferences().SetString(KeyRcloneBinary, path)
}

// GetDebugLogging reports whether debug entries should be logged
func (s *Settings) GetDebugLogging() bool {
	return s.app.Preferences().Bool(KeyDebugLogging)
}

// SetDebugLogging turns debug logging on or off
func (s *Settings) SetDebugLogging(on bool) {
	s.app.Preferences().SetBool(KeyDebugLogging, on)
}
