package model

import (
	"fmt"
	"time"
)

// Placeholders for values that have not been reported
const (
	UnknownValue    = "Unknown"
	NeverUpdated    = "Never"
	TimestampLayout = "2006-01-02 15:04:05"
)

// StatusSnapshot is one point-in-time usage report for a remote.
// A new snapshot replaces the previous one wholesale.
type StatusSnapshot struct {
	RemoteName  string
	Total       string
	Used        string
	Free        string
	Trash       string
	Other       string
	Objects     string
	LastUpdated time.Time // zero if never updated
	Error       string    // empty on success
	Raw         string    // unparsed rclone output
}

// NewStatusSnapshot returns a snapshot with every field set to its placeholder
func NewStatusSnapshot(remoteName string) StatusSnapshot {
	return StatusSnapshot{
		RemoteName: remoteName,
		Total:      UnknownValue,
		Used:       UnknownValue,
		Free:       UnknownValue,
		Trash:      UnknownValue,
		Other:      UnknownValue,
		Objects:    UnknownValue,
	}
}

// HasError reports whether the refresh that produced this snapshot failed
func (s StatusSnapshot) HasError() bool {
	return s.Error != ""
}

// LastUpdatedText returns the timestamp in the persisted layout, or "Never"
func (s StatusSnapshot) LastUpdatedText() string {
	if s.LastUpdated.IsZero() {
		return NeverUpdated
	}
	return s.LastUpdated.Format(TimestampLayout)
}

// SummaryLines returns the usage lines shown on a card
func (s StatusSnapshot) SummaryLines() []string {
	lines := []string{
		fmt.Sprintf("Total: %s", s.Total),
		fmt.Sprintf("Used: %s", s.Used),
		fmt.Sprintf("Free: %s", s.Free),
	}
	if s.Objects != "" && s.Objects != UnknownValue {
		lines = append(lines, fmt.Sprintf("Objects: %s", s.Objects))
	}
	return lines
}

// FetchStatus derives the card refresh state from the snapshot
func (s StatusSnapshot) FetchStatus() FetchStatus {
	switch {
	case s.HasError():
		return FetchStatusError
	case s.LastUpdated.IsZero():
		return FetchStatusPending
	default:
		return FetchStatusUpdated
	}
}
