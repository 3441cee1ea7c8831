package model

import (
	"reflect"
	"testing"
	"time"
)

func TestNewStatusSnapshot(t *testing.T) {
	s := NewStatusSnapshot("gdrive")

	for name, value := range map[string]string{
		"Total": s.Total, "Used": s.Used, "Free": s.Free,
		"Trash": s.Trash, "Other": s.Other, "Objects": s.Objects,
	} {
		if value != UnknownValue {
			t.Errorf("%s = %q, expected %q", name, value, UnknownValue)
		}
	}
	if s.LastUpdatedText() != NeverUpdated {
		t.Errorf("LastUpdatedText() = %q, expected %q", s.LastUpdatedText(), NeverUpdated)
	}
	if s.HasError() {
		t.Error("new snapshot should not have an error")
	}
	if s.FetchStatus() != FetchStatusPending {
		t.Errorf("FetchStatus() = %s, expected %s", s.FetchStatus(), FetchStatusPending)
	}
}

func TestStatusSnapshot_LastUpdatedText(t *testing.T) {
	s := NewStatusSnapshot("gdrive")
	s.LastUpdated = time.Date(2024, 1, 15, 14, 30, 0, 0, time.Local)

	expected := "2024-01-15 14:30:00"
	if s.LastUpdatedText() != expected {
		t.Errorf("LastUpdatedText() = %q, expected %q", s.LastUpdatedText(), expected)
	}
	if s.FetchStatus() != FetchStatusUpdated {
		t.Errorf("FetchStatus() = %s, expected %s", s.FetchStatus(), FetchStatusUpdated)
	}
}

func TestStatusSnapshot_SummaryLines(t *testing.T) {
	s := NewStatusSnapshot("gdrive")
	s.Total, s.Used, s.Free = "15 GiB", "3 GiB", "12 GiB"

	expected := []string{"Total: 15 GiB", "Used: 3 GiB", "Free: 12 GiB"}
	if got := s.SummaryLines(); !reflect.DeepEqual(got, expected) {
		t.Errorf("SummaryLines() = %v, expected %v", got, expected)
	}

	s.Objects = "1234"
	expected = append(expected, "Objects: 1234")
	if got := s.SummaryLines(); !reflect.DeepEqual(got, expected) {
		t.Errorf("SummaryLines() with objects = %v, expected %v", got, expected)
	}
}

func TestStatusSnapshot_ErrorStatus(t *testing.T) {
	s := NewStatusSnapshot("gdrive")
	s.Error = "Command timed out"

	if !s.HasError() {
		t.Error("HasError() = false, expected true")
	}
	if s.FetchStatus() != FetchStatusError {
		t.Errorf("FetchStatus() = %s, expected %s", s.FetchStatus(), FetchStatusError)
	}
}
