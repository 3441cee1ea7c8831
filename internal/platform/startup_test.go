package platform

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestStartupManager_Linux(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "autostart")
	m := NewStartupManagerFor(OSLinux, dir, "/opt/cloud-drives/cloud-drives", nil)

	if m.IsEnabled() {
		t.Fatal("expected disabled before enabling")
	}

	if err := m.Set(context.Background(), true); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	if !m.IsEnabled() {
		t.Fatal("expected enabled after Set(true)")
	}
	if m.Path() != filepath.Join(dir, AutostartEntryFile) {
		t.Errorf("unexpected path %s", m.Path())
	}

	data, err := os.ReadFile(m.Path())
	if err != nil {
		t.Fatalf("failed to read desktop entry: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, `Exec="/opt/cloud-drives/cloud-drives"`) {
		t.Errorf("desktop entry missing Exec line:\n%s", content)
	}
	if !strings.HasPrefix(content, "[Desktop Entry]") {
		t.Errorf("desktop entry missing header:\n%s", content)
	}

	if err := m.Set(context.Background(), false); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	if m.IsEnabled() {
		t.Error("expected disabled after Set(false)")
	}

	// Disabling twice is fine
	if err := m.Set(context.Background(), false); err != nil {
		t.Errorf("second disable failed: %v", err)
	}
}

func TestStartupManager_Darwin(t *testing.T) {
	var calls [][]string
	runner := func(ctx context.Context, name string, args ...string) (CommandResult, error) {
		calls = append(calls, append([]string{name}, args...))
		return CommandResult{}, nil
	}

	dir := t.TempDir()
	m := NewStartupManagerFor(OSDarwin, dir, "/Applications/Cloud Drives.app/Contents/MacOS/cloud-drives", runner)

	if err := m.Set(context.Background(), true); err != nil {
		t.Fatalf("enable failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, LaunchAgentFile))
	if err != nil {
		t.Fatalf("failed to read plist: %v", err)
	}
	if !strings.Contains(string(data), "<string>"+LaunchAgentLabel+"</string>") {
		t.Errorf("plist missing label:\n%s", data)
	}
	if !strings.Contains(string(data), "<key>RunAtLoad</key>") {
		t.Errorf("plist missing RunAtLoad:\n%s", data)
	}

	if err := m.Set(context.Background(), false); err != nil {
		t.Fatalf("disable failed: %v", err)
	}

	expected := [][]string{
		{LaunchctlCommand, "load", m.Path()},
		{LaunchctlCommand, "unload", m.Path()},
	}
	if !reflect.DeepEqual(calls, expected) {
		t.Errorf("expected launchctl calls %v, got %v", expected, calls)
	}
}

func TestStartupManager_Unsupported(t *testing.T) {
	m := NewStartupManagerFor(OSWindows, t.TempDir(), "cloud-drives.exe", nil)

	if err := m.Set(context.Background(), true); !errors.Is(err, ErrStartupUnsupported) {
		t.Errorf("expected ErrStartupUnsupported, got %v", err)
	}
	if m.IsEnabled() {
		t.Error("unsupported platform should never report enabled")
	}
}
