package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"text/template"
)

// Login item identifiers
const (
	LaunchAgentLabel   = "com.ytget.cloud-drives"
	LaunchAgentFile    = LaunchAgentLabel + ".plist"
	AutostartEntryFile = "cloud-drives.desktop"
	LaunchctlCommand   = "launchctl"
)

// ErrStartupUnsupported is returned on platforms without a login item implementation
var ErrStartupUnsupported = errors.New("run at startup is not supported on this platform")

var launchAgentTemplate = template.Must(template.New("plist").Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{{.Label}}</string>
    <key>ProgramArguments</key>
    <array>
        <string>{{.Executable}}</string>
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <false/>
    <key>WorkingDirectory</key>
    <string>{{.WorkingDir}}</string>
</dict>
</plist>
`))

var autostartTemplate = template.Must(template.New("desktop").Parse(`[Desktop Entry]
Type=Application
Name=Cloud Drives
Comment=Cloud storage usage for rclone remotes
Exec="{{.Executable}}"
Path={{.WorkingDir}}
Terminal=false
X-GNOME-Autostart-enabled=true
`))

// StartupManager registers the application as a login item
type StartupManager struct {
	goos       string
	dir        string // LaunchAgents or autostart directory
	executable string
	run        CommandRunner
}

// NewStartupManager creates a manager for the current OS and executable
func NewStartupManager() (*StartupManager, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	var dir string
	switch runtime.GOOS {
	case OSDarwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		dir = filepath.Join(home, "Library", "LaunchAgents")
	case OSLinux:
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user config directory: %w", err)
		}
		dir = filepath.Join(base, "autostart")
	}

	return NewStartupManagerFor(runtime.GOOS, dir, exe, ExecRunner), nil
}

// NewStartupManagerFor creates a manager with explicit OS, directory and runner
func NewStartupManagerFor(goos, dir, executable string, run CommandRunner) *StartupManager {
	return &StartupManager{goos: goos, dir: dir, executable: executable, run: run}
}

// Path returns the login item file managed by this manager
func (m *StartupManager) Path() string {
	switch m.goos {
	case OSDarwin:
		return filepath.Join(m.dir, LaunchAgentFile)
	case OSLinux:
		return filepath.Join(m.dir, AutostartEntryFile)
	default:
		return ""
	}
}

// IsEnabled reports whether the login item file exists
func (m *StartupManager) IsEnabled() bool {
	path := m.Path()
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Set enables or disables starting at login
func (m *StartupManager) Set(ctx context.Context, enable bool) error {
	if m.Path() == "" {
		return ErrStartupUnsupported
	}
	if enable {
		return m.enable(ctx)
	}
	return m.disable(ctx)
}

func (m *StartupManager) enable(ctx context.Context) error {
	tmpl := autostartTemplate
	if m.goos == OSDarwin {
		tmpl = launchAgentTemplate
	}

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		Label      string
		Executable string
		WorkingDir string
	}{
		Label:      LaunchAgentLabel,
		Executable: m.executable,
		WorkingDir: filepath.Dir(m.executable),
	})
	if err != nil {
		return fmt.Errorf("failed to render login item: %w", err)
	}

	if err := CreateDirectoryIfNotExists(m.dir); err != nil {
		return fmt.Errorf("failed to create %s: %w", m.dir, err)
	}
	if err := os.WriteFile(m.Path(), buf.Bytes(), DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write login item: %w", err)
	}

	if m.goos == OSDarwin {
		m.launchctl(ctx, "load")
	}
	return nil
}

func (m *StartupManager) disable(ctx context.Context) error {
	if !m.IsEnabled() {
		return nil
	}
	if m.goos == OSDarwin {
		m.launchctl(ctx, "unload")
	}
	if err := os.Remove(m.Path()); err != nil {
		return fmt.Errorf("failed to remove login item: %w", err)
	}
	return nil
}

// launchctl failures are ignored: the plist still takes effect at next login
func (m *StartupManager) launchctl(ctx context.Context, action string) {
	if m.run == nil {
		return
	}
	_, _ = m.run(ctx, LaunchctlCommand, action, m.Path())
}
