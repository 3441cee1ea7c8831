package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ytget/cloud-drives/internal/config"
	"github.com/ytget/cloud-drives/internal/model"
	"github.com/ytget/cloud-drives/internal/platform"
)

// scriptedRclone answers rclone invocations by subcommand and remote
type scriptedRclone struct {
	mu      sync.Mutex
	about   map[string]string // remote -> stdout; missing remotes fail
	remotes string
	calls   []string
}

func (s *scriptedRclone) run(ctx context.Context, name string, args ...string) (platform.CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, strings.Join(args, " "))

	switch args[0] {
	case platform.ListRemotesCommand:
		return platform.CommandResult{Stdout: s.remotes}, nil
	case platform.VersionSubcommand:
		return platform.CommandResult{Stdout: "rclone v1.66.0\n"}, nil
	case platform.AboutSubcommand:
		remote := strings.TrimSuffix(args[1], ":")
		if out, ok := s.about[remote]; ok {
			return platform.CommandResult{Stdout: out}, nil
		}
		return platform.CommandResult{Stderr: "didn't find section in config file", ExitCode: 1}, nil
	}
	return platform.CommandResult{ExitCode: 1}, nil
}

func newTestRclone(s *scriptedRclone) *platform.RcloneService {
	r := platform.NewRcloneService()
	r.SetRunner(s.run)
	return r
}

func writeConfig(t *testing.T, cfg config.Config) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.NewStore(path).Save(cfg); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, opts Options, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestStatus_ConfiguredRemotes(t *testing.T) {
	script := &scriptedRclone{about: map[string]string{
		"gdrive": "Total: 15 GiB\nUsed: 3 GiB\nFree: 12 GiB\nObjects: 42\n",
		"work":   "Total: 1 TiB\nUsed: 10 GiB\nFree: 990 GiB\n",
	}}
	cfg := config.DefaultConfig()
	cfg.Drives = []model.RemoteEntry{
		{RemoteName: "gdrive", DisplayName: "Personal", DriveType: model.DriveTypeGoogleDrive, Enabled: true},
		{RemoteName: "work", DisplayName: "Work", DriveType: model.DriveTypeOneDrive, Enabled: true},
		{RemoteName: "off", DisplayName: "Off", DriveType: model.DriveTypeDropbox, Enabled: false},
	}
	cfg.DriveOrder = []string{"work", "gdrive"}
	path := writeConfig(t, cfg)

	out, err := runCommand(t, Options{Version: "1.0.0", Rclone: newTestRclone(script)}, "status", "--config", path)
	if err != nil {
		t.Fatalf("status failed: %v\n%s", err, out)
	}

	for _, want := range []string{"REMOTE", "Personal", "15 GiB", "990 GiB", "42", statusOK} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Off") {
		t.Errorf("disabled remote should not be listed:\n%s", out)
	}
	if strings.Index(out, "work") > strings.Index(out, "gdrive") {
		t.Errorf("rows should follow drive_order:\n%s", out)
	}
}

func TestStatus_Failure(t *testing.T) {
	script := &scriptedRclone{about: map[string]string{}}
	path := writeConfig(t, config.DefaultConfig())

	out, err := runCommand(t, Options{Rclone: newTestRclone(script)}, "status", "--config", path, "missing:")
	if !errors.Is(err, errStatusFailed) {
		t.Fatalf("expected errStatusFailed, got %v", err)
	}
	if !strings.Contains(out, "didn't find section") {
		t.Errorf("error text should be shown in the table:\n%s", out)
	}
}

func TestStatus_NoRemotes(t *testing.T) {
	path := writeConfig(t, config.DefaultConfig())

	out, err := runCommand(t, Options{Rclone: newTestRclone(&scriptedRclone{})}, "status", "--config", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, noRemotesMessage) {
		t.Errorf("expected empty message, got:\n%s", out)
	}
}

func TestStatusTargets_Args(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Drives = []model.RemoteEntry{{RemoteName: "gdrive", DisplayName: "Personal", Enabled: true}}
	env := &Env{Store: config.NewStore(writeConfig(t, cfg))}

	entries, err := statusTargets(env, []string{"gdrive:", "new-dropbox", "gdrive", " "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	if entries[0].DisplayName != "Personal" {
		t.Errorf("configured label should be kept, got %q", entries[0].DisplayName)
	}
	if entries[1].DriveType != model.DriveTypeDropbox {
		t.Errorf("unconfigured remote type should be guessed, got %q", entries[1].DriveType)
	}
}

func TestRemotes(t *testing.T) {
	script := &scriptedRclone{remotes: "gdrive:\nwork:\n"}
	cfg := config.DefaultConfig()
	cfg.Drives = []model.RemoteEntry{{RemoteName: "gdrive", DisplayName: "Personal", Enabled: true}}
	path := writeConfig(t, cfg)

	out, err := runCommand(t, Options{Rclone: newTestRclone(script)}, "remotes", "--config", path)
	if err != nil {
		t.Fatalf("remotes failed: %v", err)
	}
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got:\n%s", out)
	}
	if !strings.Contains(lines[1], "gdrive") || !strings.Contains(lines[1], "yes") || !strings.Contains(lines[1], "Personal") {
		t.Errorf("unexpected row %q", lines[1])
	}
	if !strings.Contains(lines[2], "work") || !strings.Contains(lines[2], "no") {
		t.Errorf("unexpected row %q", lines[2])
	}
}

func TestVersion(t *testing.T) {
	path := writeConfig(t, config.DefaultConfig())

	out, err := runCommand(t, Options{Version: "1.2.3", Rclone: newTestRclone(&scriptedRclone{})}, "version", "--config", path)
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, AppName+" 1.2.3") {
		t.Errorf("unexpected output %q", out)
	}
	if strings.Contains(out, "rclone:") {
		t.Errorf("available rclone should not print a warning: %q", out)
	}
}

func TestRoot_LaunchesGUI(t *testing.T) {
	path := writeConfig(t, config.DefaultConfig())
	script := &scriptedRclone{}

	var got Env
	opts := Options{
		Version: "2.0.0",
		Rclone:  newTestRclone(script),
		LaunchGUI: func(env Env) error {
			got = env
			return nil
		},
	}
	if _, err := runCommand(t, opts, "--config", path); err != nil {
		t.Fatalf("root failed: %v", err)
	}
	if got.Store == nil || got.Store.Path() != path {
		t.Errorf("GUI should receive the configured store, got %+v", got.Store)
	}
	if got.Version != "2.0.0" || got.Rclone == nil {
		t.Errorf("unexpected env %+v", got)
	}
}
