package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/ytget/cloud-drives/internal/model"
)

// Timeout constants
const (
	DefaultAboutTimeout       = 30 * time.Second
	DefaultListRemotesTimeout = 10 * time.Second
	DefaultValidateTimeout    = 10 * time.Second
	DefaultVersionTimeout     = 5 * time.Second

	// Grace period for pipes held open by children of a killed process
	ProcessWaitDelay = 2 * time.Second
)

// rclone executable and subcommands
const (
	RcloneCommand       = "rclone"
	AboutSubcommand     = "about"
	ListRemotesCommand  = "listremotes"
	VersionSubcommand   = "version"
	RemoteSeparator     = ":"
	UnknownErrorMessage = "Unknown error"
	TimeoutErrorMessage = "Command timed out"
)

// Labels recognised in `rclone about` output, in match priority order
var aboutLabels = []string{"total:", "used:", "free:", "trash:", "other:", "objects:"}

var (
	// ErrCommandTimeout is returned when rclone does not finish in time
	ErrCommandTimeout = errors.New(TimeoutErrorMessage)

	// ErrRcloneNotFound is returned when the rclone executable is not on PATH
	ErrRcloneNotFound = errors.New("rclone is not installed or not in PATH")

	// ErrRemoteNotFound is returned when rclone rejects a remote name
	ErrRemoteNotFound = errors.New("remote has not been set up in rclone")
)

// CommandError describes an rclone run that exited with a non-zero status
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	if e.Stderr == "" {
		return UnknownErrorMessage
	}
	return e.Stderr
}

// CommandResult is the captured output of a finished process
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner runs an external program. A non-zero exit is reported through
// CommandResult.ExitCode; the error is reserved for failures to run at all.
type CommandRunner func(ctx context.Context, name string, args ...string) (CommandResult, error)

// ExecRunner runs commands with os/exec
func ExecRunner(ctx context.Context, name string, args ...string) (CommandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = ProcessWaitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	return result, err
}

// RcloneService runs rclone subcommands and maps their output to domain types
type RcloneService struct {
	binary          string
	aboutTimeout    time.Duration
	listTimeout     time.Duration
	validateTimeout time.Duration
	versionTimeout  time.Duration
	run             CommandRunner
	now             func() time.Time
}

// NewRcloneService creates a service that runs the rclone found on PATH
func NewRcloneService() *RcloneService {
	return &RcloneService{
		binary:          RcloneCommand,
		aboutTimeout:    DefaultAboutTimeout,
		listTimeout:     DefaultListRemotesTimeout,
		validateTimeout: DefaultValidateTimeout,
		versionTimeout:  DefaultVersionTimeout,
		run:             ExecRunner,
		now:             time.Now,
	}
}

// SetBinary overrides the rclone executable path
func (r *RcloneService) SetBinary(binary string) {
	if binary != "" {
		r.binary = binary
	}
}

// SetTimeout sets the timeout for `rclone about`
func (r *RcloneService) SetTimeout(timeout time.Duration) {
	r.aboutTimeout = timeout
}

// SetRunner replaces the process runner
func (r *RcloneService) SetRunner(run CommandRunner) {
	r.run = run
}

// About runs `rclone about <remote>:` and returns a snapshot. Failures never
// escape as errors: they are reported in StatusSnapshot.Error.
func (r *RcloneService) About(ctx context.Context, remoteName string) model.StatusSnapshot {
	snapshot := model.NewStatusSnapshot(remoteName)

	result, err := r.exec(ctx, r.aboutTimeout, AboutSubcommand, remoteArg(remoteName))
	if err != nil {
		snapshot.Error = err.Error()
		return snapshot
	}

	info := ParseAboutOutput(result.Stdout)
	snapshot.Total = info.Total
	snapshot.Used = info.Used
	snapshot.Free = info.Free
	snapshot.Trash = info.Trash
	snapshot.Other = info.Other
	snapshot.Objects = info.Objects
	snapshot.Raw = info.Raw
	snapshot.LastUpdated = r.now()
	return snapshot
}

// ListRemotes returns the remote names from `rclone listremotes`, without trailing colons
func (r *RcloneService) ListRemotes(ctx context.Context) ([]string, error) {
	result, err := r.exec(ctx, r.listTimeout, ListRemotesCommand)
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}
	return ParseRemoteList(result.Stdout), nil
}

// Validate checks that rclone accepts the remote by running `rclone about` on it
func (r *RcloneService) Validate(ctx context.Context, remoteName string) error {
	_, err := r.exec(ctx, r.validateTimeout, AboutSubcommand, remoteArg(remoteName))
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return fmt.Errorf("%w: %s", ErrRemoteNotFound, model.NormalizeRemoteName(remoteName))
	}
	return err
}

// Available probes `rclone version`
func (r *RcloneService) Available(ctx context.Context) error {
	_, err := r.exec(ctx, r.versionTimeout, VersionSubcommand)
	return err
}

// exec runs one rclone subcommand with its own timeout and classifies failures
func (r *RcloneService) exec(ctx context.Context, timeout time.Duration, args ...string) (CommandResult, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, err := r.run(ctx, r.binary, args...)
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return result, ErrCommandTimeout
	case errors.Is(err, exec.ErrNotFound):
		return result, ErrRcloneNotFound
	case err != nil:
		return result, err
	case result.ExitCode != 0:
		return result, &CommandError{
			Args:     args,
			ExitCode: result.ExitCode,
			Stderr:   strings.TrimSpace(result.Stderr),
		}
	}
	return result, nil
}

// AboutInfo holds the fields parsed from `rclone about`
type AboutInfo struct {
	Total   string
	Used    string
	Free    string
	Trash   string
	Other   string
	Objects string
	Raw     string
}

// ParseAboutOutput extracts usage fields from `rclone about` text. Each line
// is matched case-insensitively against the known labels; the value is
// everything after the first colon. Later lines overwrite earlier ones and
// missing fields stay "Unknown".
func ParseAboutOutput(output string) AboutInfo {
	info := AboutInfo{
		Total:   model.UnknownValue,
		Used:    model.UnknownValue,
		Free:    model.UnknownValue,
		Trash:   model.UnknownValue,
		Other:   model.UnknownValue,
		Objects: model.UnknownValue,
		Raw:     output,
	}

	fields := map[string]*string{
		"total:":   &info.Total,
		"used:":    &info.Used,
		"free:":    &info.Free,
		"trash:":   &info.Trash,
		"other:":   &info.Other,
		"objects:": &info.Objects,
	}

	for _, line := range strings.Split(output, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))
		for _, label := range aboutLabels {
			if !strings.Contains(lower, label) {
				continue
			}
			_, value, _ := strings.Cut(line, RemoteSeparator)
			*fields[label] = strings.TrimSpace(value)
			break
		}
	}

	return info
}

// ParseRemoteList parses `rclone listremotes` output
func ParseRemoteList(output string) []string {
	var remotes []string
	for _, line := range strings.Split(output, "\n") {
		name := model.NormalizeRemoteName(line)
		if name == "" {
			continue
		}
		remotes = append(remotes, name)
	}
	return remotes
}

func remoteArg(remoteName string) string {
	return model.NormalizeRemoteName(remoteName) + RemoteSeparator
}
