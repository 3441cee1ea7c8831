package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ytget/cloud-drives/internal/config"
	"github.com/ytget/cloud-drives/internal/logging"
	"github.com/ytget/cloud-drives/internal/platform"
)

// AppName is the executable name
const AppName = "cloud-drives"

// GlobalFlags holds the persistent flags shared by every command
type GlobalFlags struct {
	Config   string
	LogLevel string
	LogFile  string
	Rclone   string
}

// Env is what a command needs at run time, resolved from the global flags
type Env struct {
	Version string
	Store   *config.Store
	Rclone  *platform.RcloneService

	// RcloneBinary is the --rclone flag, empty when not given
	RcloneBinary string

	LogLevel string
	LogFile  string
}

// Options wires the command tree to the rest of the program
type Options struct {
	Version string

	// LaunchGUI runs the tray application; the root command without a
	// subcommand calls it.
	LaunchGUI func(env Env) error

	// Rclone replaces the default rclone service, mainly for tests
	Rclone *platform.RcloneService
}

// NewRootCommand builds the command tree
func NewRootCommand(opts Options) *cobra.Command {
	var flags GlobalFlags
	env := &Env{Version: opts.Version}

	root := &cobra.Command{
		Use:   AppName,
		Short: "Tray utility showing rclone remote usage",
		Long: `cloud-drives shows the storage usage of your rclone remotes as a list of
cards in a small always-available window. Run without arguments to start
the tray application, or use a subcommand to query remotes from a terminal.`,
		Version:       opts.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.Init(logging.Config{Level: flags.LogLevel, File: flags.LogFile}); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			resolved, err := resolveEnv(flags, opts)
			if err != nil {
				return err
			}
			*env = resolved

			logging.Debug("command starting",
				zap.String("command", cmd.Name()),
				zap.String("config", env.Store.Path()),
			)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.LaunchGUI == nil {
				return cmd.Help()
			}
			return opts.LaunchGUI(*env)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.Config, "config", "", "Path to configuration file")
	pf.StringVar(&flags.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.LogFile, "log-file", "", "Path to log file")
	pf.StringVar(&flags.Rclone, "rclone", "", "Path to the rclone executable")

	root.AddCommand(
		newStatusCommand(env),
		newRemotesCommand(env),
		newVersionCommand(env),
	)
	return root
}

// Execute runs the root command with the process arguments
func Execute(opts Options) error {
	return NewRootCommand(opts).Execute()
}

func resolveEnv(flags GlobalFlags, opts Options) (Env, error) {
	env := Env{Version: opts.Version}

	if flags.Config != "" {
		env.Store = config.NewStore(flags.Config)
	} else {
		store, err := config.NewDefaultStore()
		if err != nil {
			return Env{}, fmt.Errorf("failed to locate config: %w", err)
		}
		env.Store = store
	}

	env.Rclone = opts.Rclone
	if env.Rclone == nil {
		env.Rclone = platform.NewRcloneService()
	}
	env.Rclone.SetBinary(flags.Rclone)
	env.RcloneBinary = flags.Rclone
	env.LogLevel = flags.LogLevel
	env.LogFile = flags.LogFile
	return env, nil
}
