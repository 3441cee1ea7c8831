package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var remotesHeaders = []string{"REMOTE", "CONFIGURED", "NAME"}

const noRcloneRemotesMessage = "rclone reports no remotes. Run \"rclone config\" to add one."

func newRemotesCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "remotes",
		Short: "List rclone remotes and whether they are shown",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			remotes, err := env.Rclone.ListRemotes(ctx)
			if err != nil {
				return err
			}

			cfg, err := env.Store.Load()
			if err != nil {
				return err
			}
			labels := make(map[string]string, len(cfg.Drives))
			for _, e := range cfg.Drives {
				if e.Enabled {
					labels[e.RemoteName] = e.Label()
				}
			}

			rows := make([][]string, 0, len(remotes))
			for _, remote := range remotes {
				label, configured := labels[remote]
				mark := "no"
				if configured {
					mark = "yes"
				}
				rows = append(rows, []string{remote, mark, label})
			}
			return renderTable(cmd.OutOrStdout(), remotesHeaders, rows, noRcloneRemotesMessage)
		},
	}
}
