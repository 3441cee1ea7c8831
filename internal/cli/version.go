package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", AppName, env.Version)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := env.Rclone.Available(ctx); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "rclone: %v\n", err)
			}
			return nil
		},
	}
}
