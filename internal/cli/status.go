package cli

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytget/cloud-drives/internal/model"
	"github.com/ytget/cloud-drives/internal/refresh"
)

// Status table columns
var statusHeaders = []string{"REMOTE", "NAME", "TOTAL", "USED", "FREE", "OBJECTS", "STATUS"}

const (
	statusOK          = "ok"
	noRemotesMessage  = "No remotes configured. Start the app or pass remote names."
	statusFailuresFmt = "%d of %d remotes failed"
)

var errStatusFailed = errors.New("status query failed")

func newStatusCommand(env *Env) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "status [remote...]",
		Short: "Show usage of configured remotes",
		Long: `Run "rclone about" for every enabled remote in the configuration, in display
order, or for the remotes given as arguments, and print the results as a table.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if timeout > 0 {
				env.Rclone.SetTimeout(timeout)
			}

			entries, err := statusTargets(env, args)
			if err != nil {
				return err
			}
			snapshots := fetchAll(env, entries)

			rows := make([][]string, 0, len(entries))
			failed := 0
			for _, e := range entries {
				s := snapshots[e.RemoteName]
				state := statusOK
				if s.HasError() {
					state = s.Error
					failed++
				}
				rows = append(rows, []string{e.RemoteName, e.Label(), s.Total, s.Used, s.Free, s.Objects, state})
			}

			if err := renderTable(cmd.OutOrStdout(), statusHeaders, rows, noRemotesMessage); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%w: "+statusFailuresFmt, errStatusFailed, failed, len(entries))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-remote timeout (default 30s)")
	return cmd
}

// statusTargets resolves the remotes to query, keeping configured labels when known
func statusTargets(env *Env, args []string) ([]model.RemoteEntry, error) {
	cfg, err := env.Store.Load()
	if err != nil {
		return nil, err
	}

	if len(args) == 0 {
		return model.EnabledEntries(model.ArrangeEntries(cfg.Drives, cfg.DriveOrder)), nil
	}

	known := make(map[string]model.RemoteEntry, len(cfg.Drives))
	for _, e := range cfg.Drives {
		known[e.RemoteName] = e
	}

	entries := make([]model.RemoteEntry, 0, len(args))
	seen := make(map[string]bool, len(args))
	for _, arg := range args {
		name := model.NormalizeRemoteName(arg)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		if e, ok := known[name]; ok {
			entries = append(entries, e)
			continue
		}
		entries = append(entries, model.NewRemoteEntry(name))
	}
	return entries, nil
}

// fetchAll queries every remote through the refresh service and waits for all results
func fetchAll(env *Env, entries []model.RemoteEntry) map[string]model.StatusSnapshot {
	service := refresh.NewService(env.Rclone)
	defer service.Close()

	var mu sync.Mutex
	results := make(map[string]model.StatusSnapshot, len(entries))
	service.SetUpdateCallback(func(s model.StatusSnapshot) {
		mu.Lock()
		defer mu.Unlock()
		results[s.RemoteName] = s
	})

	remotes := make([]string, 0, len(entries))
	for _, e := range entries {
		remotes = append(remotes, e.RemoteName)
	}
	service.RefreshAll(remotes)
	service.Wait()

	return results
}
