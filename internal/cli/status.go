package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/amalmed/opstrack/internal/record"
	"github.com/amalmed/opstrack/internal/store"
)

func newStatusCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change a task's status",
		Long:  "Changes the status and appends an entry to the task's audit log.\n\nStatuses: " + statusTokens(),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := record.ParseStatus(args[1])
			if err != nil {
				return err
			}
			return withStore(cmd, a, true, func(s *store.Store) error {
				before, err := s.Get(args[0])
				if err != nil {
					return err
				}
				after, err := s.ChangeStatus(cmd.Context(), before.ID, status)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n", after.ID, before.Status.Label(), after.Status.Label())
				return nil
			})
		},
	}
}

func newProgressCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <id> <0-100>",
		Short: "Set manual progress of a task without a checklist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid progress %q", args[1])
			}
			return withStore(cmd, a, true, func(s *store.Store) error {
				t, err := s.SetProgress(cmd.Context(), args[0], pct)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d%%\n", t.ID, t.Progress)
				return nil
			})
		},
	}
}

func statusTokens() string {
	var out string
	for i, st := range record.Statuses() {
		if i > 0 {
			out += ", "
		}
		out += string(st)
	}
	return out
}
