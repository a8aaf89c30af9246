package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amalmed/opstrack/internal/store"
)

func newActivityCmd(a *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent changes across all tasks",
		Long:  "Lists the activity journal, newest first. Persistence failures are listed too.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireInitialized(); err != nil {
				return err
			}

			entries, err := store.ReadJournal(store.NewJournal(a.cfg.DataDir).Path())
			if err != nil {
				return fmt.Errorf("failed to read activity journal: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No activity yet.")
				return nil
			}

			w := newTabWriter(out)
			fmt.Fprintln(w, "WHEN\tEVENT\tTASK\tDETAIL")
			now := a.now()
			shown := 0
			for i := len(entries) - 1; i >= 0; i-- {
				if limit > 0 && shown == limit {
					break
				}
				e := entries[i]
				detail := e.Detail
				if e.Error != "" {
					detail = e.Error
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					formatAge(e.Timestamp, now),
					e.Event,
					dash(truncate(e.Title, 40)),
					dash(truncate(detail, 60)),
				)
				shown++
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	return cmd
}
