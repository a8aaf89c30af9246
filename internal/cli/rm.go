package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amalmed/opstrack/internal/store"
)

func newRmCmd(a *App) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, a, true, func(s *store.Store) error {
				t, err := s.Get(args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !force && !confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete %q?", t.Title)) {
					fmt.Fprintln(out, "Aborted.")
					return nil
				}
				if err := s.DeleteTask(cmd.Context(), t.ID); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted task %s\n", t.ID)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return cmd
}
