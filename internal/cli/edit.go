package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amalmed/opstrack/internal/store"
)

func newEditCmd(a *App) *cobra.Command {
	var fields taskFields
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit task fields",
		Long:  "Replaces the fields given as flags and leaves the others unchanged.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !fields.changed(cmd.Flags()) {
				return fmt.Errorf("nothing to change; pass at least one field flag")
			}
			return withStore(cmd, a, true, func(s *store.Store) error {
				t, err := s.Get(args[0])
				if err != nil {
					return err
				}
				if err := fields.apply(cmd.Flags(), &t); err != nil {
					return err
				}
				updated, err := s.UpdateTask(cmd.Context(), t)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s: %s\n", updated.ID, updated.Title)
				return nil
			})
		},
	}
	fields.register(cmd.Flags(), true)
	return cmd
}
