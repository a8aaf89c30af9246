package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amalmed/opstrack/internal/record"
	"github.com/amalmed/opstrack/internal/store"
)

func newAddCmd(a *App) *cobra.Command {
	var (
		fields    taskFields
		checklist []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Example: `  opstrack add -t "Monthly payroll review" -c finance -i high
  opstrack add -t "Cleanliness round" -c followup --check "Clinics" --check "Store rooms"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var t record.Task
			if err := fields.apply(cmd.Flags(), &t); err != nil {
				return err
			}
			for _, text := range checklist {
				if _, err := t.AddChecklistItem(text); err != nil {
					return err
				}
			}

			return withStore(cmd, a, true, func(s *store.Store) error {
				created, err := s.AddTask(cmd.Context(), t)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added task %s: %s\n", created.ID, created.Title)
				return nil
			})
		},
	}
	fields.register(cmd.Flags(), true)
	cmd.Flags().StringArrayVar(&checklist, "check", nil, "Checklist item (repeatable)")
	return cmd
}
