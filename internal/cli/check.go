package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amalmed/opstrack/internal/record"
	"github.com/amalmed/opstrack/internal/store"
)

func newCheckCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Edit a task's checklist",
		Long:  "Checklist items are addressed by id or by their 1-based position.",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <id> <text>",
			Short: "Append a checklist item",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd, a, true, func(s *store.Store) error {
					t, err := s.AddChecklistItem(cmd.Context(), args[0], args[1])
					if err != nil {
						return err
					}
					return printChecklist(cmd, &t)
				})
			},
		},
		&cobra.Command{
			Use:   "toggle <id> <item>",
			Short: "Flip a checklist item between done and open",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withChecklistItem(cmd, a, args, func(s *store.Store, id, itemID string) (record.Task, error) {
					return s.ToggleChecklistItem(cmd.Context(), id, itemID)
				})
			},
		},
		&cobra.Command{
			Use:   "rm <id> <item>",
			Short: "Remove a checklist item",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withChecklistItem(cmd, a, args, func(s *store.Store, id, itemID string) (record.Task, error) {
					return s.RemoveChecklistItem(cmd.Context(), id, itemID)
				})
			},
		},
	)
	return cmd
}

func withChecklistItem(cmd *cobra.Command, a *App, args []string, fn func(s *store.Store, id, itemID string) (record.Task, error)) error {
	return withStore(cmd, a, true, func(s *store.Store) error {
		t, err := s.Get(args[0])
		if err != nil {
			return err
		}
		itemID, err := resolveRef(args[1], checklistIDs(&t), "checklist item")
		if err != nil {
			return err
		}
		updated, err := fn(s, t.ID, itemID)
		if err != nil {
			return err
		}
		return printChecklist(cmd, &updated)
	})
}

func printChecklist(cmd *cobra.Command, t *record.Task) error {
	out := cmd.OutOrStdout()
	for i, item := range t.Checklist {
		mark := " "
		if item.Completed {
			mark = "x"
		}
		fmt.Fprintf(out, "%2d. [%s] %s\n", i+1, mark, item.Text)
	}
	fmt.Fprintf(out, "Progress: %d%%\n", t.Progress)
	return nil
}
