package cli

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/amalmed/opstrack/internal/record"
	"github.com/amalmed/opstrack/internal/store"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newShowCmd(a *App) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task with its checklist, line items and audit log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, a, false, func(s *store.Store) error {
				t, err := s.Get(args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), t)
				}
				return printTask(cmd, &t)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the task as JSON")
	return cmd
}

func printTask(cmd *cobra.Command, t *record.Task) error {
	out := cmd.OutOrStdout()

	w := newTabWriter(out)
	row := func(label, value string) {
		fmt.Fprintf(w, "%s:\t%s\n", label, dash(value))
	}
	row("ID", t.ID)
	row("Title", t.Title)
	row("Category", record.CategoryLabel(t.Category))
	row("Sub-category", t.SubCategory)
	row("Status", t.Status.Label())
	row("Importance", t.Importance.Label())
	row("Type", string(t.Type))
	row("Date", t.Date)
	row("Assignee", t.Assignee)
	row("Department", t.Department)
	row("Branch", t.Branch)
	row("Progress", fmt.Sprintf("%d%%", t.Progress))
	if t.ActualTime != nil {
		row("Actual time", fmt.Sprintf("%gh", *t.ActualTime))
	}
	row("Created", t.CreatedAt)
	if len(t.Attachments) > 0 {
		row("Attachments", strings.Join(t.Attachments, ", "))
	}
	if t.PurchaseData != nil {
		row("Serial", t.PurchaseData.SerialNumber)
		row("Recipient", t.PurchaseData.Recipient)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if t.Notes != "" {
		fmt.Fprintf(out, "\nNotes:\n  %s\n", strings.ReplaceAll(t.Notes, "\n", "\n  "))
	}

	if len(t.Checklist) > 0 {
		fmt.Fprintln(out, "\nChecklist:")
		if err := printChecklist(cmd, t); err != nil {
			return err
		}
	}

	if t.PurchaseData != nil {
		fmt.Fprintln(out, "\nItems:")
		if err := printItems(cmd, t); err != nil {
			return err
		}
		if len(t.PurchaseData.Terms) > 0 {
			fmt.Fprintln(out, "\nTerms:")
			if err := printTerms(cmd, t); err != nil {
				return err
			}
		}
	}

	if len(t.Logs) > 0 {
		fmt.Fprintln(out, "\nActivity:")
		lw := newTabWriter(out)
		for _, l := range t.Logs {
			fmt.Fprintf(lw, "  %s\t%s\t%s\n", l.Timestamp, l.User, l.Action)
		}
		return lw.Flush()
	}
	return nil
}
