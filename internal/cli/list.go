package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/amalmed/opstrack/internal/record"
	"github.com/amalmed/opstrack/internal/store"
	"github.com/amalmed/opstrack/internal/view"
)

// queryFlags builds a view.Query from command-line filters.
type queryFlags struct {
	text       string
	status     string
	category   string
	assignee   string
	unassigned bool
}

func (f *queryFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.text, "query", "q", "", "Match title, notes or serial number (case-insensitive)")
	fs.StringVarP(&f.status, "status", "s", "", "Only tasks with this status")
	fs.StringVarP(&f.category, "category", "c", "", "Only tasks in this category")
	fs.StringVarP(&f.assignee, "assignee", "a", "", "Only tasks owned by this person")
	fs.BoolVar(&f.unassigned, "unassigned", false, "Only tasks without an owner")
}

func (f *queryFlags) query() (view.Query, error) {
	q := view.Query{Text: f.text}
	if f.status != "" {
		st, err := record.ParseStatus(f.status)
		if err != nil {
			return q, err
		}
		q.Status = &st
	}
	if f.category != "" {
		if _, ok := record.LookupCategory(f.category); !ok {
			return q, fmt.Errorf("unknown category %q", f.category)
		}
		cat := f.category
		q.Category = &cat
	}
	if f.unassigned && f.assignee != "" {
		return q, fmt.Errorf("--assignee and --unassigned are mutually exclusive")
	}
	if f.assignee != "" {
		who := f.assignee
		q.Assignee = &who
	}
	if f.unassigned {
		none := ""
		q.Assignee = &none
	}
	return q, nil
}

func newListCmd(a *App) *cobra.Command {
	var (
		filters    queryFlags
		sortBy     string
		desc       bool
		asJSON     bool
		categories bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long:    "Lists tasks matching every filter given, newest date first unless --sort says otherwise.\nAn explicit --sort is ascending unless --desc is given.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if categories {
				return printCategories(cmd)
			}
			q, err := filters.query()
			if err != nil {
				return err
			}
			order := view.DefaultSort
			if sortBy != "" {
				key, err := view.ParseSortKey(sortBy)
				if err != nil {
					return err
				}
				order = view.Sort{Key: key, Direction: view.Asc}
			}
			if desc {
				order.Direction = view.Desc
			}

			return withStore(cmd, a, false, func(s *store.Store) error {
				all := s.Snapshot()
				tasks := view.List(all, q, order)
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), tasks)
				}
				return printTaskTable(cmd, tasks, len(all))
			})
		},
	}
	filters.register(cmd.Flags())
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort by title, assignee, status, importance or date")
	cmd.Flags().BoolVar(&desc, "desc", false, "Descending order (date sorts descending by default)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print tasks as JSON")
	cmd.Flags().BoolVar(&categories, "categories", false, "List the category catalog and exit")
	return cmd
}

func printTaskTable(cmd *cobra.Command, tasks []record.Task, total int) error {
	out := cmd.OutOrStdout()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks match.")
		return nil
	}

	w := newTabWriter(out)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tSTATUS\tIMPORTANCE\tASSIGNEE\tDATE\tPROGRESS\tTOTAL")
	for i := range tasks {
		t := &tasks[i]
		amount := "-"
		if t.PurchaseData != nil {
			amount = formatAmount(t.GrandTotal())
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d%%\t%s\n",
			truncate(t.ID, 12),
			truncate(t.Title, 40),
			record.CategoryLabel(t.Category),
			t.Status.Label(),
			t.Importance.Label(),
			dash(t.Assignee),
			t.Date,
			t.Progress,
			amount,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d of %d tasks\n", len(tasks), total)
	return nil
}

func printCategories(cmd *cobra.Command) error {
	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "ID\tLABEL")
	for _, c := range record.Categories() {
		fmt.Fprintf(w, "%s\t%s\n", c.ID, c.Label)
	}
	return w.Flush()
}
