package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amalmed/opstrack/internal/store"
	"github.com/amalmed/opstrack/internal/view"
)

const monthLayout = "2006-01"

func newCalendarCmd(a *App) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month grid with the tasks due each day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at := a.now()
			if month != "" {
				parsed, err := time.Parse(monthLayout, month)
				if err != nil {
					return fmt.Errorf("invalid month %q: want YYYY-MM", month)
				}
				at = parsed
			}
			return withStore(cmd, a, false, func(s *store.Store) error {
				m := view.Calendar(s.Snapshot(), at.Year(), at.Month())
				printMonth(cmd, m)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "Month as YYYY-MM (default current month)")
	return cmd
}

// printMonth draws a Sunday-first grid; days with tasks carry a count, then
// each such day is listed.
func printMonth(cmd *cobra.Command, m view.Month) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %d\n", m.Month, m.Year)
	fmt.Fprintln(out, " Sun   Mon   Tue   Wed   Thu   Fri   Sat")

	var b strings.Builder
	col := 0
	for ; col < m.LeadingBlanks; col++ {
		b.WriteString("      ")
	}
	for _, d := range m.Days {
		cell := fmt.Sprintf("%4d  ", d.Day)
		if n := len(d.Tasks); n > 0 {
			cell = fmt.Sprintf("%4d%-2s", d.Day, fmt.Sprintf("*%d", n))
			if n > 9 {
				cell = fmt.Sprintf("%4d*+", d.Day)
			}
		}
		b.WriteString(cell)
		col++
		if col%7 == 0 {
			fmt.Fprintln(out, strings.TrimRight(b.String(), " "))
			b.Reset()
		}
	}
	if b.Len() > 0 {
		fmt.Fprintln(out, strings.TrimRight(b.String(), " "))
	}

	for _, d := range m.Days {
		if len(d.Tasks) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n%s\n", d.Date)
		for _, t := range d.Tasks {
			fmt.Fprintf(out, "  [%s] %s (%s)\n", t.Status.Label(), t.Title, t.ID)
		}
	}
}
