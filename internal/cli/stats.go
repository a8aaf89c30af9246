package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amalmed/opstrack/internal/store"
	"github.com/amalmed/opstrack/internal/view"
)

const histogramWidth = 30

func newStatsCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard counters and breakdowns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, a, false, func(s *store.Store) error {
				tasks := s.Snapshot()
				st := view.ComputeStats(tasks)
				out := cmd.OutOrStdout()

				w := newTabWriter(out)
				fmt.Fprintf(w, "Total:\t%d\n", st.Total)
				fmt.Fprintf(w, "Completed:\t%d\n", st.Completed)
				fmt.Fprintf(w, "Pending:\t%d\n", st.Pending)
				fmt.Fprintf(w, "Overdue:\t%d\n", st.Overdue)
				fmt.Fprintf(w, "Urgent:\t%d\n", st.Urgent)
				fmt.Fprintf(w, "Completion rate:\t%d%%\n", st.CompletionRate)
				fmt.Fprintf(w, "Approved purchases:\t%s\n", formatAmount(view.FinancialSummary(tasks)))
				if err := w.Flush(); err != nil {
					return err
				}

				fmt.Fprintln(out, "\nBy category:")
				if err := printHistogram(cmd, view.CategoryHistogram(tasks)); err != nil {
					return err
				}
				fmt.Fprintln(out, "\nBy status:")
				return printHistogram(cmd, view.StatusHistogram(tasks))
			})
		},
	}
}

func printHistogram(cmd *cobra.Command, buckets []view.Bucket) error {
	max := 0
	for _, b := range buckets {
		if b.Count > max {
			max = b.Count
		}
	}
	w := newTabWriter(cmd.OutOrStdout())
	for _, b := range buckets {
		n := b.Count * histogramWidth / max
		if n == 0 {
			n = 1
		}
		fmt.Fprintf(w, "  %s\t%s %d\n", b.Label, strings.Repeat("█", n), b.Count)
	}
	return w.Flush()
}
