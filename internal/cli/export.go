package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/amalmed/opstrack/internal/export"
	"github.com/amalmed/opstrack/internal/store"
	"github.com/amalmed/opstrack/internal/view"
)

func newExportCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks to CSV or iCalendar",
	}

	var (
		csvFilters queryFlags
		csvOut     string
	)
	csvCmd := &cobra.Command{
		Use:   "csv",
		Short: "Export the filtered list as UTF-8 CSV",
		Long:  "Writes the filtered task list as CSV with a byte-order mark so spreadsheet tools detect UTF-8.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := csvFilters.query()
			if err != nil {
				return err
			}
			return withStore(cmd, a, false, func(s *store.Store) error {
				tasks := view.List(s.Snapshot(), q, view.DefaultSort)
				return writeOutput(cmd, a, csvOut, "CSV", func(w io.Writer) (int, error) {
					return len(tasks), export.WriteCSV(w, tasks)
				})
			})
		},
	}
	csvFilters.register(csvCmd.Flags())
	csvCmd.Flags().StringVarP(&csvOut, "out", "o", "", "Output file (default stdout)")

	var icsOut string
	icsCmd := &cobra.Command{
		Use:   "ics",
		Short: "Export dated tasks as an iCalendar feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, a, false, func(s *store.Store) error {
				tasks := s.Snapshot()
				return writeOutput(cmd, a, icsOut, "iCalendar", func(w io.Writer) (int, error) {
					return export.WriteICS(w, tasks, a.now())
				})
			})
		},
	}
	icsCmd.Flags().StringVarP(&icsOut, "out", "o", "", "Output file (default stdout)")

	cmd.AddCommand(csvCmd, icsCmd)
	return cmd
}

// writeOutput runs write against stdout or a new file at path.
// write returns the number of tasks written.
func writeOutput(cmd *cobra.Command, a *App, path, format string, write func(io.Writer) (int, error)) error {
	if path == "" {
		_, err := write(cmd.OutOrStdout())
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	count, err := write(f)
	if err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	a.log.Info("exported", zap.String("format", format), zap.String("path", path), zap.Int("tasks", count))
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s export of %d tasks to %s\n", format, count, path)
	return nil
}
