package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/amalmed/opstrack/internal/ids"
	"github.com/amalmed/opstrack/internal/printout"
	"github.com/amalmed/opstrack/internal/record"
	"github.com/amalmed/opstrack/internal/store"
)

func newPrintCmd(a *App) *cobra.Command {
	var (
		out   string
		width int
	)
	cmd := &cobra.Command{
		Use:   "print <id>",
		Short: "Render a purchase request as a printable document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, a, false, func(s *store.Store) error {
				t, err := s.Get(args[0])
				if err != nil {
					return err
				}
				doc, err := printout.Render(&t, printout.Options{Width: width})
				if err != nil {
					return fmt.Errorf("%s: %w", t.ID, err)
				}
				if fi, err := os.Stat(out); err == nil && fi.IsDir() {
					out = filepath.Join(out, printFileName(&t))
				}
				return writeOutput(cmd, a, out, "print", func(w io.Writer) (int, error) {
					_, err := io.WriteString(w, doc)
					return 1, err
				})
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file or directory (default stdout)")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "Page width in columns (default 88)")
	return cmd
}

// printFileName names a printout written into a directory, e.g.
// pr-2024-4821-printer-toner.txt.
func printFileName(t *record.Task) string {
	name := t.Title
	if t.PurchaseData != nil && t.PurchaseData.SerialNumber != "" {
		name = t.PurchaseData.SerialNumber + " " + name
	}
	slug := ids.Slug(name)
	if slug == "" {
		slug = t.ID
	}
	return slug + ".txt"
}
