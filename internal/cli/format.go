package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"

	"github.com/amalmed/opstrack/internal/printout"
)

func newTabWriter(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func formatAmount(v float64) string {
	return printout.Amount(v, language.English)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens s to at most width display cells.
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

// formatAge returns a human-readable relative time string.
func formatAge(t, now time.Time) string {
	duration := now.Sub(t)

	if duration < time.Minute {
		return "just now"
	}

	minutes := int(duration.Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}

	hours := int(duration.Hours())
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}

	days := hours / 24
	return fmt.Sprintf("%dd ago", days)
}
