package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/amalmed/opstrack/internal/tui/styles"
	"github.com/amalmed/opstrack/internal/view"
)

// Histogram renders horizontal bars, one per bucket, scaled to the largest count.
type Histogram struct {
	Title   string
	Buckets []view.Bucket
	Width   int
}

// View returns the rendered histogram.
func (h Histogram) View() string {
	var b strings.Builder
	b.WriteString(styles.HeaderStyle.Render(h.Title))
	b.WriteString("\n")
	if len(h.Buckets) == 0 {
		b.WriteString(styles.SubtleStyle.Render("No tasks"))
		return b.String()
	}

	labelWidth, maxCount := 0, 0
	for _, bk := range h.Buckets {
		labelWidth = max(labelWidth, runewidth.StringWidth(bk.Label))
		maxCount = max(maxCount, bk.Count)
	}
	labelWidth = min(labelWidth, h.Width/3)
	countWidth := len(fmt.Sprint(maxCount))
	barWidth := max(h.Width-labelWidth-countWidth-3, 1)

	for i, bk := range h.Buckets {
		if i > 0 {
			b.WriteString("\n")
		}
		n := max(bk.Count*barWidth/maxCount, 1)
		label := runewidth.FillRight(runewidth.Truncate(bk.Label, labelWidth, "…"), labelWidth)
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(bk.Color)).Render(strings.Repeat("█", n))
		fmt.Fprintf(&b, "%s %s %d", label, bar, bk.Count)
	}
	return b.String()
}
