package components

import (
	"fmt"
	"strings"

	"github.com/amalmed/opstrack/internal/tui/styles"
)

const (
	filledChar = "■"
	emptyChar  = "□"
)

// Progress renders a progress bar like: ■■■■□□□□ 50%
type Progress struct {
	Percent int
	Width   int // character width of the bar portion
}

// NewProgress creates a Progress for a task progress percentage.
func NewProgress(percent, width int) Progress {
	return Progress{Percent: percent, Width: width}
}

// NewChecklistProgress creates a Progress for done of total checklist items.
func NewChecklistProgress(done, total, width int) Progress {
	if total <= 0 {
		return Progress{Width: width}
	}
	return Progress{Percent: done * 100 / total, Width: width}
}

// View returns the rendered progress bar string.
func (p Progress) View() string {
	if p.Width <= 0 {
		return ""
	}

	percent := min(max(p.Percent, 0), 100)
	filled := percent * p.Width / 100

	bar := strings.Repeat(filledChar, filled) + strings.Repeat(emptyChar, p.Width-filled)
	if percent == 100 {
		bar = styles.SuccessStyle.Render(bar)
	}
	return fmt.Sprintf("%s %d%%", bar, percent)
}
