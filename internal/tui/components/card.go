package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/amalmed/opstrack/internal/tui/styles"
)

// Card renders a boxed counter with a caption.
func Card(caption, value, color string, width int) string {
	v := styles.Color(color).Bold(true).Render(value)
	return styles.BoxStyle.Width(max(width-2, 8)).Render(
		lipgloss.JoinVertical(lipgloss.Left, v, styles.SubtleStyle.Render(caption)),
	)
}
