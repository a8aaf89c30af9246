package components

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/amalmed/opstrack/internal/tui/styles"
)

// StatusBar renders the bottom line: short help for the active bindings on the
// left and an optional notice on the right.
type StatusBar struct {
	help help.Model
}

// NewStatusBar creates a new StatusBar instance.
func NewStatusBar() StatusBar {
	h := help.New()
	h.ShortSeparator = " • "
	return StatusBar{help: h}
}

// Render returns the status bar string for the given width. A warning notice
// replaces the help text when both do not fit.
func (s StatusBar) Render(width int, bindings []key.Binding, notice string, warning bool) string {
	left := s.help.ShortHelpView(bindings)
	if notice == "" {
		return styles.StatusBarStyle.Width(width).MaxWidth(width).Render(left)
	}

	noticeStyle := styles.SuccessStyle
	if warning {
		noticeStyle = styles.ErrorStyle
	}
	right := noticeStyle.Render(notice)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		if warning {
			return lipgloss.NewStyle().MaxWidth(width).Render(right)
		}
		return styles.StatusBarStyle.Width(width).MaxWidth(width).Render(left)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.StatusBarStyle.Render(left),
		lipgloss.NewStyle().Width(gap).Render(""),
		right,
	)
}
