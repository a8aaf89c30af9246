package views

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/amalmed/opstrack/internal/tui/msgs"
)

// View is the interface every screen satisfies for the root model.
type View interface {
	// Bindings are the keys shown in the status bar.
	Bindings() []key.Binding
	// Capturing reports whether keystrokes go to a text field or a prompt,
	// so global shortcuts must not fire.
	Capturing() bool
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// mutate runs fn off the update loop and reports its outcome.
func mutate(info string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return msgs.MutationDoneMsg{Err: err}
		}
		return msgs.MutationDoneMsg{Info: info}
	}
}
