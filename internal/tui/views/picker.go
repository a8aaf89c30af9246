package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amalmed/opstrack/internal/record"
	"github.com/amalmed/opstrack/internal/tui/styles"
)

// statusPicker is an inline chooser over every status.
type statusPicker struct {
	open   bool
	cursor int
}

func (p *statusPicker) show(current record.Status) {
	p.open = true
	p.cursor = 0
	for i, s := range record.Statuses() {
		if s == current {
			p.cursor = i
		}
	}
}

// update returns the chosen status once enter is pressed.
func (p *statusPicker) update(msg tea.KeyMsg) (record.Status, bool) {
	statuses := record.Statuses()
	switch {
	case key.Matches(msg, keyUp):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keyDown):
		if p.cursor < len(statuses)-1 {
			p.cursor++
		}
	case key.Matches(msg, keyOpen):
		p.open = false
		return statuses[p.cursor], true
	case key.Matches(msg, keyBack):
		p.open = false
	}
	return "", false
}

func (p statusPicker) view() string {
	var b strings.Builder
	b.WriteString(styles.HeaderStyle.Render("Set status"))
	for i, s := range record.Statuses() {
		b.WriteString("\n")
		line := "  " + fit(s.Label(), 20) + " " + styles.SubtleStyle.Render(string(s))
		if i == p.cursor {
			line = styles.SelectedStyle.Render("> " + fit(s.Label(), 20) + " " + string(s))
		}
		b.WriteString(line)
	}
	return styles.BoxStyle.Render(b.String())
}

func (p statusPicker) bindings() []key.Binding {
	return []key.Binding{keyUp, keyDown, keySubmit, keyBack}
}
