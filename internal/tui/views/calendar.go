package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amalmed/opstrack/internal/record"
	"github.com/amalmed/opstrack/internal/tui/msgs"
	"github.com/amalmed/opstrack/internal/tui/styles"
	"github.com/amalmed/opstrack/internal/view"
)

const cellWidth = 6

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// CalendarModel is a month grid with a day cursor. The tasks dated on the
// selected day are listed under the grid.
type CalendarModel struct {
	tasks []record.Task
	now   func() time.Time

	year  int
	month time.Month
	day   int

	width  int
	height int
}

// NewCalendarModel creates a CalendarModel opened on today.
func NewCalendarModel(tasks []record.Task, now func() time.Time) CalendarModel {
	m := CalendarModel{tasks: tasks, now: now}
	m.goToday()
	return m
}

func (m *CalendarModel) goToday() {
	today := m.now()
	m.year, m.month, m.day = today.Year(), today.Month(), today.Day()
}

// SetTasks replaces the collection shown.
func (m *CalendarModel) SetTasks(tasks []record.Task) {
	m.tasks = tasks
}

// SetSize updates the model dimensions.
func (m *CalendarModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Month returns the page shown.
func (m CalendarModel) Month() view.Month {
	return view.Calendar(m.tasks, m.year, m.month)
}

// SelectedDay returns the day under the cursor.
func (m CalendarModel) SelectedDay() view.Day {
	return m.Month().Days[m.day-1]
}

// moveDay moves the cursor by n days, crossing month boundaries.
func (m *CalendarModel) moveDay(n int) {
	d := time.Date(m.year, m.month, m.day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	m.year, m.month, m.day = d.Year(), d.Month(), d.Day()
}

// shiftMonth moves n months and keeps the day when the new month has it.
func (m *CalendarModel) shiftMonth(n int) {
	m.year, m.month = view.Shift(m.year, m.month, n)
	last := time.Date(m.year, m.month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	m.day = min(m.day, last)
}

// Init implements tea.Model.
func (m CalendarModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m CalendarModel) Update(msg tea.Msg) (CalendarModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keyLeft):
		m.moveDay(-1)
	case key.Matches(keyMsg, keyRight):
		m.moveDay(1)
	case key.Matches(keyMsg, keyUp):
		m.moveDay(-7)
	case key.Matches(keyMsg, keyDown):
		m.moveDay(7)
	case key.Matches(keyMsg, keyPrevMonth):
		m.shiftMonth(-1)
	case key.Matches(keyMsg, keyNextMonth):
		m.shiftMonth(1)
	case key.Matches(keyMsg, keyToday):
		m.goToday()
	case key.Matches(keyMsg, keyOpen):
		if tasks := m.SelectedDay().Tasks; len(tasks) > 0 {
			id := tasks[0].ID
			return m, func() tea.Msg { return msgs.OpenTaskMsg{ID: id} }
		}
	case key.Matches(keyMsg, keyBack):
		return m, func() tea.Msg { return msgs.GoToDashboardMsg{} }
	}
	return m, nil
}

// View implements tea.Model.
func (m CalendarModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	month := m.Month()
	today := m.now().Format(record.DateLayout)

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("%s %d", month.Month, month.Year)))
	b.WriteString("\n")
	for _, wd := range weekdays {
		b.WriteString(styles.HeaderStyle.Render(fit(wd, cellWidth)))
	}
	b.WriteString("\n")

	col := month.LeadingBlanks
	b.WriteString(strings.Repeat(" ", col*cellWidth))
	for _, d := range month.Days {
		cell := fmt.Sprintf("%2d", d.Day)
		if n := len(d.Tasks); n > 0 {
			cell += styles.AccentStyle.Render(fmt.Sprintf(" %d", min(n, 9)))
		}
		style := lipgloss.NewStyle().Width(cellWidth)
		switch {
		case d.Day == m.day:
			style = style.Inherit(styles.SelectedStyle)
		case d.Date == today:
			style = style.Underline(true)
		}
		b.WriteString(style.Render(cell))
		col++
		if col%7 == 0 {
			b.WriteString("\n")
		}
	}
	if col%7 != 0 {
		b.WriteString("\n")
	}

	day := m.SelectedDay()
	b.WriteString("\n")
	b.WriteString(styles.HeaderStyle.Render(day.Date))
	if len(day.Tasks) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.SubtleStyle.Render("No tasks on this day."))
	}
	for _, t := range day.Tasks {
		fmt.Fprintf(&b, "\n%s  %s", styles.Status(t.Status), fit(t.Title, max(m.width-20, 10)))
	}
	return lipgloss.NewStyle().MaxHeight(m.height).Render(b.String())
}

// Bindings implements View.
func (m CalendarModel) Bindings() []key.Binding {
	return []key.Binding{keyLeft, keyRight, keyPrevMonth, keyToday, keyOpen, keyBack}
}

// Capturing implements View.
func (m CalendarModel) Capturing() bool {
	return false
}
