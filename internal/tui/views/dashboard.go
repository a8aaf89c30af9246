package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"

	"github.com/amalmed/opstrack/internal/printout"
	"github.com/amalmed/opstrack/internal/record"
	"github.com/amalmed/opstrack/internal/tui/components"
	"github.com/amalmed/opstrack/internal/tui/msgs"
	"github.com/amalmed/opstrack/internal/tui/styles"
	"github.com/amalmed/opstrack/internal/view"
)

const urgentListSize = 5

// DashboardModel shows counters, the approved purchase total and breakdowns.
type DashboardModel struct {
	tasks  []record.Task
	cursor int
	width  int
	height int
}

// NewDashboardModel creates a DashboardModel over tasks.
func NewDashboardModel(tasks []record.Task) DashboardModel {
	return DashboardModel{tasks: tasks}
}

// SetTasks replaces the collection shown.
func (m *DashboardModel) SetTasks(tasks []record.Task) {
	m.tasks = tasks
	m.cursor = min(m.cursor, max(len(m.urgent())-1, 0))
}

// SetSize updates the model dimensions.
func (m *DashboardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init implements tea.Model.
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	urgent := m.urgent()
	switch {
	case key.Matches(keyMsg, keyUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keyDown):
		if m.cursor < len(urgent)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keyOpen) && len(urgent) > 0:
		id := urgent[m.cursor].ID
		return m, func() tea.Msg { return msgs.OpenTaskMsg{ID: id} }
	case key.Matches(keyMsg, keyTaskList):
		return m, func() tea.Msg { return msgs.GoToListMsg{} }
	case key.Matches(keyMsg, keyCalendar):
		return m, func() tea.Msg { return msgs.GoToCalendarMsg{} }
	}
	return m, nil
}

// urgent returns the open critical and high tasks, newest date first.
func (m DashboardModel) urgent() []record.Task {
	var out []record.Task
	for _, t := range m.tasks {
		if t.Importance.Urgent() && !t.Status.Done() && t.Status != record.StatusCancelled {
			out = append(out, t)
		}
	}
	out = view.Sorted(out, view.DefaultSort)
	return out[:min(len(out), urgentListSize)]
}

// View implements tea.Model.
func (m DashboardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	st := view.ComputeStats(m.tasks)
	cardWidth := max(m.width/6, 12)
	cards := []string{
		components.Card("Total", fmt.Sprint(st.Total), "#1B3F94", cardWidth),
		components.Card("Completed", fmt.Sprint(st.Completed), "#22c55e", cardWidth),
		components.Card("Pending", fmt.Sprint(st.Pending), "#f59e0b", cardWidth),
		components.Card("Overdue", fmt.Sprint(st.Overdue), "#ED1C24", cardWidth),
		components.Card("Urgent", fmt.Sprint(st.Urgent), "#f97316", cardWidth),
		components.Card("Completion", fmt.Sprintf("%d%%", st.CompletionRate), "#14b8a6", cardWidth),
	}
	perRow := max(m.width/cardWidth, 1)
	var rows []string
	for chunk := range slices.Chunk(cards, perRow) {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, chunk...))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s %s\n\n",
		styles.HeaderStyle.Render("Approved purchases:"),
		styles.AccentStyle.Render(printout.Amount(view.FinancialSummary(m.tasks), language.English)),
		printout.Currency,
	)

	histWidth := m.width
	byCategory := components.Histogram{Title: "By category", Buckets: view.CategoryHistogram(m.tasks), Width: histWidth}
	byStatus := components.Histogram{Title: "By status", Buckets: view.StatusHistogram(m.tasks), Width: histWidth}
	if m.width >= 90 {
		histWidth = m.width/2 - 2
		byCategory.Width, byStatus.Width = histWidth, histWidth
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(m.width/2).Render(byCategory.View()),
			byStatus.View(),
		))
	} else {
		b.WriteString(byCategory.View())
		b.WriteString("\n\n")
		b.WriteString(byStatus.View())
	}
	b.WriteString("\n\n")

	b.WriteString(styles.HeaderStyle.Render("Urgent and open"))
	urgent := m.urgent()
	if len(urgent) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.SubtleStyle.Render("Nothing urgent."))
	}
	for i, t := range urgent {
		line := fmt.Sprintf("%s  %s  %s", fit(t.Date, 10), fit(t.Title, max(m.width-40, 10)), t.Status.Label())
		if i == m.cursor {
			line = styles.SelectedStyle.Render(line)
		}
		b.WriteString("\n")
		b.WriteString(line)
	}

	return lipgloss.NewStyle().MaxHeight(m.height).Render(b.String())
}

// Bindings implements View.
func (m DashboardModel) Bindings() []key.Binding {
	return []key.Binding{keyUp, keyDown, keyOpen, keyTaskList, keyCalendar}
}

// Capturing implements View.
func (m DashboardModel) Capturing() bool {
	return false
}
