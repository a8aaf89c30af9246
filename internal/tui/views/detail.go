package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"

	"github.com/amalmed/opstrack/internal/printout"
	"github.com/amalmed/opstrack/internal/record"
	"github.com/amalmed/opstrack/internal/store"
	"github.com/amalmed/opstrack/internal/tui/components"
	"github.com/amalmed/opstrack/internal/tui/msgs"
	"github.com/amalmed/opstrack/internal/tui/styles"
)

const progressStep = 10

// DetailModel shows one task with its checklist, purchase lines and audit log.
type DetailModel struct {
	store *store.Store

	task   record.Task
	found  bool
	cursor int // checklist position

	viewport viewport.Model
	preview  bool

	input  textinput.Model
	adding bool
	picker statusPicker

	width  int
	height int
}

// NewDetailModel creates an empty DetailModel backed by s.
func NewDetailModel(s *store.Store) DetailModel {
	ti := textinput.New()
	ti.Placeholder = "new checklist step"
	ti.Prompt = "+ "
	ti.CharLimit = 200
	return DetailModel{store: s, input: ti, viewport: viewport.New(0, 0)}
}

// Load shows the task with id and resets the view state.
func (m *DetailModel) Load(id string) {
	m.cursor = 0
	m.preview = false
	m.adding = false
	m.picker.open = false
	m.viewport.GotoTop()
	m.task = record.Task{ID: id}
	m.Refresh()
}

// Refresh re-reads the current task from the store.
func (m *DetailModel) Refresh() {
	t, err := m.store.Get(m.task.ID)
	m.found = err == nil
	if m.found {
		m.task = t
	}
	m.cursor = min(m.cursor, max(len(m.task.Checklist)-1, 0))
	m.syncContent()
}

// TaskID returns the id of the task shown.
func (m DetailModel) TaskID() string {
	return m.task.ID
}

// Previewing reports whether the print preview is shown.
func (m DetailModel) Previewing() bool {
	return m.preview
}

// SetSize updates the model dimensions.
func (m *DetailModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-1, 1)
	m.input.Width = max(width-4, 10)
	m.syncContent()
}

func (m *DetailModel) syncContent() {
	if m.preview {
		doc, err := printout.Render(&m.task, printout.Options{Width: min(max(m.width-2, 60), 100)})
		if err != nil {
			doc = styles.ErrorStyle.Render(err.Error())
		}
		m.viewport.SetContent(doc)
		return
	}
	m.viewport.SetContent(m.renderTask())
}

// Init implements tea.Model.
func (m DetailModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		if m.adding {
			m.input, cmd = m.input.Update(msg)
		} else {
			m.viewport, cmd = m.viewport.Update(msg)
		}
		return m, cmd
	}

	if !m.found {
		if key.Matches(keyMsg, keyBack) {
			return m, func() tea.Msg { return msgs.GoToListMsg{} }
		}
		return m, nil
	}
	if m.adding {
		return m.updateAdding(keyMsg)
	}
	if m.picker.open {
		if status, chosen := m.picker.update(keyMsg); chosen && status != m.task.Status {
			s, id := m.store, m.task.ID
			return m, mutate("Status: "+status.Label(), func() error {
				_, err := s.ChangeStatus(context.Background(), id, status)
				return err
			})
		}
		return m, nil
	}
	if m.preview {
		if key.Matches(keyMsg, keyBack) || key.Matches(keyMsg, keyPrint) {
			m.preview = false
			m.syncContent()
			m.viewport.GotoTop()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	s, id := m.store, m.task.ID
	switch {
	case key.Matches(keyMsg, keyBack):
		return m, func() tea.Msg { return msgs.GoToListMsg{} }
	case key.Matches(keyMsg, keyUp):
		if m.cursor > 0 {
			m.cursor--
			m.syncContent()
		}
	case key.Matches(keyMsg, keyDown):
		if m.cursor < len(m.task.Checklist)-1 {
			m.cursor++
			m.syncContent()
		}
	case key.Matches(keyMsg, keyToggle) && len(m.task.Checklist) > 0:
		itemID := m.task.Checklist[m.cursor].ID
		return m, mutate("", func() error {
			_, err := s.ToggleChecklistItem(context.Background(), id, itemID)
			return err
		})
	case key.Matches(keyMsg, keyRemoveItem) && len(m.task.Checklist) > 0:
		itemID := m.task.Checklist[m.cursor].ID
		return m, mutate("Step removed", func() error {
			_, err := s.RemoveChecklistItem(context.Background(), id, itemID)
			return err
		})
	case key.Matches(keyMsg, keyAddItem):
		m.adding = true
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(keyMsg, keyMore), key.Matches(keyMsg, keyLess):
		if len(m.task.Checklist) > 0 {
			return m, func() tea.Msg {
				return msgs.MutationDoneMsg{Err: errors.New("progress follows the checklist")}
			}
		}
		step := progressStep
		if key.Matches(keyMsg, keyLess) {
			step = -progressStep
		}
		pct := min(max(m.task.Progress+step, 0), 100)
		return m, mutate("", func() error {
			_, err := s.SetProgress(context.Background(), id, pct)
			return err
		})
	case key.Matches(keyMsg, keySetStatus):
		m.picker.show(m.task.Status)
	case key.Matches(keyMsg, keyPrint) && m.task.PurchaseData != nil:
		m.preview = true
		m.syncContent()
		m.viewport.GotoTop()
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m DetailModel) updateAdding(msg tea.KeyMsg) (DetailModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.adding = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.adding = false
		m.input.Blur()
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		s, id := m.store, m.task.ID
		m.cursor = len(m.task.Checklist)
		return m, mutate("Step added", func() error {
			_, err := s.AddChecklistItem(context.Background(), id, text)
			return err
		})
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m DetailModel) renderTask() string {
	if !m.found {
		return styles.ErrorStyle.Render(fmt.Sprintf("Task %s no longer exists.", m.task.ID))
	}
	t := &m.task
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(t.Title))
	b.WriteString("\n")
	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s %s\n", styles.SubtleStyle.Render(fit(label+":", 12)), value)
	}
	field("Category", strings.TrimSuffix(record.CategoryLabel(t.Category)+" / "+t.SubCategory, " / "))
	field("Status", styles.Status(t.Status))
	field("Importance", styles.Importance(t.Importance))
	field("Type", string(t.Type))
	field("Date", t.Date)
	field("Assignee", t.Assignee)
	field("Department", t.Department)
	field("Branch", t.Branch)
	if t.PurchaseData != nil {
		field("Serial", t.PurchaseData.SerialNumber)
		field("Recipient", t.PurchaseData.Recipient)
	}
	field("Progress", components.NewProgress(t.Progress, 20).View())
	if t.ActualTime != nil {
		field("Time spent", fmt.Sprintf("%gh", *t.ActualTime))
	}
	if len(t.Attachments) > 0 {
		field("Attachments", strings.Join(t.Attachments, ", "))
	}

	if t.Notes != "" {
		b.WriteString("\n")
		b.WriteString(styles.HeaderStyle.Render("Notes"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(max(m.width-2, 20)).Render(t.Notes))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HeaderStyle.Render("Checklist"))
	b.WriteString("\n")
	if len(t.Checklist) == 0 {
		b.WriteString(styles.SubtleStyle.Render("No steps. Press A to add one."))
		b.WriteString("\n")
	}
	for i, item := range t.Checklist {
		mark := "[ ]"
		if item.Completed {
			mark = "[x]"
		}
		line := mark + " " + item.Text
		if i == m.cursor {
			line = styles.SelectedStyle.Render(line)
		} else if item.Completed {
			line = styles.SubtleStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if pd := t.PurchaseData; pd != nil {
		amount := func(v float64) string { return printout.Amount(v, language.English) }
		rows := make([][]string, 0, len(pd.Items))
		for i, it := range pd.Items {
			rows = append(rows, []string{fmt.Sprint(i + 1), it.ItemCode, it.Name, it.Unit, amount(it.Quantity), amount(it.Price), amount(it.Total)})
		}
		b.WriteString("\n")
		b.WriteString(styles.HeaderStyle.Render("Items"))
		b.WriteString("\n")
		b.WriteString(table.New().
			Border(lipgloss.NormalBorder()).
			Headers("#", "Code", "Name", "Unit", "Qty", "Price", "Total").
			Rows(rows...).
			Render())
		fmt.Fprintf(&b, "\n%s %s %s\n", styles.HeaderStyle.Render("Grand total:"), amount(pd.GrandTotal), printout.Currency)
		for i, term := range pd.Terms {
			fmt.Fprintf(&b, "%d/ %s\n", i+1, term)
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.HeaderStyle.Render("Activity"))
	for i := len(t.Logs) - 1; i >= 0; i-- {
		l := t.Logs[i]
		fmt.Fprintf(&b, "\n%s  %s  %s", styles.SubtleStyle.Render(l.Timestamp), l.User, l.Action)
	}
	return b.String()
}

// View implements tea.Model.
func (m DetailModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.picker.open {
		return centered(m.picker.view(), m.width, m.height)
	}
	bottom := ""
	if m.adding {
		bottom = m.input.View()
	} else if m.preview {
		bottom = styles.SubtleStyle.Render(fmt.Sprintf("Print preview %3.f%%", m.viewport.ScrollPercent()*100))
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), bottom)
}

// Bindings implements View.
func (m DetailModel) Bindings() []key.Binding {
	switch {
	case m.adding:
		return []key.Binding{keySubmit, keyBack}
	case m.picker.open:
		return m.picker.bindings()
	case m.preview:
		return []key.Binding{keyUp, keyDown, keyBack}
	}
	bindings := []key.Binding{keyBack, keySetStatus, keyAddItem}
	if len(m.task.Checklist) > 0 {
		bindings = append(bindings, keyToggle, keyRemoveItem)
	} else {
		bindings = append(bindings, keyMore)
	}
	if m.task.PurchaseData != nil {
		bindings = append(bindings, keyPrint)
	}
	return bindings
}

// Capturing implements View.
func (m DetailModel) Capturing() bool {
	return m.adding || m.picker.open || m.preview
}
