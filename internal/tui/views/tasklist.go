package views

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amalmed/opstrack/internal/export"
	"github.com/amalmed/opstrack/internal/record"
	"github.com/amalmed/opstrack/internal/store"
	"github.com/amalmed/opstrack/internal/tui/msgs"
	"github.com/amalmed/opstrack/internal/tui/styles"
	"github.com/amalmed/opstrack/internal/view"
)

// column is one task table column; key is empty for unsortable columns.
type column struct {
	title string
	width int
	key   view.SortKey
}

var listColumns = []column{
	{title: "TITLE", key: view.SortTitle},
	{title: "CATEGORY", width: 18},
	{title: "STATUS", width: 16, key: view.SortStatus},
	{title: "IMPORTANCE", width: 10, key: view.SortImportance},
	{title: "ASSIGNEE", width: 14, key: view.SortAssignee},
	{title: "DATE", width: 10, key: view.SortDate},
	{title: "DONE", width: 5},
}

// TaskListModel is the searchable, filterable and sortable task table.
type TaskListModel struct {
	store   *store.Store
	dataDir string
	now     func() time.Time

	all    []record.Task
	rows   []record.Task
	cursor int
	offset int

	search    textinput.Model
	searching bool

	statusFilter   int // index into record.Statuses(), -1 for any
	categoryFilter int // index into record.Categories(), -1 for any
	assigneeFilter int // index into assigneeChoices(), -1 for any
	sort           view.Sort

	picker        statusPicker
	confirmDelete bool

	width  int
	height int
}

// NewTaskListModel creates a TaskListModel backed by s. CSV exports are
// written under dataDir/exports.
func NewTaskListModel(s *store.Store, dataDir string, now func() time.Time) TaskListModel {
	ti := textinput.New()
	ti.Placeholder = "title, notes or PR number"
	ti.Prompt = "/ "
	ti.CharLimit = 100

	m := TaskListModel{
		store:          s,
		dataDir:        dataDir,
		now:            now,
		search:         ti,
		statusFilter:   -1,
		categoryFilter: -1,
		assigneeFilter: -1,
		sort:           view.DefaultSort,
	}
	m.SetTasks(s.Snapshot())
	return m
}

// SetTasks replaces the collection and recomputes the visible rows.
func (m *TaskListModel) SetTasks(tasks []record.Task) {
	m.all = tasks
	if m.assigneeFilter >= len(m.assigneeChoices()) {
		m.assigneeFilter = -1
	}
	m.refresh()
}

func (m *TaskListModel) refresh() {
	m.rows = view.List(m.all, m.Query(), m.sort)
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
	m.clampOffset()
}

// Query returns the active filters.
func (m TaskListModel) Query() view.Query {
	q := view.Query{Text: m.search.Value()}
	if m.statusFilter >= 0 {
		st := record.Statuses()[m.statusFilter]
		q.Status = &st
	}
	if m.categoryFilter >= 0 {
		id := record.Categories()[m.categoryFilter].ID
		q.Category = &id
	}
	if m.assigneeFilter >= 0 {
		who := m.assigneeChoices()[m.assigneeFilter]
		q.Assignee = &who
	}
	return q
}

// assigneeChoices lists the known owners, then "" when some task is unassigned.
func (m TaskListModel) assigneeChoices() []string {
	out := view.UniqueAssignees(m.all)
	if view.HasUnassigned(m.all) {
		out = append(out, "")
	}
	return out
}

// SetSize updates the model dimensions.
func (m *TaskListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.search.Width = max(width-4, 10)
	m.clampOffset()
}

// pageSize is the number of table rows that fit below the search line,
// the filter line and the header.
func (m TaskListModel) pageSize() int {
	return max(m.height-4, 1)
}

func (m *TaskListModel) clampOffset() {
	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	m.offset = max(min(m.offset, len(m.rows)-page), 0)
}

// Init implements tea.Model.
func (m TaskListModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m TaskListModel) Update(msg tea.Msg) (TaskListModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.searching {
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.searching {
		return m.updateSearch(keyMsg)
	}
	if m.picker.open {
		if status, chosen := m.picker.update(keyMsg); chosen {
			return m, m.changeStatus(status)
		}
		return m, nil
	}
	if m.confirmDelete {
		return m.updateConfirm(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, keyUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keyDown):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keyTop):
		m.cursor = 0
	case key.Matches(keyMsg, keyBottom):
		m.cursor = max(len(m.rows)-1, 0)
	case key.Matches(keyMsg, keySearch):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(keyMsg, keyStatusF):
		m.statusFilter = cycle(m.statusFilter, len(record.Statuses()))
		m.cursor = 0
		m.refresh()
	case key.Matches(keyMsg, keyCategoryF):
		m.categoryFilter = cycle(m.categoryFilter, len(record.Categories()))
		m.cursor = 0
		m.refresh()
	case key.Matches(keyMsg, keyAssigneeF):
		m.assigneeFilter = cycle(m.assigneeFilter, len(m.assigneeChoices()))
		m.cursor = 0
		m.refresh()
	case key.Matches(keyMsg, keyResetF):
		m.statusFilter, m.categoryFilter, m.assigneeFilter = -1, -1, -1
		m.search.SetValue("")
		m.refresh()
	case key.Matches(keyMsg, keySortNext):
		keys := view.SortKeys()
		next := keys[0]
		for i, k := range keys {
			if k == m.sort.Key {
				next = keys[(i+1)%len(keys)]
			}
		}
		m.sort = m.sort.Toggle(next)
		m.refresh()
	case key.Matches(keyMsg, keySortFlip):
		m.sort = m.sort.Toggle(m.sort.Key)
		m.refresh()
	case key.Matches(keyMsg, keyExport):
		return m, m.exportCSV()
	}

	if t, ok := m.Selected(); ok {
		switch {
		case key.Matches(keyMsg, keyOpen):
			return m, func() tea.Msg { return msgs.OpenTaskMsg{ID: t.ID} }
		case key.Matches(keyMsg, keySetStatus):
			m.picker.show(t.Status)
		case key.Matches(keyMsg, keyDelete):
			m.confirmDelete = true
		}
	}

	m.clampOffset()
	return m, nil
}

func (m TaskListModel) updateSearch(msg tea.KeyMsg) (TaskListModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.cursor = 0
	m.refresh()
	return m, cmd
}

func (m TaskListModel) updateConfirm(msg tea.KeyMsg) (TaskListModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keyConfirm):
		m.confirmDelete = false
		t, ok := m.Selected()
		if !ok {
			return m, nil
		}
		s := m.store
		return m, mutate("Deleted "+t.Title, func() error {
			return s.DeleteTask(context.Background(), t.ID)
		})
	case key.Matches(msg, keyCancel):
		m.confirmDelete = false
	}
	return m, nil
}

func (m TaskListModel) changeStatus(status record.Status) tea.Cmd {
	t, ok := m.Selected()
	if !ok || t.Status == status {
		return nil
	}
	s := m.store
	return mutate(t.Title+": "+status.Label(), func() error {
		_, err := s.ChangeStatus(context.Background(), t.ID, status)
		return err
	})
}

// exportCSV writes the visible rows, in display order.
func (m TaskListModel) exportCSV() tea.Cmd {
	rows := m.rows
	dir := filepath.Join(m.dataDir, "exports")
	name := fmt.Sprintf("tasks-%s.csv", m.now().Format("20060102-150405"))
	return func() tea.Msg {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return msgs.ExportedMsg{Err: err}
		}
		f, err := os.Create(path)
		if err != nil {
			return msgs.ExportedMsg{Err: err}
		}
		if err := export.WriteCSV(f, rows); err != nil {
			f.Close()
			return msgs.ExportedMsg{Err: err}
		}
		if err := f.Close(); err != nil {
			return msgs.ExportedMsg{Err: err}
		}
		return msgs.ExportedMsg{Path: path, Count: len(rows)}
	}
}

// cycle advances a filter index through -1 (any), 0 .. n-1.
func cycle(i, n int) int {
	if i+1 >= n {
		return -1
	}
	return i + 1
}

// Selected returns the task under the cursor.
func (m TaskListModel) Selected() (record.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return record.Task{}, false
	}
	return m.rows[m.cursor], true
}

// Rows returns the visible tasks in display order.
func (m TaskListModel) Rows() []record.Task {
	return m.rows
}

// Sort returns the active sort.
func (m TaskListModel) Sort() view.Sort {
	return m.sort
}

// View implements tea.Model.
func (m TaskListModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder
	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
	} else {
		b.WriteString(styles.SubtleStyle.Render("Press / to search"))
	}
	b.WriteString("\n")
	b.WriteString(m.filterLine())
	b.WriteString("\n")

	widths := m.columnWidths()
	var header []string
	for i, c := range listColumns {
		title := c.title
		if c.key != "" && c.key == m.sort.Key {
			if m.sort.Direction == view.Asc {
				title += " ▲"
			} else {
				title += " ▼"
			}
		}
		header = append(header, fit(title, widths[i]))
	}
	b.WriteString(styles.HeaderStyle.Render(strings.Join(header, " ")))

	if len(m.rows) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.SubtleStyle.Render("No tasks match."))
	}
	end := min(m.offset+m.pageSize(), len(m.rows))
	for i := m.offset; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(m.renderRow(i, widths))
	}

	switch {
	case m.picker.open:
		return centered(m.picker.view(), m.width, m.height)
	case m.confirmDelete:
		t, _ := m.Selected()
		prompt := styles.BoxStyle.Render(fmt.Sprintf("Delete %q?\n\n%s", t.Title, styles.SubtleStyle.Render("y confirm • n cancel")))
		return centered(prompt, m.width, m.height)
	}
	return b.String()
}

func (m TaskListModel) columnWidths() []int {
	widths := make([]int, len(listColumns))
	fixed := 0
	for i, c := range listColumns {
		widths[i] = c.width
		fixed += c.width + 1
	}
	widths[0] = max(m.width-fixed, 12)
	return widths
}

func (m TaskListModel) renderRow(i int, widths []int) string {
	t := &m.rows[i]
	cells := []string{
		fit(t.Title, widths[0]),
		fit(record.CategoryLabel(t.Category), widths[1]),
		fit(t.Status.Label(), widths[2]),
		fit(t.Importance.Label(), widths[3]),
		fit(t.Assignee, widths[4]),
		fit(t.Date, widths[5]),
		fit(fmt.Sprintf("%d%%", t.Progress), widths[6]),
	}
	if i == m.cursor {
		return styles.SelectedStyle.Render(strings.Join(cells, " "))
	}
	cells[2] = styles.Color(t.Status.Color()).Render(cells[2])
	cells[3] = styles.Color(t.Importance.Color()).Render(cells[3])
	return strings.Join(cells, " ")
}

func (m TaskListModel) filterLine() string {
	part := func(label, value string) string {
		if value == "" {
			return styles.SubtleStyle.Render(label + ": any")
		}
		return label + ": " + styles.AccentStyle.Render(value)
	}
	var status, category, assignee string
	if m.statusFilter >= 0 {
		status = record.Statuses()[m.statusFilter].Label()
	}
	if m.categoryFilter >= 0 {
		category = record.Categories()[m.categoryFilter].Label
	}
	if m.assigneeFilter >= 0 {
		assignee = m.assigneeChoices()[m.assigneeFilter]
		if assignee == "" {
			assignee = "unassigned"
		}
	}
	counts := styles.SubtleStyle.Render(fmt.Sprintf("%d of %d", len(m.rows), len(m.all)))
	return strings.Join([]string{part("status", status), part("category", category), part("assignee", assignee), counts}, "   ")
}

// Bindings implements View.
func (m TaskListModel) Bindings() []key.Binding {
	switch {
	case m.searching:
		return []key.Binding{keySubmit, keyBack}
	case m.picker.open:
		return m.picker.bindings()
	case m.confirmDelete:
		return []key.Binding{keyConfirm, keyCancel}
	}
	return []key.Binding{keyOpen, keySearch, keyStatusF, keyCategoryF, keyAssigneeF, keySortNext, keySortFlip, keySetStatus, keyDelete, keyExport}
}

// Capturing implements View.
func (m TaskListModel) Capturing() bool {
	return m.searching || m.picker.open || m.confirmDelete
}

// centered places a dialog in the middle of the content area.
func centered(box string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
