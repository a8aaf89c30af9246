package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/amalmed/opstrack/internal/printout"
	"github.com/amalmed/opstrack/internal/store"
	"github.com/amalmed/opstrack/internal/tui/components"
	"github.com/amalmed/opstrack/internal/tui/msgs"
	"github.com/amalmed/opstrack/internal/tui/styles"
	"github.com/amalmed/opstrack/internal/tui/views"
)

// Minimum terminal dimensions for the layout.
const (
	MinTerminalWidth  = 60
	MinTerminalHeight = 15
)

// View represents the different screens in the TUI.
type View int

const (
	ViewDashboard View = iota
	ViewList
	ViewDetail
	ViewCalendar
)

var tabs = []struct {
	view  View
	label string
}{
	{ViewDashboard, "1 Dashboard"},
	{ViewList, "2 Tasks"},
	{ViewCalendar, "3 Calendar"},
}

type globalKeyMap struct {
	Dashboard key.Binding
	List      key.Binding
	Calendar  key.Binding
	Retry     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var globalKeys = globalKeyMap{
	Dashboard: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard")),
	List:      key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "tasks")),
	Calendar:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "calendar")),
	Retry:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "retry save")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the main Bubble Tea model that orchestrates all views.
type Model struct {
	currentView View
	width       int
	height      int

	store   *store.Store
	log     *zap.Logger
	events  chan store.Event
	unsub   func()
	version string

	dashboard views.DashboardModel
	list      views.TaskListModel
	detail    views.DetailModel
	calendar  views.CalendarModel

	help     help.Model
	showHelp bool

	notice    string
	noticeErr bool
}

// Run starts the TUI application and blocks until it quits.
func Run(opts Options) error {
	m := initialModel(opts)
	defer m.unsub()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

func initialModel(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	// Events arrive on the mutating goroutine; the channel hands them to the
	// update loop. A full buffer drops events, the next one refreshes anyway.
	events := make(chan store.Event, 64)
	unsub := opts.Store.Subscribe(func(e store.Event) {
		select {
		case events <- e:
		default:
		}
	})

	tasks := opts.Store.Snapshot()
	m := Model{
		currentView: ViewDashboard,
		store:       opts.Store,
		log:         opts.Logger,
		events:      events,
		unsub:       unsub,
		version:     opts.Version,
		dashboard:   views.NewDashboardModel(tasks),
		list:        views.NewTaskListModel(opts.Store, opts.DataDir, opts.Now),
		detail:      views.NewDetailModel(opts.Store),
		calendar:    views.NewCalendarModel(tasks, opts.Now),
		help:        help.New(),
	}
	if opts.Warning != nil {
		m.notice = "Saved data was unreadable; started from the sample tasks"
		m.noticeErr = true
	}
	return m
}

func waitForEvent(events <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		return msgs.StoreEventMsg{Event: <-events}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.active().Capturing() {
			if next, cmd, handled := m.handleGlobalKey(msg); handled {
				return next, cmd
			}
		}

	case msgs.GoToDashboardMsg:
		m.currentView = ViewDashboard
		return m, nil
	case msgs.GoToListMsg:
		m.currentView = ViewList
		return m, nil
	case msgs.GoToCalendarMsg:
		m.currentView = ViewCalendar
		return m, nil
	case msgs.OpenTaskMsg:
		m.detail.Load(msg.ID)
		m.currentView = ViewDetail
		return m, nil

	case msgs.StoreEventMsg:
		m.applyEvent(msg.Event)
		return m, waitForEvent(m.events)

	case msgs.MutationDoneMsg:
		if msg.Err != nil {
			m.log.Warn("mutation rejected", zap.Error(msg.Err))
			m.setNotice(msg.Err.Error(), true)
		} else if msg.Info != "" {
			m.setNotice(msg.Info, false)
		}
		return m, nil

	case msgs.ExportedMsg:
		if msg.Err != nil {
			m.log.Warn("csv export failed", zap.Error(msg.Err))
			m.setNotice("Export failed: "+msg.Err.Error(), true)
		} else {
			m.log.Info("exported", zap.String("path", msg.Path), zap.Int("tasks", msg.Count))
			m.setNotice(fmt.Sprintf("Exported %d tasks to %s", msg.Count, msg.Path), false)
		}
		return m, nil
	}

	return m.updateActive(msg)
}

func (m Model) handleGlobalKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, globalKeys.Quit):
		return m, tea.Quit, true
	case key.Matches(msg, globalKeys.Help):
		m.showHelp = !m.showHelp
		return m, nil, true
	case key.Matches(msg, globalKeys.Dashboard):
		m.currentView = ViewDashboard
		return m, nil, true
	case key.Matches(msg, globalKeys.List):
		m.currentView = ViewList
		return m, nil, true
	case key.Matches(msg, globalKeys.Calendar):
		m.currentView = ViewCalendar
		return m, nil, true
	case key.Matches(msg, globalKeys.Retry) && m.store.MemoryOnly():
		s := m.store
		return m, func() tea.Msg {
			if err := s.Flush(context.Background()); err != nil {
				return msgs.MutationDoneMsg{Err: fmt.Errorf("still not saved: %w", err)}
			}
			return msgs.MutationDoneMsg{Info: "Changes saved"}
		}, true
	}
	return m, nil, false
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewList:
		m.list, cmd = m.list.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewCalendar:
		m.calendar, cmd = m.calendar.Update(msg)
	}
	return m, cmd
}

func (m *Model) applyEvent(e store.Event) {
	tasks := m.store.Snapshot()
	m.dashboard.SetTasks(tasks)
	m.list.SetTasks(tasks)
	m.calendar.SetTasks(tasks)
	if m.currentView == ViewDetail {
		m.detail.Refresh()
	}

	switch e.Kind {
	case store.EventPersistenceFailed:
		m.log.Warn("persistence failed", zap.Error(e.Err))
		m.setNotice("Not saved: "+e.Err.Error(), true)
	case store.EventPersistenceResumed:
		m.setNotice("Saving resumed", false)
	case store.EventTaskDeleted:
		if m.currentView == ViewDetail && m.detail.TaskID() == e.TaskID {
			m.currentView = ViewList
		}
	}
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m *Model) resize() {
	w, h := m.width, max(m.height-2, 1)
	m.dashboard.SetSize(w, h)
	m.list.SetSize(w, h)
	m.detail.SetSize(w, h)
	m.calendar.SetSize(w, h)
	m.help.Width = w
}

func (m Model) active() views.View {
	switch m.currentView {
	case ViewList:
		return m.list
	case ViewDetail:
		return m.detail
	case ViewCalendar:
		return m.calendar
	}
	return m.dashboard
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width < MinTerminalWidth || m.height < MinTerminalHeight {
		return m.renderTerminalTooSmall()
	}

	var content string
	switch m.currentView {
	case ViewDashboard:
		content = m.dashboard.View()
	case ViewList:
		content = m.list.View()
	case ViewDetail:
		content = m.detail.View()
	case ViewCalendar:
		content = m.calendar.View()
	}
	if m.showHelp {
		content = m.help.FullHelpView([][]key.Binding{
			m.active().Bindings(),
			{globalKeys.Dashboard, globalKeys.List, globalKeys.Calendar},
			{globalKeys.Retry, globalKeys.Help, globalKeys.Quit},
		})
	}
	body := lipgloss.NewStyle().Height(m.height - 2).MaxHeight(m.height - 2).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderStatusBar())
}

func (m Model) renderHeader() string {
	var parts []string
	for _, t := range tabs {
		active := t.view == m.currentView || (m.currentView == ViewDetail && t.view == ViewList)
		if active {
			parts = append(parts, styles.ActiveTabStyle.Render(t.label))
		} else {
			parts = append(parts, styles.TabStyle.Render(t.label))
		}
	}
	left := strings.Join(parts, "")
	right := styles.AccentStyle.Render(printout.FacilityNameEN)
	if m.version != "" {
		right += styles.SubtleStyle.Render(" " + m.version)
	}
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderStatusBar() string {
	bindings := m.active().Bindings()
	if !m.active().Capturing() {
		bindings = append(bindings, globalKeys.Help, globalKeys.Quit)
	}

	notice, isErr := m.notice, m.noticeErr
	if m.store.MemoryOnly() {
		if err := m.store.Warning(); err != nil {
			notice, isErr = "Changes are not being saved (ctrl+s to retry): "+err.Error(), true
		}
	}
	return components.NewStatusBar().Render(m.width, bindings, notice, isErr)
}

func (m Model) renderTerminalTooSmall() string {
	msg := fmt.Sprintf("Terminal too small\n\nMinimum: %dx%d\nCurrent: %dx%d",
		MinTerminalWidth, MinTerminalHeight, m.width, m.height)
	if m.width <= 0 || m.height <= 0 {
		return msg
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}
