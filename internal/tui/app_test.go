package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amalmed/opstrack/internal/record"
	"github.com/amalmed/opstrack/internal/store"
	"github.com/amalmed/opstrack/internal/tui/msgs"
)

var fixedNow = time.Date(2024, time.May, 14, 9, 30, 0, 0, time.UTC)

type failingSaver struct{}

func (failingSaver) SaveAll(context.Context, []record.Task) error {
	return errors.New("disk full")
}

func testTasks() []record.Task {
	return []record.Task{
		{ID: "t1", Title: "Monthly payroll", Category: "finance", Status: record.StatusPending,
			Importance: record.ImportanceHigh, Type: record.TypeMonthly, Date: "2024-05-14"},
		{ID: "t2", Title: "Annual leave balance", Category: "leaves", Status: record.StatusCompleted,
			Importance: record.ImportanceMedium, Type: record.TypePermanent, Date: "2024-05-02"},
	}
}

func newTestModel(t *testing.T, saver store.Saver) (Model, *store.Store) {
	t.Helper()
	s := store.New(testTasks(), saver, store.Options{Now: func() time.Time { return fixedNow }})
	m := initialModel(Options{
		Store:   s,
		DataDir: t.TempDir(),
		Now:     func() time.Time { return fixedNow },
	})
	t.Cleanup(m.unsub)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), s
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModel_View_TerminalTooSmall(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		height      int
		expectSmall bool
	}{
		{name: "exactly minimum size", width: MinTerminalWidth, height: MinTerminalHeight, expectSmall: false},
		{name: "width too small", width: MinTerminalWidth - 1, height: MinTerminalHeight, expectSmall: true},
		{name: "height too small", width: MinTerminalWidth, height: MinTerminalHeight - 1, expectSmall: true},
		{name: "larger than minimum", width: 100, height: 50, expectSmall: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, nil)
			next, _ := m.Update(tea.WindowSizeMsg{Width: tt.width, Height: tt.height})
			view := next.(Model).View()

			if tt.expectSmall {
				if !strings.Contains(view, "Terminal too small") {
					t.Error("expected view to contain 'Terminal too small'")
				}
				if !strings.Contains(view, "Current:") {
					t.Error("expected view to contain 'Current:'")
				}
			} else if strings.Contains(view, "Terminal too small") {
				t.Error("did not expect view to contain 'Terminal too small'")
			}
		})
	}
}

func TestModel_renderTerminalTooSmall_ShowsDimensions(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.width = 50
	m.height = 10

	view := m.renderTerminalTooSmall()
	if !strings.Contains(view, "60x15") {
		t.Error("expected minimum dimensions 60x15 to be shown")
	}
	if !strings.Contains(view, "50x10") {
		t.Error("expected current dimensions 50x10 to be shown")
	}
}

func TestModel_GlobalKeysSwitchViews(t *testing.T) {
	m, _ := newTestModel(t, nil)
	if m.currentView != ViewDashboard {
		t.Fatalf("expected dashboard first, got %v", m.currentView)
	}

	m = press(t, m, "2")
	if m.currentView != ViewList {
		t.Errorf("expected list, got %v", m.currentView)
	}
	m = press(t, m, "3")
	if m.currentView != ViewCalendar {
		t.Errorf("expected calendar, got %v", m.currentView)
	}
	m = press(t, m, "1")
	if m.currentView != ViewDashboard {
		t.Errorf("expected dashboard, got %v", m.currentView)
	}

	m = press(t, m, "?")
	if !m.showHelp || !strings.Contains(m.View(), "quit") {
		t.Error("expected full help")
	}
}

func TestModel_SearchCapturesGlobalKeys(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "2", "/", "q", "1")
	if m.currentView != ViewList {
		t.Fatalf("typing in the search box must not switch views, got %v", m.currentView)
	}
	if got := m.list.Query().Text; got != "q1" {
		t.Errorf("expected search text q1, got %q", got)
	}
}

func TestModel_OpenTaskAndBack(t *testing.T) {
	m, _ := newTestModel(t, nil)
	next, _ := m.Update(msgs.OpenTaskMsg{ID: "t1"})
	m = next.(Model)
	if m.currentView != ViewDetail {
		t.Fatalf("expected detail view, got %v", m.currentView)
	}
	if !strings.Contains(m.View(), "Monthly payroll") {
		t.Error("expected task title in detail view")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	next, _ = m.Update(cmd())
	if next.(Model).currentView != ViewList {
		t.Errorf("expected esc to return to the list, got %v", next.(Model).currentView)
	}
}

func TestModel_StoreEventRefreshesViews(t *testing.T) {
	m, s := newTestModel(t, nil)

	added, err := s.AddTask(context.Background(), record.Task{Title: "Lab audit", Category: "compliance"})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	e := <-m.events

	next, cmd := m.Update(msgs.StoreEventMsg{Event: e})
	m = next.(Model)
	if cmd == nil {
		t.Error("expected the model to keep waiting for events")
	}
	if got := len(m.list.Rows()); got != 3 {
		t.Errorf("expected 3 rows after add, got %d", got)
	}

	next, _ = m.Update(msgs.OpenTaskMsg{ID: added.ID})
	m = next.(Model)
	if err := s.DeleteTask(context.Background(), added.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	next, _ = m.Update(msgs.StoreEventMsg{Event: <-m.events})
	if next.(Model).currentView != ViewList {
		t.Error("deleting the open task should return to the list")
	}
}

func TestModel_PersistenceWarningShown(t *testing.T) {
	m, s := newTestModel(t, failingSaver{})

	if _, err := s.ChangeStatus(context.Background(), "t1", record.StatusCompleted); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	for len(m.events) > 0 {
		next, _ := m.Update(msgs.StoreEventMsg{Event: <-m.events})
		m = next.(Model)
	}

	if !strings.Contains(m.View(), "not being saved") {
		t.Error("expected persistence warning in the status bar")
	}
	if got, _ := s.Get("t1"); got.Status != record.StatusCompleted {
		t.Error("the change should be kept in memory")
	}
}

func TestModel_MutationErrorShown(t *testing.T) {
	m, _ := newTestModel(t, nil)
	next, _ := m.Update(msgs.MutationDoneMsg{Err: errors.New("progress follows the checklist")})
	if !strings.Contains(next.(Model).View(), "progress follows the checklist") {
		t.Error("expected error notice in the status bar")
	}
}
