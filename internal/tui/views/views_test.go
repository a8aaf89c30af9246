package views

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amalmed/opstrack/internal/record"
	"github.com/amalmed/opstrack/internal/store"
	"github.com/amalmed/opstrack/internal/tui/msgs"
	"github.com/amalmed/opstrack/internal/view"
)

var fixedNow = time.Date(2024, time.May, 14, 9, 30, 0, 0, time.UTC)

func nowFunc() time.Time { return fixedNow }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	pr, err := record.NewPurchase(fixedNow)
	if err != nil {
		t.Fatalf("NewPurchase: %v", err)
	}
	pr.ID = "pr1"
	pr.Title = "Printer toner"
	pr.Status = record.StatusApproved
	pr.Date = "2024-05-20"
	itemID := pr.PurchaseData.Items[0].ID
	for field, v := range map[record.ItemField]string{record.FieldName: "Toner", record.FieldQuantity: "2", record.FieldPrice: "26"} {
		if err := pr.SetPurchaseItemField(itemID, field, v); err != nil {
			t.Fatalf("SetPurchaseItemField: %v", err)
		}
	}

	tasks := []record.Task{
		{ID: "t1", Title: "Monthly payroll", Category: "finance", Status: record.StatusPending,
			Importance: record.ImportanceHigh, Type: record.TypeMonthly, Date: "2024-05-14", Assignee: "Huda"},
		{ID: "t2", Title: "Cleanliness round", Category: "followup", Status: record.StatusDraft,
			Importance: record.ImportanceLow, Type: record.TypeDaily, Date: "2024-05-10",
			Checklist: []record.ChecklistItem{{ID: "c1", Text: "Clinics"}, {ID: "c2", Text: "Store rooms"}}},
		pr,
	}
	return store.New(tasks, nil, store.Options{Now: nowFunc})
}

// runCmd executes cmd and returns its message, or nil.
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func newTestList(t *testing.T) (TaskListModel, *store.Store) {
	s := newTestStore(t)
	m := NewTaskListModel(s, t.TempDir(), nowFunc)
	m.SetSize(120, 30)
	return m, s
}

func TestTaskList_DefaultOrderIsNewestFirst(t *testing.T) {
	m, _ := newTestList(t)
	rows := m.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].ID != "pr1" || rows[2].ID != "t2" {
		t.Errorf("unexpected order: %s %s %s", rows[0].ID, rows[1].ID, rows[2].ID)
	}
}

func TestTaskList_Search(t *testing.T) {
	m, _ := newTestList(t)

	m, _ = m.Update(runes("/"))
	if !m.Capturing() {
		t.Fatal("expected search to capture keys")
	}
	for _, r := range "PAYROLL" {
		m, _ = m.Update(runes(string(r)))
	}
	if len(m.Rows()) != 1 || m.Rows()[0].ID != "t1" {
		t.Fatalf("expected only t1, got %d rows", len(m.Rows()))
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Capturing() {
		t.Error("esc should leave the search box")
	}
	if len(m.Rows()) != 1 {
		t.Error("leaving the search box should keep the filter")
	}

	m, _ = m.Update(runes("r"))
	if len(m.Rows()) != 3 {
		t.Errorf("reset should clear the search, got %d rows", len(m.Rows()))
	}
}

func TestTaskList_FilterCycling(t *testing.T) {
	m, _ := newTestList(t)

	// First status in the cycle is draft.
	m, _ = m.Update(runes("f"))
	if q := m.Query(); q.Status == nil || *q.Status != record.StatusDraft {
		t.Fatalf("expected draft filter, got %+v", q.Status)
	}
	if len(m.Rows()) != 1 || m.Rows()[0].ID != "t2" {
		t.Errorf("expected only the draft task, got %d rows", len(m.Rows()))
	}

	// Assignee cycle: Huda, then unassigned.
	m, _ = m.Update(runes("r"))
	m, _ = m.Update(runes("a"))
	if q := m.Query(); q.Assignee == nil || *q.Assignee != "Huda" {
		t.Fatalf("expected Huda filter, got %+v", q.Assignee)
	}
	m, _ = m.Update(runes("a"))
	if q := m.Query(); q.Assignee == nil || *q.Assignee != "" {
		t.Fatalf("expected unassigned filter, got %+v", q.Assignee)
	}
	if len(m.Rows()) != 2 {
		t.Errorf("expected 2 unassigned tasks, got %d", len(m.Rows()))
	}
	m, _ = m.Update(runes("a"))
	if m.Query().Assignee != nil {
		t.Error("expected the cycle to return to any")
	}
}

func TestTaskList_SortCycling(t *testing.T) {
	m, _ := newTestList(t)

	m, _ = m.Update(runes("o"))
	if got := m.Sort(); got != (view.Sort{Key: view.SortTitle, Direction: view.Asc}) {
		t.Fatalf("expected title asc after date, got %v", got)
	}
	if m.Rows()[0].ID != "t2" {
		t.Errorf("expected Cleanliness round first, got %s", m.Rows()[0].Title)
	}

	m, _ = m.Update(runes("O"))
	if got := m.Sort(); got.Direction != view.Desc {
		t.Errorf("expected desc after flip, got %v", got)
	}
	if !strings.Contains(m.View(), "TITLE ▼") {
		t.Error("expected sort indicator on the title column")
	}
}

func TestTaskList_ChangeStatus(t *testing.T) {
	m, s := newTestList(t)
	m, _ = m.Update(runes("G")) // t2, draft

	m, _ = m.Update(runes("s"))
	if !m.Capturing() {
		t.Fatal("expected status picker to open")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown}) // draft -> pending
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := runCmd(cmd).(msgs.MutationDoneMsg)
	if !ok || msg.Err != nil {
		t.Fatalf("expected successful mutation, got %#v", msg)
	}

	got, err := s.Get("t2")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != record.StatusPending {
		t.Errorf("expected pending, got %s", got.Status)
	}
	if len(got.Logs) == 0 {
		t.Error("expected a status change log entry")
	}
}

func TestTaskList_DeleteWithConfirmation(t *testing.T) {
	m, s := newTestList(t)

	m, _ = m.Update(runes("d"))
	if !strings.Contains(m.View(), "Delete") {
		t.Fatal("expected confirmation prompt")
	}
	m, cmd := m.Update(runes("n"))
	if cmd != nil || s.Len() != 3 {
		t.Fatal("cancel should not delete")
	}

	m, _ = m.Update(runes("d"))
	_, cmd = m.Update(runes("y"))
	if msg, ok := runCmd(cmd).(msgs.MutationDoneMsg); !ok || msg.Err != nil {
		t.Fatalf("expected successful delete, got %#v", msg)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 tasks after delete, got %d", s.Len())
	}
}

func TestTaskList_OpenAndExport(t *testing.T) {
	m, _ := newTestList(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if open, ok := runCmd(cmd).(msgs.OpenTaskMsg); !ok || open.ID != "pr1" {
		t.Fatalf("expected OpenTaskMsg for pr1, got %#v", runCmd(cmd))
	}

	_, cmd = m.Update(runes("e"))
	exported, ok := runCmd(cmd).(msgs.ExportedMsg)
	if !ok || exported.Err != nil {
		t.Fatalf("expected export, got %#v", exported)
	}
	if exported.Count != 3 {
		t.Errorf("expected 3 exported tasks, got %d", exported.Count)
	}
	data, err := os.ReadFile(exported.Path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "\uFEFFtitle,") {
		t.Errorf("expected CSV header, got %q", data)
	}
}

func TestDetail_ChecklistToggleAndAdd(t *testing.T) {
	s := newTestStore(t)
	m := NewDetailModel(s)
	m.SetSize(100, 30)
	m.Load("t2")

	if !strings.Contains(m.View(), "Cleanliness round") {
		t.Fatal("expected task title in view")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if msg, ok := runCmd(cmd).(msgs.MutationDoneMsg); !ok || msg.Err != nil {
		t.Fatalf("toggle failed: %#v", msg)
	}
	got, _ := s.Get("t2")
	if !got.Checklist[0].Completed || got.Progress != 50 {
		t.Errorf("expected first step done and 50%%, got %+v", got)
	}

	m, _ = m.Update(runes("A"))
	if !m.Capturing() {
		t.Fatal("expected add input to capture keys")
	}
	for _, r := range "Pharmacy" {
		m, _ = m.Update(runes(string(r)))
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if msg, ok := runCmd(cmd).(msgs.MutationDoneMsg); !ok || msg.Err != nil {
		t.Fatalf("add failed: %#v", msg)
	}
	got, _ = s.Get("t2")
	if len(got.Checklist) != 3 || got.Checklist[2].Text != "Pharmacy" {
		t.Errorf("expected new step, got %+v", got.Checklist)
	}
}

func TestDetail_ManualProgress(t *testing.T) {
	s := newTestStore(t)
	m := NewDetailModel(s)
	m.SetSize(100, 30)
	m.Load("t1")

	_, cmd := m.Update(runes("+"))
	runCmd(cmd)
	if got, _ := s.Get("t1"); got.Progress != progressStep {
		t.Errorf("expected progress %d, got %d", progressStep, got.Progress)
	}

	m.Load("t2")
	_, cmd = m.Update(runes("+"))
	if msg, ok := runCmd(cmd).(msgs.MutationDoneMsg); !ok || msg.Err == nil {
		t.Error("expected an error for a task with a checklist")
	}
}

func TestDetail_PrintPreview(t *testing.T) {
	s := newTestStore(t)
	m := NewDetailModel(s)
	m.SetSize(100, 40)
	m.Load("pr1")

	m, _ = m.Update(runes("p"))
	if !m.Previewing() {
		t.Fatal("expected print preview")
	}
	task, _ := s.Get("pr1")
	if !strings.Contains(m.View(), task.SerialNumber()) {
		t.Error("expected serial number in preview")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Previewing() {
		t.Error("esc should close the preview")
	}

	m.Load("t1")
	m, _ = m.Update(runes("p"))
	if m.Previewing() {
		t.Error("tasks without purchase data have no preview")
	}
}

func TestDetail_MissingTask(t *testing.T) {
	m := NewDetailModel(newTestStore(t))
	m.SetSize(80, 20)
	m.Load("gone")
	if !strings.Contains(m.View(), "no longer exists") {
		t.Error("expected missing task message")
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := runCmd(cmd).(msgs.GoToListMsg); !ok {
		t.Error("esc should go back to the list")
	}
}

func TestCalendar_Navigation(t *testing.T) {
	s := newTestStore(t)
	m := NewCalendarModel(s.Snapshot(), nowFunc)
	m.SetSize(80, 30)

	if got := m.SelectedDay().Date; got != "2024-05-14" {
		t.Fatalf("expected today selected, got %s", got)
	}
	if n := len(m.SelectedDay().Tasks); n != 1 {
		t.Errorf("expected 1 task today, got %d", n)
	}

	m, _ = m.Update(runes("l"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.SelectedDay().Date; got != "2024-05-22" {
		t.Errorf("expected 2024-05-22, got %s", got)
	}

	m, _ = m.Update(runes("]"))
	if got := m.SelectedDay().Date; got != "2024-06-22" {
		t.Errorf("expected 2024-06-22, got %s", got)
	}
	m, _ = m.Update(runes("["))
	m, _ = m.Update(runes("["))
	if m.Month().Month != time.April {
		t.Errorf("expected April, got %s", m.Month().Month)
	}

	m, _ = m.Update(runes("t"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if open, ok := runCmd(cmd).(msgs.OpenTaskMsg); !ok || open.ID != "t1" {
		t.Errorf("expected to open t1, got %#v", runCmd(cmd))
	}
	if !strings.Contains(m.View(), "May 2024") {
		t.Error("expected month title")
	}
}

func TestCalendar_ShiftClampsDay(t *testing.T) {
	m := NewCalendarModel(nil, func() time.Time { return time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC) })
	m.shiftMonth(1)
	if got := m.SelectedDay().Date; got != "2024-02-29" {
		t.Errorf("expected 2024-02-29, got %s", got)
	}
}

func TestDashboard(t *testing.T) {
	s := newTestStore(t)
	m := NewDashboardModel(s.Snapshot())
	m.SetSize(120, 40)

	v := m.View()
	for _, want := range []string{"Approved purchases:", "52", "By category", "By status", "Monthly payroll"} {
		if !strings.Contains(v, want) {
			t.Errorf("expected %q in dashboard", want)
		}
	}

	_, cmd := m.Update(runes("l"))
	if _, ok := runCmd(cmd).(msgs.GoToListMsg); !ok {
		t.Error("expected l to open the task list")
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if open, ok := runCmd(cmd).(msgs.OpenTaskMsg); !ok || open.ID != "t1" {
		t.Errorf("expected to open the urgent task t1, got %#v", runCmd(cmd))
	}
}
