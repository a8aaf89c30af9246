// Package record defines the task and purchase request records and the invariants
// that tie their derived fields to their inputs.
package record

import (
	"math"
	"slices"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar date format of Task.Date.
	DateLayout = "2006-01-02"

	// TimestampLayout is the ISO-8601 format of Task.CreatedAt.
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

	// LogTimestampLayout is the human-readable format of TaskLog.Timestamp.
	LogTimestampLayout = "2006-01-02 15:04"

	// DefaultActor is recorded in audit log entries when no actor is known.
	DefaultActor = "المستخدم الحالي"
)

// ChecklistItem is a single completion step of a task.
type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// TaskLog is one audit log entry. Logs are append-only.
type TaskLog struct {
	ID        string `json:"id"`
	User      string `json:"user"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

// Task is a unit of administrative or clinical-operations work.
type Task struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Category     string          `json:"category"`
	SubCategory  string          `json:"subCategory"`
	Importance   Importance      `json:"importance"`
	Type         Type            `json:"type"`
	Status       Status          `json:"status"`
	Date         string          `json:"date"`
	Assignee     string          `json:"assignee,omitempty"`
	Department   string          `json:"department,omitempty"`
	Branch       string          `json:"branch,omitempty"`
	Notes        string          `json:"notes"`
	Checklist    []ChecklistItem `json:"checklist"`
	Attachments  []string        `json:"attachments,omitempty"`
	Progress     int             `json:"progress"`
	ActualTime   *float64        `json:"actualTime,omitempty"`
	CreatedAt    string          `json:"createdAt"`
	PurchaseData *PurchaseData   `json:"purchaseData,omitempty"`
	Logs         []TaskLog       `json:"logs"`
}

// IsPurchase reports whether the task is a purchase request.
func (t *Task) IsPurchase() bool {
	return t.Category == PurchaseCategory
}

// GrandTotal returns the purchase grand total, or 0 when the task has no purchase data.
func (t *Task) GrandTotal() float64 {
	if t.PurchaseData == nil {
		return 0
	}
	return t.PurchaseData.GrandTotal
}

// SerialNumber returns the purchase request number, or "" when absent.
func (t *Task) SerialNumber() string {
	if t.PurchaseData == nil {
		return ""
	}
	return t.PurchaseData.SerialNumber
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() Task {
	c := *t
	c.Checklist = slices.Clone(t.Checklist)
	c.Attachments = slices.Clone(t.Attachments)
	c.Logs = slices.Clone(t.Logs)
	if t.ActualTime != nil {
		v := *t.ActualTime
		c.ActualTime = &v
	}
	if t.PurchaseData != nil {
		pd := t.PurchaseData.Clone()
		c.PurchaseData = &pd
	}
	return c
}

// ApplyDefaults fills empty enum fields and the date. Purchase requests default to
// a high-importance workflow awaiting approval; other tasks to a pending permanent task.
func (t *Task) ApplyDefaults(now time.Time) {
	if t.IsPurchase() {
		if t.Importance == "" {
			t.Importance = ImportanceHigh
		}
		if t.Type == "" {
			t.Type = TypeWorkflow
		}
		if t.Status == "" {
			t.Status = StatusAwaitingApproval
		}
	} else {
		if t.Importance == "" {
			t.Importance = ImportanceMedium
		}
		if t.Type == "" {
			t.Type = TypePermanent
		}
		if t.Status == "" {
			t.Status = StatusPending
		}
	}
	if t.Date == "" {
		t.Date = now.Format(DateLayout)
	}
}

// Normalize re-establishes every derived field: item totals, grand total and
// checklist progress. Nil collections become empty so the record serializes stably.
func (t *Task) Normalize() {
	t.Title = strings.TrimSpace(t.Title)
	if t.Checklist == nil {
		t.Checklist = []ChecklistItem{}
	}
	if t.Logs == nil {
		t.Logs = []TaskLog{}
	}
	if len(t.Attachments) == 0 {
		t.Attachments = nil
	}
	if len(t.Checklist) > 0 {
		t.Progress = ChecklistProgress(t.Checklist)
	}
	t.Progress = min(max(t.Progress, 0), 100)
	if t.PurchaseData != nil {
		t.PurchaseData.Recalculate()
	}
}

// AppendLog appends an audit entry attributed to actor.
func (t *Task) AppendLog(entry TaskLog) {
	t.Logs = append(t.Logs, entry)
}

// ChecklistProgress returns round(100 * completed / total), or 0 for an empty list.
func ChecklistProgress(items []ChecklistItem) int {
	if len(items) == 0 {
		return 0
	}
	done := 0
	for _, it := range items {
		if it.Completed {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(items))))
}
