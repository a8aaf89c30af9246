// Package view computes read-only projections of a task collection: filtered and
// sorted lists, dashboard aggregates and calendar buckets. No function here
// mutates its input.
package view

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/amalmed/opstrack/internal/record"
)

// Query selects tasks. A nil pointer field means "any"; a pointer to "" for
// Assignee selects unassigned tasks.
type Query struct {
	Text     string
	Status   *record.Status
	Category *string
	Assignee *string
}

// IsZero reports whether the query matches every task.
func (q Query) IsZero() bool {
	return strings.TrimSpace(q.Text) == "" && q.Status == nil && q.Category == nil && q.Assignee == nil
}

var folder = cases.Fold()

// Matches reports whether t satisfies every predicate of the query. The text is a
// case-insensitive substring of the title, the notes or the purchase serial number.
func (q Query) Matches(t *record.Task) bool {
	if q.Status != nil && t.Status != *q.Status {
		return false
	}
	if q.Category != nil && t.Category != *q.Category {
		return false
	}
	if q.Assignee != nil && t.Assignee != *q.Assignee {
		return false
	}
	needle := strings.TrimSpace(q.Text)
	if needle == "" {
		return true
	}
	needle = folder.String(needle)
	if strings.Contains(folder.String(t.Title), needle) || strings.Contains(folder.String(t.Notes), needle) {
		return true
	}
	if sn := t.SerialNumber(); sn != "" && strings.Contains(folder.String(sn), needle) {
		return true
	}
	return false
}

// Filter returns the tasks matching q in their original order.
func Filter(tasks []record.Task, q Query) []record.Task {
	out := make([]record.Task, 0, len(tasks))
	for i := range tasks {
		if q.Matches(&tasks[i]) {
			out = append(out, tasks[i])
		}
	}
	return out
}
