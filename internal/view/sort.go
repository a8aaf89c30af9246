package view

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/amalmed/opstrack/internal/record"
)

// SortKey is the column a task list is ordered by.
type SortKey string

const (
	SortTitle      SortKey = "title"
	SortAssignee   SortKey = "assignee"
	SortStatus     SortKey = "status"
	SortImportance SortKey = "importance"
	SortDate       SortKey = "date"
)

// SortKeys returns the sortable columns in display order.
func SortKeys() []SortKey {
	return []SortKey{SortTitle, SortAssignee, SortStatus, SortImportance, SortDate}
}

// ParseSortKey converts a column name into a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys(), k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Direction is ascending or descending.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort is a sort key with its direction.
type Sort struct {
	Key       SortKey
	Direction Direction
}

// DefaultSort lists the newest dates first.
var DefaultSort = Sort{Key: SortDate, Direction: Desc}

// Toggle returns the order after selecting key as a column header: the same
// ascending key flips to descending, anything else starts ascending.
func (s Sort) Toggle(key SortKey) Sort {
	if s.Key == key && s.Direction == Asc {
		return Sort{Key: key, Direction: Desc}
	}
	return Sort{Key: key, Direction: Asc}
}

func (s Sort) String() string {
	return string(s.Key) + " " + string(s.Direction)
}

// Compare orders a and b by key in ascending order. Status compares by display
// label and importance by rank.
func Compare(key SortKey, a, b *record.Task) int {
	switch key {
	case SortTitle:
		return cmp.Compare(a.Title, b.Title)
	case SortAssignee:
		return cmp.Compare(a.Assignee, b.Assignee)
	case SortStatus:
		return cmp.Compare(a.Status.Label(), b.Status.Label())
	case SortImportance:
		return cmp.Compare(a.Importance.Rank(), b.Importance.Rank())
	case SortDate:
		return cmp.Compare(a.Date, b.Date)
	}
	return 0
}

// Sorted returns a stably sorted copy of tasks. Equal keys keep their input order
// in both directions.
func Sorted(tasks []record.Task, s Sort) []record.Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b record.Task) int {
		c := Compare(s.Key, &a, &b)
		if s.Direction == Desc {
			return -c
		}
		return c
	})
	return out
}

// List filters then sorts.
func List(tasks []record.Task, q Query, s Sort) []record.Task {
	return Sorted(Filter(tasks, q), s)
}
