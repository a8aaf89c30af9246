package view

import (
	"math"
	"slices"

	"github.com/amalmed/opstrack/internal/record"
)

// Stats are the dashboard counters.
type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	Overdue        int `json:"overdue"`
	Urgent         int `json:"urgent"`
	CompletionRate int `json:"completionRate"`
}

// ComputeStats counts the collection. CompletionRate is 0 for an empty collection.
func ComputeStats(tasks []record.Task) Stats {
	var s Stats
	s.Total = len(tasks)
	for i := range tasks {
		t := &tasks[i]
		switch {
		case t.Status.Done():
			s.Completed++
		case t.Status.Open():
			s.Pending++
		case t.Status == record.StatusOverdue:
			s.Overdue++
		}
		if t.Importance.Urgent() {
			s.Urgent++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(100 * float64(s.Completed) / float64(s.Total)))
	}
	return s
}

// FinancialSummary sums the grand totals of approved purchase requests.
func FinancialSummary(tasks []record.Task) float64 {
	var sum float64
	for i := range tasks {
		t := &tasks[i]
		if t.IsPurchase() && t.Status == record.StatusApproved {
			sum += t.GrandTotal()
		}
	}
	return sum
}

// Bucket is one bar of a histogram.
type Bucket struct {
	Key   string
	Label string
	Color string
	Count int
}

// CategoryHistogram counts tasks per category in catalog order. Empty categories are dropped.
func CategoryHistogram(tasks []record.Task) []Bucket {
	counts := make(map[string]int)
	for i := range tasks {
		counts[tasks[i].Category]++
	}
	var out []Bucket
	for _, c := range record.Categories() {
		if n := counts[c.ID]; n > 0 {
			out = append(out, Bucket{Key: c.ID, Label: c.Label, Color: c.Color, Count: n})
		}
	}
	return out
}

// StatusHistogram counts tasks per status in status order. Empty statuses are dropped.
func StatusHistogram(tasks []record.Task) []Bucket {
	counts := make(map[record.Status]int)
	for i := range tasks {
		counts[tasks[i].Status]++
	}
	var out []Bucket
	for _, s := range record.Statuses() {
		if n := counts[s]; n > 0 {
			out = append(out, Bucket{Key: string(s), Label: s.Label(), Color: s.Color(), Count: n})
		}
	}
	return out
}

// UniqueAssignees returns the distinct non-empty assignees, sorted.
func UniqueAssignees(tasks []record.Task) []string {
	var out []string
	for i := range tasks {
		if a := tasks[i].Assignee; a != "" && !slices.Contains(out, a) {
			out = append(out, a)
		}
	}
	slices.Sort(out)
	return out
}

// HasUnassigned reports whether any task lacks an assignee.
func HasUnassigned(tasks []record.Task) bool {
	return slices.ContainsFunc(tasks, func(t record.Task) bool { return t.Assignee == "" })
}
