package view

import (
	"time"

	"github.com/amalmed/opstrack/internal/record"
)

// Day is one cell of a calendar month.
type Day struct {
	Day   int
	Date  string
	Tasks []record.Task
}

// Month is a calendar page. LeadingBlanks is the weekday of the 1st with Sunday
// as 0, the number of empty cells before it in a Sunday-first grid.
type Month struct {
	Year          int
	Month         time.Month
	LeadingBlanks int
	Days          []Day
}

// Calendar buckets tasks by exact equality of their date with each day of the month.
func Calendar(tasks []record.Task, year int, month time.Month) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	total := first.AddDate(0, 1, -1).Day()

	byDate := make(map[string][]record.Task)
	for i := range tasks {
		byDate[tasks[i].Date] = append(byDate[tasks[i].Date], tasks[i])
	}

	m := Month{
		Year:          first.Year(),
		Month:         first.Month(),
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]Day, total),
	}
	for d := 1; d <= total; d++ {
		date := time.Date(m.Year, m.Month, d, 0, 0, 0, 0, time.UTC).Format(record.DateLayout)
		m.Days[d-1] = Day{Day: d, Date: date, Tasks: byDate[date]}
	}
	return m
}

// Shift returns the year and month offset by n months.
func Shift(year int, month time.Month, n int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return t.Year(), t.Month()
}
