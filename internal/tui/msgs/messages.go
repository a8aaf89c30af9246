// Package msgs defines shared message types for TUI view transitions.
package msgs

import "github.com/amalmed/opstrack/internal/store"

// View transition messages

// GoToDashboardMsg signals transition to the dashboard.
type GoToDashboardMsg struct{}

// GoToListMsg signals transition to the task list.
type GoToListMsg struct{}

// GoToCalendarMsg signals transition to the calendar.
type GoToCalendarMsg struct{}

// OpenTaskMsg opens the detail view of a task.
type OpenTaskMsg struct {
	ID string
}

// StoreEventMsg carries a store event into the update loop.
type StoreEventMsg struct {
	Event store.Event
}

// MutationDoneMsg reports the outcome of a store mutation run as a command.
type MutationDoneMsg struct {
	Info string
	Err  error
}

// ExportedMsg reports a finished CSV export.
type ExportedMsg struct {
	Path  string
	Count int
	Err   error
}
