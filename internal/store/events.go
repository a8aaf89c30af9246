package store

import (
	"time"

	"github.com/amalmed/opstrack/internal/record"
)

// EventKind names what happened to the collection.
type EventKind string

const (
	EventTaskAdded          EventKind = "task_added"
	EventTaskUpdated        EventKind = "task_updated"
	EventTaskDeleted        EventKind = "task_deleted"
	EventStatusChanged      EventKind = "status_changed"
	EventPersistenceFailed  EventKind = "persistence_failed"
	EventPersistenceResumed EventKind = "persistence_resumed"
)

// Event is delivered to subscribers after a mutation has been applied.
type Event struct {
	Kind   EventKind
	Time   time.Time
	TaskID string
	Title  string
	// Detail is a short human-readable summary, such as the audit log action.
	Detail string
	// Err is set for EventPersistenceFailed.
	Err error
}

func taskEvent(kind EventKind, now time.Time, t *record.Task, detail string) Event {
	return Event{Kind: kind, Time: now, TaskID: t.ID, Title: t.Title, Detail: detail}
}
