package record

import "fmt"

// Status is the workflow state of a task. Any status may be assigned from any other;
// there is no transition table.
type Status string

// Status tokens, as persisted.
const (
	StatusDraft            Status = "draft"
	StatusPending          Status = "pending"
	StatusInProgress       Status = "in_progress"
	StatusSubmitted        Status = "submitted"
	StatusAwaitingApproval Status = "awaiting_approval"
	StatusApproved         Status = "approved"
	StatusRejected         Status = "rejected"
	StatusCompleted        Status = "completed"
	StatusCancelled        Status = "cancelled"
	StatusOverdue          Status = "overdue"
)

var statuses = []Status{
	StatusDraft,
	StatusPending,
	StatusInProgress,
	StatusSubmitted,
	StatusAwaitingApproval,
	StatusApproved,
	StatusRejected,
	StatusCompleted,
	StatusCancelled,
	StatusOverdue,
}

// Statuses returns every status in declaration order.
func Statuses() []Status {
	return append([]Status(nil), statuses...)
}

// Valid reports whether s is a known status token.
func (s Status) Valid() bool {
	_, ok := statusDisplay[s]
	return ok
}

// Label returns the display label, or the raw token when unknown.
func (s Status) Label() string {
	if d, ok := statusDisplay[s]; ok {
		return d.Label
	}
	return string(s)
}

// Color returns the display color in #rrggbb form.
func (s Status) Color() string {
	return statusDisplay[s].Color
}

// Done reports whether the status counts as finished on the dashboard.
func (s Status) Done() bool {
	return s == StatusCompleted || s == StatusApproved
}

// Open reports whether the status counts as pending work on the dashboard.
func (s Status) Open() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusAwaitingApproval
}

// ParseStatus converts a token into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

// Importance orders tasks by urgency: critical > high > medium > low.
type Importance string

const (
	ImportanceCritical Importance = "critical"
	ImportanceHigh     Importance = "high"
	ImportanceMedium   Importance = "medium"
	ImportanceLow      Importance = "low"
)

var importances = []Importance{ImportanceCritical, ImportanceHigh, ImportanceMedium, ImportanceLow}

// Importances returns every importance from most to least urgent.
func Importances() []Importance {
	return append([]Importance(nil), importances...)
}

// Rank returns 4 for critical down to 1 for low, and 0 for unknown values.
func (i Importance) Rank() int {
	switch i {
	case ImportanceCritical:
		return 4
	case ImportanceHigh:
		return 3
	case ImportanceMedium:
		return 2
	case ImportanceLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether i is a known importance token.
func (i Importance) Valid() bool {
	return i.Rank() > 0
}

// Urgent reports whether the importance counts as urgent on the dashboard.
func (i Importance) Urgent() bool {
	return i == ImportanceCritical || i == ImportanceHigh
}

// Label returns the display label, or the raw token when unknown.
func (i Importance) Label() string {
	if d, ok := importanceDisplay[i]; ok {
		return d.Label
	}
	return string(i)
}

// Color returns the display color in #rrggbb form.
func (i Importance) Color() string {
	return importanceDisplay[i].Color
}

// ParseImportance converts a token into an Importance.
func ParseImportance(s string) (Importance, error) {
	imp := Importance(s)
	if !imp.Valid() {
		return "", fmt.Errorf("unknown importance %q", s)
	}
	return imp, nil
}

// Type describes how a task recurs or flows.
type Type string

const (
	TypeDaily     Type = "daily"
	TypeMonthly   Type = "monthly"
	TypePermanent Type = "permanent"
	TypeWorkflow  Type = "workflow"
)

// Valid reports whether t is a known type token.
func (t Type) Valid() bool {
	switch t {
	case TypeDaily, TypeMonthly, TypePermanent, TypeWorkflow:
		return true
	}
	return false
}

// ParseType converts a token into a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown task type %q", s)
	}
	return t, nil
}
