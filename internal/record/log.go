package record

import (
	"fmt"
	"time"

	"github.com/amalmed/opstrack/internal/ids"
)

// NewLog builds an audit entry. An empty actor is recorded as DefaultActor.
func NewLog(actor, action string, now time.Time) TaskLog {
	if actor == "" {
		actor = DefaultActor
	}
	return TaskLog{
		ID:        ids.ItemID(),
		User:      actor,
		Action:    action,
		Timestamp: now.Format(LogTimestampLayout),
	}
}

// CreatedAction describes the creation of t in the audit log.
func CreatedAction(t *Task) string {
	if t.IsPurchase() {
		return "إنشاء طلب شراء جديد"
	}
	return "إنشاء مهمة جديدة"
}

// StatusChangedAction describes a status transition in the audit log.
func StatusChangedAction(from, to Status) string {
	return fmt.Sprintf("تحديث الحالة من %s إلى %s", from.Label(), to.Label())
}
