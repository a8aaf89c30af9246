package record

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amalmed/opstrack/internal/ids"
)

// ErrItemNotFound is returned when a checklist item, purchase item or term index does not exist.
var ErrItemNotFound = errors.New("item not found")

// AddChecklistItem appends an incomplete step and recomputes progress.
func (t *Task) AddChecklistItem(text string) (ChecklistItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ChecklistItem{}, &ValidationError{Field: "checklist", Message: "item text is required"}
	}
	item := ChecklistItem{ID: ids.ItemID(), Text: text}
	t.Checklist = append(t.Checklist, item)
	t.Progress = ChecklistProgress(t.Checklist)
	return item, nil
}

// SetChecklistItem sets the completed flag of one step and recomputes progress.
func (t *Task) SetChecklistItem(itemID string, completed bool) error {
	for i := range t.Checklist {
		if t.Checklist[i].ID == itemID {
			t.Checklist[i].Completed = completed
			t.Progress = ChecklistProgress(t.Checklist)
			return nil
		}
	}
	return fmt.Errorf("checklist %w: %s", ErrItemNotFound, itemID)
}

// RemoveChecklistItem deletes one step. Progress is recomputed while steps remain;
// removing the last step leaves the previous progress for manual editing.
func (t *Task) RemoveChecklistItem(itemID string) error {
	for i := range t.Checklist {
		if t.Checklist[i].ID == itemID {
			t.Checklist = append(t.Checklist[:i:i], t.Checklist[i+1:]...)
			if len(t.Checklist) > 0 {
				t.Progress = ChecklistProgress(t.Checklist)
			}
			return nil
		}
	}
	return fmt.Errorf("checklist %w: %s", ErrItemNotFound, itemID)
}
