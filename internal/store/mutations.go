package store

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/amalmed/opstrack/internal/ids"
	"github.com/amalmed/opstrack/internal/record"
)

// AddTask inserts t at the head of the collection. A missing id is generated,
// createdAt is stamped when empty, enum fields and date are defaulted, and a
// creation entry is appended to the audit log.
func (s *Store) AddTask(ctx context.Context, t record.Task) (record.Task, error) {
	task := t.Clone()
	now := s.now()

	if task.ID == "" {
		id, err := ids.TaskID()
		if err != nil {
			return record.Task{}, fmt.Errorf("failed to generate task id: %w", err)
		}
		task.ID = id
	}
	if task.CreatedAt == "" {
		task.CreatedAt = now.UTC().Format(record.TimestampLayout)
	}
	task.ApplyDefaults(now)
	task.ApplyPurchaseProgress()
	if err := task.Validate(); err != nil {
		return record.Task{}, err
	}
	task.Normalize()
	task.AppendLog(record.NewLog(s.actorFor(&task), record.CreatedAction(&task), now))

	s.mu.Lock()
	if s.indexOf(task.ID) >= 0 {
		s.mu.Unlock()
		return record.Task{}, &record.ValidationError{Field: "id", Message: fmt.Sprintf("%s already exists", task.ID)}
	}
	next := make([]record.Task, 0, len(s.tasks)+1)
	next = append(next, task)
	next = append(next, s.tasks...)

	s.log.Debug("task added", zap.String("id", task.ID))
	s.commit(ctx, next, []Event{taskEvent(EventTaskAdded, now, &task, record.CreatedAction(&task))})
	return task.Clone(), nil
}

// UpdateTask replaces the stored task with the same id. The id, createdAt,
// purchase serial number and audit log of the stored task are kept; a status
// change appends an audit entry.
func (s *Store) UpdateTask(ctx context.Context, t record.Task) (record.Task, error) {
	incoming := t.Clone()
	return s.mutate(ctx, t.ID, func(task *record.Task) (EventKind, string, error) {
		prev := *task
		*task = incoming
		task.CreatedAt = prev.CreatedAt
		task.Logs = prev.Logs
		if prev.PurchaseData != nil && task.PurchaseData != nil && prev.PurchaseData.SerialNumber != "" {
			task.PurchaseData.SerialNumber = prev.PurchaseData.SerialNumber
		}
		task.ApplyDefaults(s.now())
		task.ApplyPurchaseProgress()

		if task.Status != prev.Status {
			action := record.StatusChangedAction(prev.Status, task.Status)
			task.AppendLog(record.NewLog(s.actorFor(task), action, s.now()))
			return EventStatusChanged, action, nil
		}
		return EventTaskUpdated, "", nil
	})
}

// DeleteTask removes the task with id.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return &NotFoundError{ID: id}
	}
	removed := s.tasks[idx]
	next := slices.Concat(s.tasks[:idx], s.tasks[idx+1:])

	s.log.Debug("task deleted", zap.String("id", id))
	s.commit(ctx, next, []Event{taskEvent(EventTaskDeleted, s.now(), &removed, "")})
	return nil
}

// ChangeStatus sets the status and appends an audit entry naming the transition.
// Any status may follow any other.
func (s *Store) ChangeStatus(ctx context.Context, id string, status record.Status) (record.Task, error) {
	if !status.Valid() {
		return record.Task{}, &record.ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}
	return s.mutate(ctx, id, func(task *record.Task) (EventKind, string, error) {
		action := record.StatusChangedAction(task.Status, status)
		task.Status = status
		task.AppendLog(record.NewLog(s.actorFor(task), action, s.now()))
		return EventStatusChanged, action, nil
	})
}

// SetProgress sets manual progress on a task without a checklist.
func (s *Store) SetProgress(ctx context.Context, id string, progress int) (record.Task, error) {
	return s.mutate(ctx, id, func(task *record.Task) (EventKind, string, error) {
		if len(task.Checklist) > 0 {
			return "", "", &record.ValidationError{Field: "progress", Message: "progress follows the checklist"}
		}
		if progress < 0 || progress > 100 {
			return "", "", &record.ValidationError{Field: "progress", Message: "must be between 0 and 100"}
		}
		task.Progress = progress
		return EventTaskUpdated, "", nil
	})
}

// UpdateChecklistItem sets the completed flag of one checklist item.
func (s *Store) UpdateChecklistItem(ctx context.Context, id, itemID string, completed bool) (record.Task, error) {
	return s.mutate(ctx, id, func(task *record.Task) (EventKind, string, error) {
		return EventTaskUpdated, "", task.SetChecklistItem(itemID, completed)
	})
}

// ToggleChecklistItem flips the completed flag of one checklist item.
func (s *Store) ToggleChecklistItem(ctx context.Context, id, itemID string) (record.Task, error) {
	return s.mutate(ctx, id, func(task *record.Task) (EventKind, string, error) {
		idx := slices.IndexFunc(task.Checklist, func(c record.ChecklistItem) bool { return c.ID == itemID })
		if idx < 0 {
			return "", "", fmt.Errorf("checklist %w: %s", record.ErrItemNotFound, itemID)
		}
		return EventTaskUpdated, "", task.SetChecklistItem(itemID, !task.Checklist[idx].Completed)
	})
}

// AddChecklistItem appends a checklist step.
func (s *Store) AddChecklistItem(ctx context.Context, id, text string) (record.Task, error) {
	return s.mutate(ctx, id, func(task *record.Task) (EventKind, string, error) {
		_, err := task.AddChecklistItem(text)
		return EventTaskUpdated, "", err
	})
}

// RemoveChecklistItem deletes a checklist step.
func (s *Store) RemoveChecklistItem(ctx context.Context, id, itemID string) (record.Task, error) {
	return s.mutate(ctx, id, func(task *record.Task) (EventKind, string, error) {
		return EventTaskUpdated, "", task.RemoveChecklistItem(itemID)
	})
}

// UpdatePurchaseLineItem sets one field of a purchase item; the item total and
// grand total are recomputed.
func (s *Store) UpdatePurchaseLineItem(ctx context.Context, id, itemID string, field record.ItemField, value string) (record.Task, error) {
	return s.mutate(ctx, id, func(task *record.Task) (EventKind, string, error) {
		return EventTaskUpdated, "", task.SetPurchaseItemField(itemID, field, value)
	})
}

// AddPurchaseItem appends an empty line item and returns it with the updated task.
func (s *Store) AddPurchaseItem(ctx context.Context, id string) (record.Task, record.PurchaseItem, error) {
	var item record.PurchaseItem
	task, err := s.mutate(ctx, id, func(task *record.Task) (EventKind, string, error) {
		var err error
		item, err = task.AddPurchaseItem()
		return EventTaskUpdated, "", err
	})
	return task, item, err
}

// RemovePurchaseItem deletes a line item. The last item cannot be removed.
func (s *Store) RemovePurchaseItem(ctx context.Context, id, itemID string) (record.Task, error) {
	return s.mutate(ctx, id, func(task *record.Task) (EventKind, string, error) {
		return EventTaskUpdated, "", task.RemovePurchaseItem(itemID)
	})
}

// AddTerm appends a purchase clause.
func (s *Store) AddTerm(ctx context.Context, id, text string) (record.Task, error) {
	return s.mutate(ctx, id, func(task *record.Task) (EventKind, string, error) {
		return EventTaskUpdated, "", task.AddTerm(text)
	})
}

// SetTerm replaces the purchase clause at index.
func (s *Store) SetTerm(ctx context.Context, id string, index int, text string) (record.Task, error) {
	return s.mutate(ctx, id, func(task *record.Task) (EventKind, string, error) {
		return EventTaskUpdated, "", task.SetTerm(index, text)
	})
}

// RemoveTerm deletes the purchase clause at index.
func (s *Store) RemoveTerm(ctx context.Context, id string, index int) (record.Task, error) {
	return s.mutate(ctx, id, func(task *record.Task) (EventKind, string, error) {
		return EventTaskUpdated, "", task.RemoveTerm(index)
	})
}

// mutate applies fn to a copy of the task with id, re-establishes derived
// fields, validates and commits. The stored task is untouched when fn or
// validation fails.
func (s *Store) mutate(ctx context.Context, id string, fn func(*record.Task) (EventKind, string, error)) (record.Task, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return record.Task{}, &NotFoundError{ID: id}
	}

	task := s.tasks[idx].Clone()
	kind, detail, err := fn(&task)
	if err != nil {
		s.mu.Unlock()
		return record.Task{}, err
	}
	task.ID = id
	task.Normalize()
	if err := task.Validate(); err != nil {
		s.mu.Unlock()
		return record.Task{}, err
	}

	next := slices.Clone(s.tasks)
	next[idx] = task

	s.log.Debug("task updated", zap.String("id", id), zap.String("event", string(kind)))
	s.commit(ctx, next, []Event{taskEvent(kind, s.now(), &task, detail)})
	return task.Clone(), nil
}
