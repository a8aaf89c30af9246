// Package persist mirrors the task collection into a key-value slot store.
//
// The collection is written wholesale under one slot and its schema version
// under another. Three backends implement KV: plain files, a SQLite table and
// an in-memory map.
package persist

import (
	"context"
	"errors"
	"fmt"
)

// Slot names.
const (
	TasksSlot  = "amal_tasks"
	SchemaSlot = "amal_tasks_schema"
)

// ErrSlotNotFound is returned by KV.Get when nothing has been stored under a key.
var ErrSlotNotFound = errors.New("slot not found")

// KV is a flat string-keyed blob store. Put overwrites the previous value in full.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// PersistenceError wraps a storage or serialization failure.
type PersistenceError struct {
	Op   string
	Slot string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s %s: %v", e.Op, e.Slot, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
