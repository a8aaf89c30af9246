package persist

import (
	"bytes"
	"context"
	"sync"
)

// MemoryKV keeps slots in a map. Nothing survives the process.
type MemoryKV struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{slots: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[key]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return bytes.Clone(v), nil
}

func (m *MemoryKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = bytes.Clone(value)
	return nil
}

func (m *MemoryKV) Close() error { return nil }
