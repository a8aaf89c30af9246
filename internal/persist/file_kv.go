package persist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileKV stores each slot as <dir>/<key>.json.
type FileKV struct {
	dir string
}

// NewFileKV creates the directory if needed.
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileKV) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Put writes to a temp file and renames it over the slot, so readers never see
// a partial value.
func (f *FileKV) Put(_ context.Context, key string, value []byte) error {
	target := f.path(key)
	tmpPath := fmt.Sprintf("%s.tmp.%d", target, os.Getpid())

	if err := os.WriteFile(tmpPath, value, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func (f *FileKV) Close() error { return nil }
