package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

const lockFileName = "opstrack.lock"

// ErrLocked is returned when another live process holds the data directory.
var ErrLocked = errors.New("data directory is in use")

// DataLock is a PID lock file that keeps a single writer per data directory.
type DataLock struct {
	path string
}

// NewDataLock creates a lock manager for dir.
func NewDataLock(dir string) *DataLock {
	return &DataLock{path: filepath.Join(dir, lockFileName)}
}

// Acquire takes the lock. Stale locks left by dead processes are removed.
func (l *DataLock) Acquire() error {
	err := l.create()
	if err == nil {
		return nil
	}
	if !os.IsExist(err) {
		return fmt.Errorf("failed to create lock file: %w", err)
	}

	data, readErr := os.ReadFile(l.path)
	if readErr != nil {
		return fmt.Errorf("failed to read existing lock file: %w", readErr)
	}

	pid, parseErr := strconv.Atoi(strings.TrimSpace(string(data)))
	if parseErr == nil && processExists(pid) {
		return fmt.Errorf("%w (PID %d)", ErrLocked, pid)
	}

	// Invalid or dead PID.
	if removeErr := os.Remove(l.path); removeErr != nil && !os.IsNotExist(removeErr) {
		return fmt.Errorf("failed to remove stale lock file: %w", removeErr)
	}

	if err := l.create(); err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: acquired by another process during retry", ErrLocked)
		}
		return fmt.Errorf("failed to create lock file on retry: %w", err)
	}
	return nil
}

func (l *DataLock) create() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	_, writeErr := fmt.Fprintf(f, "%d", os.Getpid())
	f.Close()
	if writeErr != nil {
		os.Remove(l.path)
		return fmt.Errorf("failed to write lock file: %w", writeErr)
	}
	return nil
}

// Release removes the lock file. Releasing an unheld lock is a no-op.
func (l *DataLock) Release() error {
	err := os.Remove(l.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// IsLocked reports whether a live process holds the lock. Stale lock files are removed.
func (l *DataLock) IsLocked() (bool, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read existing lock file: %w", err)
	}

	pid, parseErr := strconv.Atoi(strings.TrimSpace(string(data)))
	if parseErr == nil && processExists(pid) {
		return true, nil
	}

	if removeErr := os.Remove(l.path); removeErr != nil && !os.IsNotExist(removeErr) {
		return false, fmt.Errorf("failed to remove stale lock file: %w", removeErr)
	}
	return false, nil
}

// processExists sends signal 0, which checks for the process without signalling it.
func processExists(pid int) bool {
	if pid == os.Getpid() {
		return true
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
