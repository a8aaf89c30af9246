package store

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JournalFileName is the activity journal inside the data directory.
const JournalFileName = "activity.log"

// JournalEntry is one line of the activity journal.
type JournalEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Event     EventKind `json:"event"`
	TaskID    string    `json:"task_id,omitempty"`
	Title     string    `json:"title,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Journal appends store events to a JSON Lines file.
type Journal struct {
	path string
}

// NewJournal creates a journal writing to dir/activity.log.
func NewJournal(dir string) *Journal {
	return &Journal{path: filepath.Join(dir, JournalFileName)}
}

// Path returns the journal file path.
func (j *Journal) Path() string {
	return j.path
}

// Append writes one event.
func (j *Journal) Append(e Event) error {
	entry := JournalEntry{
		Timestamp: e.Time,
		Event:     e.Kind,
		TaskID:    e.TaskID,
		Title:     e.Title,
		Detail:    e.Detail,
	}
	if e.Err != nil {
		entry.Error = e.Err.Error()
	}

	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	jsonBytes = append(jsonBytes, '\n')

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(jsonBytes)
	return err
}

// Attach subscribes the journal to s. Write failures are passed to onError.
func (j *Journal) Attach(s *Store, onError func(error)) (detach func()) {
	return s.Subscribe(func(e Event) {
		if err := j.Append(e); err != nil && onError != nil {
			onError(err)
		}
	})
}

// ReadJournal returns every entry in the journal at path, oldest first.
func ReadJournal(path string) ([]JournalEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []JournalEntry
	dec := json.NewDecoder(bytes.NewReader(data))
	for dec.More() {
		var e JournalEntry
		if err := dec.Decode(&e); err != nil {
			return entries, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
