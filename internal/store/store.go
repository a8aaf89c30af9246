// Package store holds the task collection in memory and applies every mutation
// to it. The collection is replaced wholesale on each change, so a snapshot
// taken by a reader never changes underneath it. After each mutation the full
// collection is handed to the persistence gateway.
package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/amalmed/opstrack/internal/persist"
	"github.com/amalmed/opstrack/internal/record"
)

// Saver persists the whole collection.
type Saver interface {
	SaveAll(ctx context.Context, tasks []record.Task) error
}

// Options configures a Store.
type Options struct {
	// Actor is recorded in audit log entries. When empty, the task assignee
	// is used, then record.DefaultActor.
	Actor  string
	Now    func() time.Time
	Logger *zap.Logger
}

// Store is the single source of truth for the task collection.
type Store struct {
	mu         sync.Mutex
	tasks      []record.Task
	saver      Saver
	memoryOnly bool
	warning    error

	subs    map[int]func(Event)
	nextSub int

	actor string
	now   func() time.Time
	log   *zap.Logger
}

// New returns a store over initial. A nil saver keeps the collection in memory only.
func New(initial []record.Task, saver Saver, opts Options) *Store {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	tasks := make([]record.Task, len(initial))
	for i := range initial {
		tasks[i] = initial[i].Clone()
		tasks[i].Normalize()
	}
	return &Store{
		tasks:      tasks,
		saver:      saver,
		memoryOnly: saver == nil,
		subs:       make(map[int]func(Event)),
		actor:      opts.Actor,
		now:        opts.Now,
		log:        opts.Logger,
	}
}

// Open loads the collection through gw and returns a store that saves back to it.
// A recovered load failure (unreadable data replaced by the seed list) is
// exposed through Warning.
func Open(ctx context.Context, gw *persist.Gateway, opts Options) (*Store, persist.LoadResult, error) {
	res, err := gw.Load(ctx)
	if err != nil {
		return nil, res, err
	}
	s := New(res.Tasks, gw, opts)
	if res.Warning != nil {
		s.warning = res.Warning
	}
	return s, res, nil
}

// Snapshot returns the current collection. The slice is never modified by the
// store; callers must not modify it either.
func (s *Store) Snapshot() []record.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks
}

// Get returns a deep copy of the task with id.
func (s *Store) Get(id string) (record.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return record.Task{}, &NotFoundError{ID: id}
	}
	return s.tasks[idx].Clone(), nil
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Warning returns the last persistence failure, or nil while saving works.
func (s *Store) Warning() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warning
}

// MemoryOnly reports whether mutations are no longer being persisted.
func (s *Store) MemoryOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memoryOnly
}

// Subscribe registers fn to be called after every mutation. Callbacks run on
// the mutating goroutine after the store lock is released.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Flush saves the current collection and, on success, leaves in-memory-only mode.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.saver == nil {
		s.mu.Unlock()
		return nil
	}
	wasMemoryOnly := s.memoryOnly
	err := s.saver.SaveAll(ctx, s.tasks)
	var events []Event
	if err != nil {
		s.warning = err
		s.memoryOnly = true
		events = append(events, Event{Kind: EventPersistenceFailed, Time: s.now(), Err: err})
	} else {
		s.warning = nil
		s.memoryOnly = false
		if wasMemoryOnly {
			events = append(events, Event{Kind: EventPersistenceResumed, Time: s.now()})
			s.log.Info("persistence resumed")
		}
	}
	subs := s.subscribers()
	s.mu.Unlock()

	notify(subs, events)
	return err
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t record.Task) bool { return t.ID == id })
}

func (s *Store) subscribers() []func(Event) {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]func(Event), len(ids))
	for i, id := range ids {
		out[i] = s.subs[id]
	}
	return out
}

func notify(subs []func(Event), events []Event) {
	for _, e := range events {
		for _, fn := range subs {
			fn(e)
		}
	}
}

// commit installs next as the collection, persists it and notifies subscribers.
// It must be called with s.mu held and releases it.
func (s *Store) commit(ctx context.Context, next []record.Task, events []Event) {
	s.tasks = next

	if !s.memoryOnly {
		if err := s.saver.SaveAll(ctx, next); err != nil {
			s.memoryOnly = true
			s.warning = err
			s.log.Warn("save failed, continuing in memory only", zap.Error(err))
			events = append(events, Event{Kind: EventPersistenceFailed, Time: s.now(), Err: err})
		}
	}

	subs := s.subscribers()
	s.mu.Unlock()
	notify(subs, events)
}

func (s *Store) actorFor(t *record.Task) string {
	if s.actor != "" {
		return s.actor
	}
	if t.Assignee != "" {
		return t.Assignee
	}
	return record.DefaultActor
}
