package persist

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/amalmed/opstrack/internal/record"
)

// BackupSlot receives an unreadable collection before the seed list replaces it.
const BackupSlot = TasksSlot + "_unreadable"

// Gateway loads and saves the whole task collection.
type Gateway struct {
	kv  KV
	log *zap.Logger
	now func() time.Time
}

// NewGateway wraps kv. A nil logger discards output; a nil clock uses time.Now.
func NewGateway(kv KV, log *zap.Logger, now func() time.Time) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Gateway{kv: kv, log: log, now: now}
}

// LoadResult describes where the loaded collection came from.
type LoadResult struct {
	Tasks []record.Task
	// Seeded is set when the built-in list was used.
	Seeded bool
	// FromVersion is the schema version found in storage.
	FromVersion int
	// Migrated counts tasks changed by a schema upgrade.
	Migrated int
	// Warning is a recovered failure: the collection was unreadable and the
	// seed list was used instead.
	Warning error
}

// Load reads the collection. A missing collection yields the seed list. An
// unreadable one is copied to BackupSlot and also yields the seed list, with
// the decode failure reported in LoadResult.Warning. Storage read failures
// are returned as errors.
func (g *Gateway) Load(ctx context.Context) (LoadResult, error) {
	data, err := g.kv.Get(ctx, TasksSlot)
	if errors.Is(err, ErrSlotNotFound) {
		g.log.Info("no saved collection, loading seed list")
		return g.seed(nil)
	}
	if err != nil {
		return LoadResult{}, &PersistenceError{Op: "read", Slot: TasksSlot, Err: err}
	}

	tasks, err := DecodeTasks(data)
	if err != nil {
		warning := &PersistenceError{Op: "decode", Slot: TasksSlot, Err: err}
		g.log.Warn("saved collection is unreadable, loading seed list", zap.Error(err))
		if putErr := g.kv.Put(ctx, BackupSlot, data); putErr != nil {
			g.log.Warn("failed to back up unreadable collection", zap.Error(putErr))
		}
		return g.seed(warning)
	}

	version := g.schemaVersion(ctx)
	migrated, err := Migrate(tasks, version)
	if err != nil {
		return LoadResult{}, &PersistenceError{Op: "migrate", Slot: TasksSlot, Err: err}
	}
	if version < SchemaVersion {
		g.log.Warn("migrated saved collection",
			zap.Int("from", version),
			zap.Int("to", SchemaVersion),
			zap.Int("tasks", migrated))
	}

	return LoadResult{Tasks: tasks, FromVersion: version, Migrated: migrated}, nil
}

// schemaVersion returns the stored version. A collection saved without one
// predates versioning and is version 1.
func (g *Gateway) schemaVersion(ctx context.Context) int {
	data, err := g.kv.Get(ctx, SchemaSlot)
	if err != nil {
		if !errors.Is(err, ErrSlotNotFound) {
			g.log.Warn("failed to read schema version", zap.Error(err))
		}
		return 1
	}
	v, err := decodeSchema(data)
	if err != nil {
		g.log.Warn("invalid schema version", zap.ByteString("value", data))
		return 1
	}
	return v
}

func (g *Gateway) seed(warning error) (LoadResult, error) {
	tasks, err := Seed(g.now())
	if err != nil {
		return LoadResult{}, err
	}
	return LoadResult{Tasks: tasks, Seeded: true, FromVersion: SchemaVersion, Warning: warning}, nil
}

// SaveAll overwrites the stored collection and stamps the current schema version.
func (g *Gateway) SaveAll(ctx context.Context, tasks []record.Task) error {
	data, err := EncodeTasks(tasks)
	if err != nil {
		return &PersistenceError{Op: "encode", Slot: TasksSlot, Err: err}
	}
	if err := g.kv.Put(ctx, TasksSlot, data); err != nil {
		return &PersistenceError{Op: "write", Slot: TasksSlot, Err: err}
	}
	if err := g.kv.Put(ctx, SchemaSlot, encodeSchema(SchemaVersion)); err != nil {
		return &PersistenceError{Op: "write", Slot: SchemaSlot, Err: err}
	}
	return nil
}

// Close releases the backend.
func (g *Gateway) Close() error {
	return g.kv.Close()
}
