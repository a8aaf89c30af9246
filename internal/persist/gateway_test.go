package persist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amalmed/opstrack/internal/record"
)

var fixedNow = time.Date(2024, 5, 14, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestGateway_LoadEmptyUsesSeed(t *testing.T) {
	g := NewGateway(NewMemoryKV(), nil, clock)

	res, err := g.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Seeded)
	assert.NoError(t, res.Warning)
	require.Len(t, res.Tasks, 3)

	for _, task := range res.Tasks {
		assert.Equal(t, "2024-05-14", task.Date)
		assert.NoError(t, task.Validate())
	}

	pr := res.Tasks[2]
	require.NotNil(t, pr.PurchaseData)
	assert.Equal(t, 52.0, pr.PurchaseData.Items[0].Total)
	assert.Equal(t, 0.0, pr.PurchaseData.Items[1].Total)
	assert.Equal(t, 52.0, pr.PurchaseData.GrandTotal)
}

func TestGateway_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	g := NewGateway(kv, nil, clock)

	seeded, err := g.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, g.SaveAll(ctx, seeded.Tasks))

	res, err := g.Load(ctx)
	require.NoError(t, err)
	assert.False(t, res.Seeded)
	assert.Equal(t, SchemaVersion, res.FromVersion)
	assert.Zero(t, res.Migrated)
	assert.Equal(t, seeded.Tasks, res.Tasks)

	v, err := kv.Get(ctx, SchemaSlot)
	require.NoError(t, err)
	assert.Equal(t, "2", string(v))
}

func TestGateway_SaveEmptyCollection(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(NewMemoryKV(), nil, clock)
	require.NoError(t, g.SaveAll(ctx, nil))

	res, err := g.Load(ctx)
	require.NoError(t, err)
	assert.False(t, res.Seeded)
	assert.Empty(t, res.Tasks)
}

func TestGateway_UnreadableFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Put(ctx, TasksSlot, []byte("{not json")))
	g := NewGateway(kv, nil, clock)

	res, err := g.Load(ctx)
	require.NoError(t, err)
	assert.True(t, res.Seeded)

	var perr *PersistenceError
	require.ErrorAs(t, res.Warning, &perr)
	assert.Equal(t, "decode", perr.Op)

	backup, err := kv.Get(ctx, BackupSlot)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(backup))
}

func TestGateway_MigratesVersion1(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	legacy := `[{"id":"pr-1","title":"t","category":"purchase","status":"approved","purchaseData":{
		"serialNumber":"PR-2024-1002","items":[
			{"id":"item-1","name":"DIPROFOS 2 ML","quantity":2,"total":2},
			{"id":"item-2","name":"NEBULIZER M","quantity":50,"total":50},
			{"id":"item-3","name":"free","quantity":0,"total":0}
		],"grandTotal":52}}]`
	require.NoError(t, kv.Put(ctx, TasksSlot, []byte(legacy)))

	res, err := NewGateway(kv, nil, clock).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.FromVersion)
	assert.Equal(t, 1, res.Migrated)

	items := res.Tasks[0].PurchaseData.Items
	assert.Equal(t, 1.0, items[0].Price)
	assert.Equal(t, 2.0, items[0].Total)
	assert.Equal(t, 1.0, items[1].Price)
	assert.Equal(t, 0.0, items[2].Price)
	assert.Equal(t, 52.0, res.Tasks[0].PurchaseData.GrandTotal)
	assert.NotNil(t, res.Tasks[0].Checklist)
}

func TestGateway_MigrateKeepsLegacyTotals(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	legacy := `[{"id":"pr-2","title":"t","category":"purchase","status":"approved","purchaseData":{
		"serialNumber":"PR-2023-4410","items":[
			{"id":"item-1","name":"Oxygen refill","quantity":0,"total":500},
			{"id":"item-2","name":"Gauze","quantity":3,"total":0.3},
			{"id":"item-3","name":"Gloves","quantity":3,"total":10}
		],"grandTotal":510.3}}]`
	require.NoError(t, kv.Put(ctx, TasksSlot, []byte(legacy)))

	res, err := NewGateway(kv, nil, clock).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Migrated)

	items := res.Tasks[0].PurchaseData.Items
	assert.Equal(t, 1.0, items[0].Quantity)
	assert.Equal(t, 500.0, items[0].Price)
	assert.Equal(t, 500.0, items[0].Total)

	assert.Equal(t, 0.1, items[1].Price)
	assert.InDelta(t, 0.3, items[1].Total, 1e-9)

	assert.InDelta(t, 10.0, items[2].Total, 1e-9)
	assert.InDelta(t, 510.3, res.Tasks[0].PurchaseData.GrandTotal, 1e-9)
}

func TestGateway_RejectsNewerSchema(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Put(ctx, TasksSlot, []byte("[]")))
	require.NoError(t, kv.Put(ctx, SchemaSlot, []byte("7")))

	_, err := NewGateway(kv, nil, clock).Load(ctx)
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "migrate", perr.Op)
}

type failingKV struct {
	*MemoryKV
	err error
}

func (f failingKV) Put(context.Context, string, []byte) error { return f.err }

func TestGateway_SaveFailure(t *testing.T) {
	quota := errors.New("quota exceeded")
	g := NewGateway(failingKV{MemoryKV: NewMemoryKV(), err: quota}, nil, clock)

	err := g.SaveAll(context.Background(), []record.Task{{ID: "1"}})
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "write", perr.Op)
	assert.Equal(t, TasksSlot, perr.Slot)
	assert.ErrorIs(t, err, quota)
}

func TestSeed_IsIndependentPerCall(t *testing.T) {
	a, err := Seed(fixedNow)
	require.NoError(t, err)
	b, err := Seed(fixedNow)
	require.NoError(t, err)

	a[2].PurchaseData.Terms[0] = "changed"
	assert.NotEqual(t, "changed", b[2].PurchaseData.Terms[0])
}
