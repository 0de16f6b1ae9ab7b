package docstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestStore(t *testing.T, backend Backend) (*Store, *stepClock) {
	t.Helper()
	if backend == nil {
		backend = NewMemoryBackend()
	}
	clock := &stepClock{now: time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)}
	store, err := New(backend, WithClock(clock.Now))
	require.NoError(t, err)
	return store, clock
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	store, _ := newTestStore(t, nil)
	ctx := context.Background()

	doc, err := store.Create(ctx, "bowsers", Document{"number": "BW-1", "capacity": 5000})
	require.NoError(t, err)
	require.NotEmpty(t, doc.ID())
	require.Equal(t, doc[FieldCreatedAt], doc[FieldUpdatedAt])
	require.Equal(t, float64(5000), doc["capacity"])

	kept, err := store.Create(ctx, "bowsers", Document{"id": "fixed-id", "number": "BW-2"})
	require.NoError(t, err)
	require.Equal(t, "fixed-id", kept.ID())

	all, err := store.All(ctx, "bowsers")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "BW-1", all[0]["number"])
	require.Equal(t, "BW-2", all[1]["number"])
}

func TestCreateRequiresCollection(t *testing.T) {
	store, _ := newTestStore(t, nil)
	_, err := store.Create(context.Background(), " ", Document{})
	require.Error(t, err)
}

func TestGetAndAllOnMissingCollection(t *testing.T) {
	store, _ := newTestStore(t, nil)
	ctx := context.Background()

	_, err := store.Get(ctx, "alerts", "nope")
	require.ErrorIs(t, err, ErrNotFound)

	all, err := store.All(ctx, "alerts")
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestUpdateTouchesOnlyPatchedFieldsAndUpdatedAt(t *testing.T) {
	store, _ := newTestStore(t, nil)
	ctx := context.Background()

	created, err := store.Create(ctx, "invoices", Document{"invoice_number": "INV-1", "status": "pending", "amount": 120.5})
	require.NoError(t, err)

	updated, err := store.Update(ctx, "invoices", created.ID(), Document{"status": "paid", "id": "hijack", "created_at": "1999-01-01"})
	require.NoError(t, err)

	require.Equal(t, created.ID(), updated.ID())
	require.Equal(t, "paid", updated["status"])
	require.Equal(t, created[FieldCreatedAt], updated[FieldCreatedAt])
	require.NotEqual(t, created[FieldUpdatedAt], updated[FieldUpdatedAt])

	for key, value := range created {
		if key == "status" || key == FieldUpdatedAt {
			continue
		}
		require.Equal(t, value, updated[key], "field %s changed", key)
	}

	_, err = store.Update(ctx, "invoices", "missing", Document{"status": "void"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTwice(t *testing.T) {
	store, _ := newTestStore(t, nil)
	ctx := context.Background()

	doc, err := store.Create(ctx, "partners", Document{"name": "Water Co"})
	require.NoError(t, err)

	deleted, err := store.Delete(ctx, "partners", doc.ID())
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = store.Delete(ctx, "partners", doc.ID())
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestQueryExactMatch(t *testing.T) {
	store, _ := newTestStore(t, nil)
	ctx := context.Background()

	_, err := store.BulkCreate(ctx, "deployments", []Document{
		{"status": "active", "priority": "high", "population_affected": 1200},
		{"status": "active", "priority": "low"},
		{"status": "completed", "priority": "high"},
	})
	require.NoError(t, err)

	active, err := store.Query(ctx, "deployments", Document{"status": "active"})
	require.NoError(t, err)
	require.Len(t, active, 2)

	both, err := store.Query(ctx, "deployments", Document{"status": "active", "priority": "high"})
	require.NoError(t, err)
	require.Len(t, both, 1)

	byNumber, err := store.Query(ctx, "deployments", Document{"population_affected": 1200})
	require.NoError(t, err)
	require.Len(t, byNumber, 1)

	missingField, err := store.Query(ctx, "deployments", Document{"population_affected": nil})
	require.NoError(t, err)
	require.Empty(t, missingField)

	everything, err := store.Query(ctx, "deployments", Document{})
	require.NoError(t, err)
	require.Len(t, everything, 3)
}

func TestBulkUpdateAndDelete(t *testing.T) {
	store, _ := newTestStore(t, nil)
	ctx := context.Background()

	created, err := store.BulkCreate(ctx, "alerts", []Document{
		{"title": "a", "status": "open"},
		{"title": "b", "status": "open"},
		{"title": "c", "status": "open"},
	})
	require.NoError(t, err)

	updated, err := store.BulkUpdate(ctx, "alerts", []Document{
		{"id": created[0].ID(), "status": "resolved"},
		{"id": "ghost", "status": "resolved"},
		{"status": "no id"},
		{"id": created[2].ID(), "status": "resolved"},
	})
	require.NoError(t, err)
	require.Len(t, updated, 2)

	resolved, err := store.Query(ctx, "alerts", Document{"status": "resolved"})
	require.NoError(t, err)
	require.Len(t, resolved, 2)

	n, err := store.BulkDelete(ctx, "alerts", []string{created[0].ID(), created[1].ID(), "ghost"})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	rest, err := store.All(ctx, "alerts")
	require.NoError(t, err)
	require.Len(t, rest, 1)
	require.Equal(t, "c", rest[0]["title"])

	n, err = store.BulkDelete(ctx, "unknown", []string{"x"})
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestCollectionsAreIndependent(t *testing.T) {
	store, _ := newTestStore(t, nil)
	ctx := context.Background()

	doc, err := store.Create(ctx, "locations", Document{"name": "Depot"})
	require.NoError(t, err)

	_, err = store.Get(ctx, "bowsers", doc.ID())
	require.ErrorIs(t, err, ErrNotFound)
}

type failingBackend struct{ MemoryBackend }

func (f *failingBackend) Save(context.Context, Data) error { return fmt.Errorf("disk full") }

func TestSaveFailureSurfaces(t *testing.T) {
	store, _ := newTestStore(t, &failingBackend{})
	_, err := store.Create(context.Background(), "bowsers", Document{"number": "BW-9"})
	require.ErrorContains(t, err, "disk full")
}
