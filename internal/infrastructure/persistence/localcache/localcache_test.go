package localcache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rml/bookkeeper/internal/domain/ledger"
	"github.com/rml/bookkeeper/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"), zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestCache_SaveAndLoad(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	docs := []ledger.Document{
		{"_id": "s1", "client": "alice", "amount": "5500"},
		{"_id": "s2", "client": "bob", "amount": "1200"},
	}
	require.NoError(t, c.Save(ctx, "user-1", ledger.CollectionDebts, docs))

	got, at, err := c.Load(ctx, "user-1", ledger.CollectionDebts)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[0]["client"])
	assert.WithinDuration(t, time.Now(), at, 5*time.Second)
}

func TestCache_SaveOverwritesPreviousSnapshot(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "user-1", ledger.CollectionSales, []ledger.Document{{"_id": "a"}}))
	require.NoError(t, c.Save(ctx, "user-1", ledger.CollectionSales, []ledger.Document{{"_id": "b"}, {"_id": "c"}}))

	got, _, err := c.Load(ctx, "user-1", ledger.CollectionSales)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCache_LoadMissingCollection(t *testing.T) {
	c := openTestCache(t)

	_, _, err := c.Load(context.Background(), "user-1", ledger.CollectionExpenses)
	assert.ErrorIs(t, err, shared.ErrOfflineNoCache)
}

func TestCache_SnapshotsArePartitionedByUser(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "user-1", ledger.CollectionSales, []ledger.Document{{"_id": "a"}}))

	_, _, err := c.Load(ctx, "user-2", ledger.CollectionSales)
	assert.ErrorIs(t, err, shared.ErrOfflineNoCache)
}

func TestCache_Purge(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "user-1", ledger.CollectionSales, []ledger.Document{{"_id": "a"}}))
	require.NoError(t, c.Save(ctx, "user-2", ledger.CollectionSales, []ledger.Document{{"_id": "b"}}))
	require.NoError(t, c.Purge(ctx, "user-1"))

	_, _, err := c.Load(ctx, "user-1", ledger.CollectionSales)
	assert.ErrorIs(t, err, shared.ErrOfflineNoCache)

	// Other users keep their snapshots
	got, _, err := c.Load(ctx, "user-2", ledger.CollectionSales)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
