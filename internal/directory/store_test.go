package directory_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m3rciful/cryptobot/internal/directory"
	"github.com/m3rciful/cryptobot/internal/market"
)

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "coingecko_cache.json")
	store := directory.NewFileStore(path)
	ctx := context.Background()

	_, err := store.Get(ctx)
	require.ErrorIs(t, err, directory.ErrCacheMiss)

	fetched := time.Date(2024, 5, 1, 12, 0, 0, 250_000_000, time.UTC)
	require.NoError(t, store.Set(ctx, directory.Snapshot{FetchedAt: fetched, Coins: sampleCoins}))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleCoins, got.Coins)
	assert.WithinDuration(t, fetched, got.FetchedAt, time.Millisecond)

	// only the target file remains after the rename
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "coingecko_cache.json", entries[0].Name())
}

func TestFileStoreFormat(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cache.json")
	store := directory.NewFileStore(path)
	fetched := time.Unix(1714564800, 0)
	require.NoError(t, store.Set(context.Background(), directory.Snapshot{
		FetchedAt: fetched,
		Coins:     sampleCoins[:1],
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw struct {
		Timestamp float64 `json:"timestamp"`
		Coins     []map[string]string
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.InDelta(t, 1714564800, raw.Timestamp, 1e-6)
	assert.Equal(t, []map[string]string{{"id": "bitcoin", "symbol": "btc", "name": "Bitcoin"}}, raw.Coins)
}

func TestFileStoreReadsForeignFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"timestamp": 1714564800.5, "coins": [{"id": "tether", "symbol": "usdt", "name": "Tether"}]}`), 0o644))

	snap, err := directory.NewFileStore(path).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Unix(1714564800, 500_000_000), snap.FetchedAt)
	assert.Equal(t, []market.Listing{{ID: "tether", Symbol: "usdt", Name: "Tether"}}, snap.Coins)
}

func TestFileStoreCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := directory.NewFileStore(path).Get(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, directory.ErrCacheMiss)
}

func TestSQLStoreRoundTrip(t *testing.T) {
	t.Parallel()

	db, err := sqlx.Connect("sqlite", filepath.Join(t.TempDir(), "directory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := directory.NewSQLStore(db)
	ctx := context.Background()
	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, store.EnsureSchema(ctx))

	_, err = store.Get(ctx)
	require.ErrorIs(t, err, directory.ErrCacheMiss)

	first := time.UnixMilli(1714564800123)
	require.NoError(t, store.Set(ctx, directory.Snapshot{FetchedAt: first, Coins: sampleCoins}))
	second := first.Add(time.Hour)
	require.NoError(t, store.Set(ctx, directory.Snapshot{FetchedAt: second, Coins: sampleCoins[:2]}))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.True(t, second.Equal(got.FetchedAt))
	assert.Equal(t, sampleCoins[:2], got.Coins)

	var rows int
	require.NoError(t, db.Get(&rows, `SELECT COUNT(*) FROM directory_snapshots`))
	assert.Equal(t, 1, rows)
}

func TestSnapshotValid(t *testing.T) {
	t.Parallel()

	now := time.Now()
	snap := directory.Snapshot{FetchedAt: now.Add(-time.Hour + time.Second), Coins: sampleCoins}
	assert.True(t, snap.Valid(now, time.Hour))
	assert.False(t, snap.Valid(now.Add(time.Second), time.Hour))
	assert.False(t, directory.Snapshot{FetchedAt: now}.Valid(now, time.Hour))
	assert.False(t, directory.Snapshot{Coins: sampleCoins}.Valid(now, time.Hour))
}
