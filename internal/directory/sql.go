package directory

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/cryptobot/internal/market"
)

const defaultSnapshotName = "coingecko"

const createSnapshotsTable = `
CREATE TABLE IF NOT EXISTS directory_snapshots (
	name TEXT PRIMARY KEY,
	fetched_at BIGINT NOT NULL,
	coins TEXT NOT NULL
);
`

type snapshotRow struct {
	FetchedAt int64  `db:"fetched_at"`
	Coins     string `db:"coins"`
}

// SQLStore keeps the snapshot as a single row of directory_snapshots.
// It works with both the sqlite and postgres drivers.
type SQLStore struct {
	db   *sqlx.DB
	name string
}

// NewSQLStore returns a store over db.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, name: defaultSnapshotName}
}

// EnsureSchema creates the snapshots table when missing. PostgreSQL
// deployments get the same table from migrations.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createSnapshotsTable); err != nil {
		return fmt.Errorf("create directory_snapshots: %w", err)
	}
	return nil
}

// Get loads the stored snapshot.
func (s *SQLStore) Get(ctx context.Context) (Snapshot, error) {
	var row snapshotRow
	query := s.db.Rebind(`SELECT fetched_at, coins FROM directory_snapshots WHERE name = ?`)
	if err := s.db.GetContext(ctx, &row, query, s.name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, ErrCacheMiss
		}
		return Snapshot{}, fmt.Errorf("select snapshot: %w", err)
	}

	var coins []market.Listing
	if err := json.Unmarshal([]byte(row.Coins), &coins); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot coins: %w", err)
	}
	return Snapshot{FetchedAt: time.UnixMilli(row.FetchedAt), Coins: coins}, nil
}

// Set upserts the snapshot row.
func (s *SQLStore) Set(ctx context.Context, snap Snapshot) error {
	coins, err := json.Marshal(snap.Coins)
	if err != nil {
		return fmt.Errorf("encode snapshot coins: %w", err)
	}
	query := s.db.Rebind(`
INSERT INTO directory_snapshots (name, fetched_at, coins) VALUES (?, ?, ?)
ON CONFLICT (name) DO UPDATE SET fetched_at = excluded.fetched_at, coins = excluded.coins`)
	if _, err := s.db.ExecContext(ctx, query, s.name, snap.FetchedAt.UnixMilli(), string(coins)); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}
