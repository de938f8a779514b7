// Package directory resolves ticker symbols to CoinGecko coin ids using a
// cached copy of the upstream coin list.
package directory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m3rciful/cryptobot/internal/market"
)

// ErrCacheMiss is returned by a Store that holds no snapshot.
var ErrCacheMiss = errors.New("directory: cache miss")

// Snapshot is the coin directory as fetched at FetchedAt.
type Snapshot struct {
	FetchedAt time.Time
	Coins     []market.Listing
}

// Valid reports whether the snapshot is non-empty and younger than ttl at now.
func (s Snapshot) Valid(now time.Time, ttl time.Duration) bool {
	if s.FetchedAt.IsZero() || len(s.Coins) == 0 {
		return false
	}
	return now.Sub(s.FetchedAt) < ttl
}

// Age returns how old the snapshot is at now.
func (s Snapshot) Age(now time.Time) time.Duration {
	if s.FetchedAt.IsZero() {
		return 0
	}
	return now.Sub(s.FetchedAt)
}

// Store persists the latest snapshot.
type Store interface {
	// Get returns the stored snapshot or ErrCacheMiss.
	Get(ctx context.Context) (Snapshot, error)
	// Set replaces the stored snapshot.
	Set(ctx context.Context, snap Snapshot) error
}

// MemoryStore keeps the snapshot in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the stored snapshot.
func (s *MemoryStore) Get(context.Context) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return Snapshot{}, ErrCacheMiss
	}
	return *s.snap, nil
}

// Set replaces the stored snapshot.
func (s *MemoryStore) Set(_ context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = &snap
	return nil
}
