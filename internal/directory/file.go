package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/m3rciful/cryptobot/internal/market"
)

// fileFormat is the on-disk layout: epoch seconds plus the raw coin list.
type fileFormat struct {
	Timestamp float64          `json:"timestamp"`
	Coins     []market.Listing `json:"coins"`
}

// FileStore keeps the snapshot in a JSON file. Writes go to a temporary
// file in the same directory which is then renamed over the target.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Get reads the snapshot from disk.
func (s *FileStore) Get(context.Context) (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Snapshot{}, ErrCacheMiss
		}
		return Snapshot{}, fmt.Errorf("read directory cache: %w", err)
	}

	var raw fileFormat
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("decode directory cache: %w", err)
	}
	if raw.Timestamp <= 0 {
		return Snapshot{}, ErrCacheMiss
	}
	return Snapshot{FetchedAt: fromEpochSeconds(raw.Timestamp), Coins: raw.Coins}, nil
}

// Set writes the snapshot to disk atomically.
func (s *FileStore) Set(_ context.Context, snap Snapshot) error {
	data, err := json.Marshal(fileFormat{
		Timestamp: toEpochSeconds(snap.FetchedAt),
		Coins:     snap.Coins,
	})
	if err != nil {
		return fmt.Errorf("encode directory cache: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once renamed
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp cache file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp cache file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}
	return nil
}

func toEpochSeconds(t time.Time) float64 {
	if t.IsZero() {
		return 0
	}
	return float64(t.UnixNano()) / float64(time.Second)
}

func fromEpochSeconds(sec float64) time.Time {
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*float64(time.Second)))
}
