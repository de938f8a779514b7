package directory

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/m3rciful/cryptobot/core/logger"
	"github.com/m3rciful/cryptobot/internal/market"
)

// DefaultTTL is how long a fetched directory stays valid.
const DefaultTTL = time.Hour

const component = "directory"

// Lister fetches the full upstream coin list.
type Lister interface {
	CoinsList(ctx context.Context) ([]market.Listing, error)
}

type index struct {
	snap     Snapshot
	bySymbol map[string]string
}

func newIndex(snap Snapshot) *index {
	idx := &index{snap: snap, bySymbol: make(map[string]string, len(snap.Coins))}
	for _, coin := range snap.Coins {
		key := strings.ToUpper(strings.TrimSpace(coin.Symbol))
		if key == "" {
			continue
		}
		// first entry in listing order wins
		if _, seen := idx.bySymbol[key]; !seen {
			idx.bySymbol[key] = coin.ID
		}
	}
	return idx
}

// Resolver maps symbols to coin ids. The active snapshot is replaced as a
// whole so concurrent readers never observe a partial refresh.
type Resolver struct {
	lister Lister
	store  Store
	ttl    time.Duration
	now    func() time.Time

	current atomic.Pointer[index]
	group   singleflight.Group
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStore persists snapshots in store.
func WithStore(store Store) Option {
	return func(r *Resolver) { r.store = store }
}

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(r *Resolver) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// NewResolver returns a resolver fetching from lister.
func NewResolver(lister Lister, opts ...Option) *Resolver {
	r := &Resolver{
		lister: lister,
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TTL returns the snapshot lifetime.
func (r *Resolver) TTL() time.Duration { return r.ttl }

// Resolve returns the coin id of the first directory entry whose symbol
// matches case-insensitively.
func (r *Resolver) Resolve(ctx context.Context, symbol string) (string, error) {
	const op = "directory.resolve"
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	if sym == "" {
		return "", market.Errorf(market.ErrNotFound, op, sym, errors.New("empty symbol"))
	}

	idx, err := r.load(ctx)
	if err != nil {
		return "", err
	}
	id, ok := idx.bySymbol[sym]
	if !ok {
		return "", market.Errorf(market.ErrNotFound, op, sym, nil)
	}
	return id, nil
}

// Refresh fetches the directory regardless of the cached copy.
func (r *Resolver) Refresh(ctx context.Context) (Snapshot, error) {
	idx, err := r.fetch(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return idx.snap, nil
}

// Current returns the snapshot in use, if any.
func (r *Resolver) Current() (Snapshot, bool) {
	idx := r.current.Load()
	if idx == nil {
		return Snapshot{}, false
	}
	return idx.snap, true
}

func (r *Resolver) valid(idx *index) bool {
	return idx != nil && idx.snap.Valid(r.now(), r.ttl)
}

func (r *Resolver) load(ctx context.Context) (*index, error) {
	if idx := r.current.Load(); r.valid(idx) {
		return idx, nil
	}

	v, err, _ := r.group.Do("load", func() (any, error) {
		if idx := r.current.Load(); r.valid(idx) {
			return idx, nil
		}
		if idx := r.loadStored(ctx); idx != nil {
			return idx, nil
		}
		return r.fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*index), nil
}

// loadStored publishes the stored snapshot when it is still valid.
// Store failures are logged and treated as a miss.
func (r *Resolver) loadStored(ctx context.Context) *index {
	if r.store == nil {
		return nil
	}
	snap, err := r.store.Get(ctx)
	switch {
	case errors.Is(err, ErrCacheMiss):
		logger.Debug(ctx, component, "cache.read", slog.String("cache", "miss"))
		return nil
	case err != nil:
		logger.Warn(ctx, component, "cache.read",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return nil
	}
	if !snap.Valid(r.now(), r.ttl) {
		logger.Debug(ctx, component, "cache.read",
			slog.String("cache", "miss"),
			slog.Duration("age", snap.Age(r.now())),
		)
		return nil
	}

	idx := newIndex(snap)
	r.current.Store(idx)
	logger.Debug(ctx, component, "cache.read",
		slog.String("cache", "hit"),
		slog.Int("entries", len(snap.Coins)),
	)
	return idx
}

func (r *Resolver) fetch(ctx context.Context) (*index, error) {
	v, err, shared := r.group.Do("fetch", func() (any, error) {
		// a cancelled turn must not fail the callers sharing this fetch
		fetchCtx := context.WithoutCancel(ctx)
		start := time.Now()

		coins, err := r.lister.CoinsList(fetchCtx)
		if err != nil {
			logger.Error(fetchCtx, component, "refresh",
				slog.String("status", "fail"),
				slog.String("err", err.Error()),
				slog.Duration("duration", logger.Took(start)),
			)
			if errors.Is(err, market.ErrUpstreamUnavailable) {
				return nil, err
			}
			return nil, market.Errorf(market.ErrUpstreamUnavailable, "directory.refresh", "", err)
		}

		snap := Snapshot{FetchedAt: r.now(), Coins: coins}
		idx := newIndex(snap)
		r.current.Store(idx)

		if r.store != nil {
			if err := r.store.Set(fetchCtx, snap); err != nil {
				logger.Warn(fetchCtx, component, "cache.write",
					slog.String("status", "fail"),
					slog.String("err", err.Error()),
				)
			}
		}

		logger.Info(fetchCtx, component, "refresh",
			slog.String("status", "ok"),
			slog.String("cache", "refresh"),
			slog.Int("entries", len(coins)),
			slog.Duration("duration", logger.Took(start)),
		)
		return idx, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Debug(ctx, component, "refresh.shared")
	}
	return v.(*index), nil
}
