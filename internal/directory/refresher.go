package directory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m3rciful/cryptobot/core/logger"
)

const refreshTimeout = 2 * time.Minute

// Refresher refreshes the directory on a cron schedule.
type Refresher struct {
	cron     *cron.Cron
	resolver *Resolver
	spec     string
}

// NewRefresher schedules resolver.Refresh with a standard five-field cron
// spec or a descriptor such as "@every 30m".
func NewRefresher(resolver *Resolver, spec string) (*Refresher, error) {
	r := &Refresher{
		cron:     cron.New(),
		resolver: resolver,
		spec:     spec,
	}
	if _, err := r.cron.AddFunc(spec, r.run); err != nil {
		return nil, fmt.Errorf("register directory refresh %q: %w", spec, err)
	}
	return r, nil
}

// Start runs the schedule in the background.
func (r *Refresher) Start() {
	r.cron.Start()
	logger.Info(context.Background(), component, "refresher.start", slog.String("schedule", r.spec))
}

// Stop halts the schedule and waits for a running refresh until ctx is done.
func (r *Refresher) Stop(ctx context.Context) {
	done := r.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	logger.Info(context.Background(), component, "refresher.stop")
}

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	if _, err := r.resolver.Refresh(ctx); err != nil {
		logger.Warn(ctx, component, "refresher.run",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
	}
}
