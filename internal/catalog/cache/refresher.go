package cache

import (
	"context"
	"log/slog"
	"time"
)

// Refresher refreshes a Cache on a fixed interval. It keeps the refresh
// schedule out of the cache so grouping callers only ever see snapshots.
type Refresher struct {
	cache    *Cache
	interval time.Duration
	logger   *slog.Logger
}

func NewRefresher(cache *Cache, interval time.Duration, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{cache: cache, interval: interval, logger: logger}
}

// Run refreshes immediately and then every interval until ctx is done.
// Refresh failures are logged and retried on the next tick.
func (r *Refresher) Run(ctx context.Context) error {
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	if err := r.cache.Refresh(ctx); err != nil && ctx.Err() == nil {
		r.logger.ErrorContext(ctx, "record cache refresh failed", "error", err)
	}
}
