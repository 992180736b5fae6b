package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"mapportal/internal/catalog/metrics"
	"mapportal/internal/catalog/models"
	"mapportal/pkg/platform/circuit"
	"mapportal/pkg/platform/sentinel"
)

// DefaultSourceTTL bounds how long a failing source's last good harvest is
// served in its place.
const DefaultSourceTTL = 30 * time.Minute

const defaultConcurrency = 4

// ErrCircuitOpen is recorded for a source skipped because it kept failing.
var ErrCircuitOpen = errors.New("harvest source circuit open")

// Source is anything that can produce the records of one catalog.
type Source interface {
	Name() string
	Harvest(ctx context.Context) ([]*models.Record, error)
}

// SourceStatus describes a source as of the last refresh.
type SourceStatus struct {
	Name      string `json:"name"`
	Records   int    `json:"records"`
	Stale     bool   `json:"stale"`
	Circuit   string `json:"circuit,omitempty"`
	LastError string `json:"lastError,omitempty"`
}

// Status describes the published snapshot.
type Status struct {
	Loaded      bool           `json:"loaded"`
	RefreshedAt time.Time      `json:"refreshedAt"`
	Records     int            `json:"records"`
	Sources     []SourceStatus `json:"sources"`
	LastError   string         `json:"lastError,omitempty"`
}

// Cache holds the current record snapshot harvested from a fixed list of
// sources. Snapshot never blocks on harvesting; Refresh replaces the
// snapshot atomically.
type Cache struct {
	sources     []Source
	lastGood    *gocache.Cache
	sourceTTL   time.Duration
	concurrency int
	logger      *slog.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
	breakers    map[string]*circuit.Breaker
	breakerOpts []circuit.Option

	refreshMu sync.Mutex

	mu       sync.RWMutex
	snapshot []*models.Record
	status   Status
}

type Option func(*Cache)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// WithSourceTTL sets how long a source's last good harvest survives
// subsequent failures.
func WithSourceTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.sourceTTL = ttl
		}
	}
}

// WithConcurrency limits how many sources are harvested at once.
func WithConcurrency(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithCircuitBreaker stops harvesting a source for cooldown once it has
// failed failures times in a row; its last good records are served
// meanwhile.
func WithCircuitBreaker(failures int, cooldown time.Duration) Option {
	return func(c *Cache) {
		if failures > 0 {
			c.breakerOpts = []circuit.Option{
				circuit.WithFailureThreshold(failures),
				circuit.WithSuccessThreshold(1),
				circuit.WithCooldown(cooldown),
			}
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New constructs a Cache over sources. Source names must be unique.
func New(sources []Source, opts ...Option) (*Cache, error) {
	seen := map[string]bool{}
	for _, s := range sources {
		if s == nil {
			return nil, fmt.Errorf("harvest source is required")
		}
		if seen[s.Name()] {
			return nil, fmt.Errorf("duplicate harvest source %q", s.Name())
		}
		seen[s.Name()] = true
	}

	c := &Cache{
		sources:     slices.Clone(sources),
		sourceTTL:   DefaultSourceTTL,
		concurrency: defaultConcurrency,
		logger:      slog.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lastGood = gocache.New(c.sourceTTL, 2*c.sourceTTL)
	if c.breakerOpts != nil {
		c.breakers = make(map[string]*circuit.Breaker, len(c.sources))
		opts := append(slices.Clone(c.breakerOpts), circuit.WithClock(func() time.Time { return c.now() }))
		for _, src := range c.sources {
			c.breakers[src.Name()] = circuit.New(src.Name(), opts...)
		}
	}
	return c, nil
}

// Snapshot returns the records of the last successful refresh. It fails
// with sentinel.ErrUnavailable until a refresh has succeeded.
func (c *Cache) Snapshot(ctx context.Context) ([]*models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.status.Loaded {
		if c.status.LastError != "" {
			return nil, fmt.Errorf("record cache not populated (%s): %w", c.status.LastError, sentinel.ErrUnavailable)
		}
		return nil, fmt.Errorf("record cache not populated: %w", sentinel.ErrUnavailable)
	}
	return slices.Clone(c.snapshot), nil
}

// Status reports the state of the published snapshot.
func (c *Cache) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	st := c.status
	st.Sources = slices.Clone(c.status.Sources)
	return st
}

type harvest struct {
	records []*models.Record
	err     error
}

func (c *Cache) harvest(ctx context.Context, src Source) harvest {
	b := c.breakers[src.Name()]
	if b == nil {
		records, err := src.Harvest(ctx)
		return harvest{records: records, err: err}
	}
	if !b.Allow() {
		return harvest{err: ErrCircuitOpen}
	}

	records, err := src.Harvest(ctx)
	if err != nil {
		if _, change := b.RecordFailure(); change.Opened {
			c.logger.WarnContext(ctx, "harvest source circuit opened", "source", src.Name())
		}
		return harvest{err: err}
	}
	if _, change := b.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "harvest source circuit closed", "source", src.Name())
	}
	return harvest{records: records}
}

// Refresh harvests every source concurrently and publishes the merged
// snapshot in source order. A failing source is replaced by its last good
// harvest while that is younger than the source TTL. Refresh fails, and
// keeps the previous snapshot, only when no source produced records.
func (c *Cache) Refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	start := c.now()
	results := make([]harvest, len(c.sources))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, src := range c.sources {
		g.Go(func() error {
			results[i] = c.harvest(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	var (
		merged   []*models.Record
		statuses = make([]SourceStatus, 0, len(c.sources))
		failures []error
		served   int
	)
	for i, src := range c.sources {
		name := src.Name()
		res := results[i]
		st := SourceStatus{Name: name}
		if b := c.breakers[name]; b != nil {
			st.Circuit = b.State().String()
		}

		records := res.records
		if res.err == nil {
			c.lastGood.Set(name, records, gocache.DefaultExpiration)
			c.metrics.IncrementHarvest(name, "ok")
		} else {
			st.LastError = res.err.Error()
			failures = append(failures, fmt.Errorf("harvest %s: %w", name, res.err))
			if cached, ok := c.lastGood.Get(name); ok {
				records, _ = cached.([]*models.Record)
				st.Stale = true
				c.metrics.IncrementHarvest(name, "stale")
				c.logger.WarnContext(ctx, "harvest failed, serving last good records",
					"source", name,
					"records", len(records),
					"error", res.err,
				)
			} else {
				records = nil
				c.metrics.IncrementHarvest(name, "failed")
				c.logger.ErrorContext(ctx, "harvest failed",
					"source", name,
					"error", res.err,
				)
				statuses = append(statuses, st)
				continue
			}
		}

		served++
		st.Records = len(records)
		statuses = append(statuses, st)
		merged = append(merged, records...)
	}

	c.metrics.ObserveRefresh(c.now().Sub(start))

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.sources) > 0 && served == 0 {
		err := errors.Join(failures...)
		c.status.LastError = err.Error()
		c.status.Sources = statuses
		return fmt.Errorf("refresh record cache: %w: %w", sentinel.ErrUnavailable, err)
	}

	if merged == nil {
		merged = []*models.Record{}
	}
	c.snapshot = merged
	c.status = Status{
		Loaded:      true,
		RefreshedAt: c.now(),
		Records:     len(merged),
		Sources:     statuses,
	}
	if len(failures) > 0 {
		c.status.LastError = errors.Join(failures...).Error()
	}
	c.metrics.SetSnapshotSize(len(merged))

	c.logger.InfoContext(ctx, "record cache refreshed",
		"records", len(merged),
		"sources", len(c.sources),
		"failed_sources", len(failures),
		"duration_ms", c.now().Sub(start).Milliseconds(),
	)
	return nil
}
