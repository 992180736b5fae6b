package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"mapportal/internal/catalog/metrics"
	"mapportal/internal/catalog/models"
	"mapportal/pkg/platform/sentinel"
)

// =============================================================================
// Record Cache Test Suite
// =============================================================================
// The cache merges several harvest sources and must keep serving the last good
// data from a source that starts failing.

type stubSource struct {
	mu      sync.Mutex
	name    string
	records []*models.Record
	err     error
	calls   int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Harvest(context.Context) ([]*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func (s *stubSource) set(records []*models.Record, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records, s.err = records, err
}

type CacheSuite struct {
	suite.Suite
	ctx    context.Context
	logger *slog.Logger
	a, b   *stubSource
	ra, rb *models.Record
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupTest() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.ra = &models.Record{Identifier: "a-1"}
	s.rb = &models.Record{Identifier: "b-1"}
	s.a = &stubSource{name: "csw-a", records: []*models.Record{s.ra}}
	s.b = &stubSource{name: "csw-b", records: []*models.Record{s.rb}}
}

func (s *CacheSuite) newCache(opts ...Option) *Cache {
	opts = append([]Option{
		WithLogger(s.logger),
		WithMetrics(metrics.NewWith(prometheus.NewRegistry())),
	}, opts...)
	c, err := New([]Source{s.a, s.b}, opts...)
	s.Require().NoError(err)
	return c
}

func (s *CacheSuite) TestNew() {
	s.Run("duplicate source names are rejected", func() {
		_, err := New([]Source{s.a, &stubSource{name: "csw-a"}})
		s.Error(err)
		s.Contains(err.Error(), "duplicate harvest source")
	})

	s.Run("nil source is rejected", func() {
		_, err := New([]Source{nil})
		s.Error(err)
	})
}

func (s *CacheSuite) TestSnapshotBeforeRefresh() {
	c := s.newCache()
	_, err := c.Snapshot(s.ctx)
	s.ErrorIs(err, sentinel.ErrUnavailable)
	s.False(c.Status().Loaded)
}

func (s *CacheSuite) TestRefreshMergesInSourceOrder() {
	c := s.newCache()
	s.Require().NoError(c.Refresh(s.ctx))

	records, err := c.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Same(s.ra, records[0])
	s.Same(s.rb, records[1])

	st := c.Status()
	s.True(st.Loaded)
	s.Equal(2, st.Records)
	s.Empty(st.LastError)
}

func (s *CacheSuite) TestSnapshotIsACopy() {
	c := s.newCache()
	s.Require().NoError(c.Refresh(s.ctx))

	first, err := c.Snapshot(s.ctx)
	s.Require().NoError(err)
	first[0] = nil

	second, err := c.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.Same(s.ra, second[0])
}

func (s *CacheSuite) TestFailingSourceServesLastGood() {
	c := s.newCache()
	s.Require().NoError(c.Refresh(s.ctx))

	s.b.set(nil, errors.New("connection refused"))
	s.Require().NoError(c.Refresh(s.ctx))

	records, err := c.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.Len(records, 2)

	st := c.Status()
	s.Require().Len(st.Sources, 2)
	s.False(st.Sources[0].Stale)
	s.True(st.Sources[1].Stale)
	s.Contains(st.LastError, "connection refused")
}

func (s *CacheSuite) TestLastGoodExpires() {
	c := s.newCache(WithSourceTTL(10 * time.Millisecond))
	s.Require().NoError(c.Refresh(s.ctx))

	s.b.set(nil, errors.New("timeout"))
	time.Sleep(30 * time.Millisecond)
	s.Require().NoError(c.Refresh(s.ctx))

	records, err := c.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Same(s.ra, records[0])
}

func (s *CacheSuite) TestCircuitBreakerSkipsFailingSource() {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	c := s.newCache(
		WithCircuitBreaker(2, time.Minute),
		WithClock(func() time.Time { return now }),
	)
	s.Require().NoError(c.Refresh(s.ctx))

	s.b.set(nil, errors.New("connection refused"))
	s.Require().NoError(c.Refresh(s.ctx))
	s.Require().NoError(c.Refresh(s.ctx))
	s.Equal("open", c.Status().Sources[1].Circuit)
	s.Equal(3, s.b.calls)

	s.Run("open circuit skips the harvest and serves last good", func() {
		s.Require().NoError(c.Refresh(s.ctx))
		s.Equal(3, s.b.calls)
		s.True(c.Status().Sources[1].Stale)
		s.Contains(c.Status().Sources[1].LastError, ErrCircuitOpen.Error())

		records, err := c.Snapshot(s.ctx)
		s.Require().NoError(err)
		s.Len(records, 2)
	})

	s.Run("probe after cooldown closes on success", func() {
		now = now.Add(time.Minute)
		s.b.set([]*models.Record{s.rb}, nil)
		s.Require().NoError(c.Refresh(s.ctx))
		s.Equal(4, s.b.calls)
		s.Equal("closed", c.Status().Sources[1].Circuit)
		s.False(c.Status().Sources[1].Stale)
	})
}

func (s *CacheSuite) TestAllSourcesFail() {
	s.Run("without a previous snapshot the cache stays unavailable", func() {
		s.a.set(nil, errors.New("a down"))
		s.b.set(nil, errors.New("b down"))
		c := s.newCache()

		err := c.Refresh(s.ctx)
		s.ErrorIs(err, sentinel.ErrUnavailable)

		_, err = c.Snapshot(s.ctx)
		s.ErrorIs(err, sentinel.ErrUnavailable)
		s.Contains(err.Error(), "a down")
	})

	s.Run("an empty source list publishes an empty snapshot", func() {
		c, err := New(nil, WithLogger(s.logger))
		s.Require().NoError(err)
		s.Require().NoError(c.Refresh(s.ctx))

		records, err := c.Snapshot(s.ctx)
		s.Require().NoError(err)
		s.Empty(records)
	})
}

func (s *CacheSuite) TestRefresherRunsUntilCancelled() {
	c := s.newCache()
	ctx, cancel := context.WithCancel(s.ctx)

	done := make(chan error, 1)
	go func() {
		done <- NewRefresher(c, 5*time.Millisecond, s.logger).Run(ctx)
	}()

	s.Eventually(func() bool {
		s.a.mu.Lock()
		defer s.a.mu.Unlock()
		return s.a.calls >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	s.ErrorIs(<-done, context.Canceled)
	s.True(c.Status().Loaded)
}
