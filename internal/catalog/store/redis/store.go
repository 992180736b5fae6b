package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"mapportal/internal/catalog/models"
	"mapportal/pkg/platform/sentinel"
)

const defaultKeyPrefix = "catalog:records"

// Store keeps harvested records in Redis so several portal instances can
// share one harvest. Records live as JSON in a hash; a sorted set scored by
// a sequence number preserves first-seen order.
type Store struct {
	client *redis.Client
	name   string
	prefix string
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithKeyPrefix namespaces every key the store writes.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// New constructs a Redis-backed record store reported under name.
func New(client *redis.Client, name string, opts ...Option) *Store {
	s := &Store{client: client, name: name, prefix: defaultKeyPrefix, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Store) Name() string {
	return s.name
}

func (s *Store) hashKey() string  { return s.prefix }
func (s *Store) orderKey() string { return s.prefix + ":order" }
func (s *Store) seqKey() string   { return s.prefix + ":seq" }

// Upsert stores records, keeping the original position of identifiers
// already present.
func (s *Store) Upsert(ctx context.Context, records ...*models.Record) error {
	if len(records) == 0 {
		return nil
	}
	for _, r := range records {
		if r == nil || strings.TrimSpace(r.Identifier) == "" {
			return fmt.Errorf("record identifier is required")
		}
	}

	last, err := s.client.IncrBy(ctx, s.seqKey(), int64(len(records))).Result()
	if err != nil {
		return fmt.Errorf("reserve record sequence: %w", err)
	}
	first := last - int64(len(records)) + 1

	pipe := s.client.TxPipeline()
	for i, r := range records {
		stored := *r
		if stored.Source == "" {
			stored.Source = s.name
		}
		if stored.HarvestedAt.IsZero() {
			stored.HarvestedAt = s.now()
		}
		payload, err := json.Marshal(&stored)
		if err != nil {
			return fmt.Errorf("encode record %q: %w", r.Identifier, err)
		}
		pipe.HSet(ctx, s.hashKey(), stored.Identifier, payload)
		pipe.ZAddNX(ctx, s.orderKey(), redis.Z{Score: float64(first + int64(i)), Member: stored.Identifier})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store records: %w", err)
	}
	return nil
}

// Harvest reads every stored record in first-seen order.
func (s *Store) Harvest(ctx context.Context) ([]*models.Record, error) {
	ids, err := s.client.ZRange(ctx, s.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list record order: %w: %w", sentinel.ErrUnavailable, err)
	}
	records := make([]*models.Record, 0, len(ids))
	if len(ids) == 0 {
		return records, nil
	}

	values, err := s.client.HMGet(ctx, s.hashKey(), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("read records: %w: %w", sentinel.ErrUnavailable, err)
	}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// order entry without payload; Delete removes both, so this is a
			// partial write from another writer and is skipped.
			continue
		}
		var r models.Record
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("decode record %q: %w: %w", ids[i], sentinel.ErrInvalidState, err)
		}
		records = append(records, &r)
	}
	return records, nil
}

// Delete removes a record by identifier.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.HDel(ctx, s.hashKey(), id)
	pipe.ZRem(ctx, s.orderKey(), id)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("delete record %q: %w", id, err)
	}
	return nil
}
