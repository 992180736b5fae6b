package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"mapportal/internal/catalog/models"
	"mapportal/pkg/platform/sentinel"
)

// Schema creates the catalog_records table. Position preserves first-seen
// harvest order across upserts.
const Schema = `
CREATE TABLE IF NOT EXISTS catalog_records (
	position         BIGSERIAL,
	identifier       TEXT PRIMARY KEY,
	title            TEXT NOT NULL DEFAULT '',
	abstract         TEXT NOT NULL DEFAULT '',
	keywords         TEXT[] NOT NULL DEFAULT '{}',
	online_resources JSONB NOT NULL DEFAULT '[]',
	source           TEXT NOT NULL DEFAULT '',
	harvested_at     TIMESTAMPTZ NOT NULL
)`

const selectRecords = `
SELECT identifier, title, abstract, keywords, online_resources, source, harvested_at
FROM catalog_records
ORDER BY position`

const upsertRecord = `
INSERT INTO catalog_records (identifier, title, abstract, keywords, online_resources, source, harvested_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (identifier) DO UPDATE SET
	title = EXCLUDED.title,
	abstract = EXCLUDED.abstract,
	keywords = EXCLUDED.keywords,
	online_resources = EXCLUDED.online_resources,
	source = EXCLUDED.source,
	harvested_at = EXCLUDED.harvested_at`

// Store persists harvested catalog records in PostgreSQL.
type Store struct {
	db   *sql.DB
	name string
	now  func() time.Time
}

// New constructs a PostgreSQL-backed record store reported under name.
func New(db *sql.DB, name string) *Store {
	return &Store{db: db, name: name, now: time.Now}
}

func (s *Store) Name() string {
	return s.name
}

// EnsureSchema creates the records table when it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create catalog_records: %w", err)
	}
	return nil
}

// Harvest reads every stored record in first-seen order.
func (s *Store) Harvest(ctx context.Context) ([]*models.Record, error) {
	rows, err := s.db.QueryContext(ctx, selectRecords)
	if err != nil {
		return nil, fmt.Errorf("query catalog records: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer rows.Close()

	records := []*models.Record{}
	for rows.Next() {
		var (
			r         models.Record
			resources []byte
		)
		if err := rows.Scan(&r.Identifier, &r.Title, &r.Abstract, pq.Array(&r.Keywords), &resources, &r.Source, &r.HarvestedAt); err != nil {
			return nil, fmt.Errorf("scan catalog record: %w", err)
		}
		if err := json.Unmarshal(resources, &r.OnlineResources); err != nil {
			return nil, fmt.Errorf("decode online resources for %q: %w: %w", r.Identifier, sentinel.ErrInvalidState, err)
		}
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog records: %w", err)
	}
	return records, nil
}

// Upsert writes records in a single transaction.
func (s *Store) Upsert(ctx context.Context, records ...*models.Record) error {
	for _, r := range records {
		if r == nil || strings.TrimSpace(r.Identifier) == "" {
			return fmt.Errorf("record identifier is required")
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertRecord)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		resources := r.OnlineResources
		if resources == nil {
			resources = []models.OnlineResource{}
		}
		payload, err := json.Marshal(resources)
		if err != nil {
			return fmt.Errorf("encode online resources for %q: %w", r.Identifier, err)
		}
		keywords := r.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		source := r.Source
		if source == "" {
			source = s.name
		}
		harvestedAt := r.HarvestedAt
		if harvestedAt.IsZero() {
			harvestedAt = s.now()
		}
		if _, err := stmt.ExecContext(ctx, r.Identifier, r.Title, r.Abstract, pq.Array(keywords), payload, source, harvestedAt); err != nil {
			return fmt.Errorf("upsert record %q: %w", r.Identifier, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}
