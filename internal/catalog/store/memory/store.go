package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"mapportal/internal/catalog/models"
)

// Store is an in-memory, ordered record set keyed by identifier. It serves
// as a harvest source seeded from a file and as a sink for the harvest feed.
type Store struct {
	name string
	now  func() time.Time

	mu      sync.RWMutex
	order   []string
	records map[string]*models.Record
}

// New constructs an empty store reported under name.
func New(name string) *Store {
	return &Store{
		name:    name,
		now:     time.Now,
		records: make(map[string]*models.Record),
	}
}

func (s *Store) Name() string {
	return s.name
}

// Upsert inserts records or replaces those with a known identifier in
// place. Records with a blank identifier are rejected. Source and
// HarvestedAt are filled in when missing.
func (s *Store) Upsert(_ context.Context, records ...*models.Record) error {
	for _, r := range records {
		if r == nil || strings.TrimSpace(r.Identifier) == "" {
			return fmt.Errorf("record identifier is required")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		stored := *r
		if stored.Source == "" {
			stored.Source = s.name
		}
		if stored.HarvestedAt.IsZero() {
			stored.HarvestedAt = s.now()
		}
		if _, ok := s.records[stored.Identifier]; !ok {
			s.order = append(s.order, stored.Identifier)
		}
		s.records[stored.Identifier] = &stored
	}
	return nil
}

// Harvest returns the stored records in insertion order.
func (s *Store) Harvest(_ context.Context) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out, nil
}

// Delete removes the record with identifier id, if present.
func (s *Store) Delete(_ context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return
	}
	delete(s.records, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// LoadJSONFile seeds the store from a JSON array of records.
func (s *Store) LoadJSONFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read records file: %w", err)
	}
	var records []*models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("decode records file: %w", err)
	}
	return s.Upsert(ctx, records...)
}
