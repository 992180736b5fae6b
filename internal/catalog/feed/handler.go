package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mapportal/internal/catalog/metrics"
	"mapportal/internal/catalog/models"
	"mapportal/internal/platform/kafka/consumer"
)

// RecordWriter persists records received from the harvest feed.
type RecordWriter interface {
	Upsert(ctx context.Context, records ...*models.Record) error
}

// Handler turns harvest feed messages into stored catalog records.
// Each message value is one JSON encoded record.
type Handler struct {
	writer  RecordWriter
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures a Handler.
type Option func(*Handler)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// NewHandler creates a feed handler that writes into writer.
func NewHandler(writer RecordWriter, opts ...Option) (*Handler, error) {
	if writer == nil {
		return nil, fmt.Errorf("record writer is required")
	}
	h := &Handler{writer: writer, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h, nil
}

// Handle stores the record carried by msg. Malformed payloads are logged and
// acknowledged so one bad message cannot block the partition; write failures
// are returned so the message is redelivered.
func (h *Handler) Handle(ctx context.Context, msg *consumer.Message) error {
	if len(msg.Value) == 0 {
		h.metrics.AddFeedRecords("skipped", 1)
		return nil
	}

	record, err := DecodeRecord(msg.Value, msg.Timestamp, h.now)
	if err != nil {
		h.logger.WarnContext(ctx, "rejected harvest feed message",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"key", string(msg.Key),
			"error", err,
		)
		h.metrics.AddFeedRecords("rejected", 1)
		return nil
	}

	if err := h.writer.Upsert(ctx, record); err != nil {
		return fmt.Errorf("store feed record %q: %w", record.Identifier, err)
	}
	h.metrics.AddFeedRecords("stored", 1)
	return nil
}

// DecodeRecord parses one feed payload. A record without a harvest time
// takes the message timestamp, falling back to now.
func DecodeRecord(value []byte, ts time.Time, now func() time.Time) (*models.Record, error) {
	var r models.Record
	if err := json.Unmarshal(value, &r); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	r.Identifier = strings.TrimSpace(r.Identifier)
	if r.Identifier == "" {
		return nil, fmt.Errorf("record identifier is required")
	}
	if r.HarvestedAt.IsZero() {
		if !ts.IsZero() {
			r.HarvestedAt = ts
		} else if now != nil {
			r.HarvestedAt = now()
		}
	}
	return &r, nil
}
