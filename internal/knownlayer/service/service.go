package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"mapportal/internal/catalog/models"
	"mapportal/internal/knownlayer"
	"mapportal/internal/knownlayer/metrics"
	dErrors "mapportal/pkg/domain-errors"
	"mapportal/pkg/requestcontext"
)

const (
	kindAll = "all"
	// kindOther labels requested kinds no configured layer carries.
	kindOther = "other"
)

// RecordCache supplies the current catalog snapshot.
type RecordCache interface {
	Snapshot(ctx context.Context) ([]*models.Record, error)
}

// LayerSource supplies the configured known layers in display order.
type LayerSource interface {
	Layers() []*knownlayer.KnownLayer
}

// Service groups the cached catalog against the known layer registry.
// Grouping itself is pure; the service adds the cache read, error
// classification, logging, metrics and tracing.
type Service struct {
	cache   RecordCache
	layers  LayerSource
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer overrides the global tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

func New(cache RecordCache, layers LayerSource, opts ...Option) (*Service, error) {
	if cache == nil {
		return nil, fmt.Errorf("record cache is required")
	}
	if layers == nil {
		return nil, fmt.Errorf("layer source is required")
	}

	svc := &Service{
		cache:  cache,
		layers: layers,
		logger: slog.Default(),
		tracer: otel.Tracer("mapportal/knownlayer"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc, nil
}

// GroupKnownLayerRecords groups the cached records against every
// configured layer.
func (s *Service) GroupKnownLayerRecords(ctx context.Context) (*knownlayer.Grouping, error) {
	return s.group(ctx, kindAll, s.layers.Layers())
}

// GroupKnownLayerRecordsOfKind groups the cached records against the
// layers tagged kind only. kind is matched case-insensitively; a blank
// kind is a validation error.
func (s *Service) GroupKnownLayerRecordsOfKind(ctx context.Context, kind knownlayer.Kind) (*knownlayer.Grouping, error) {
	if strings.TrimSpace(string(kind)) == "" {
		s.metrics.IncrementOutcome(kindAll, "invalid")
		return nil, dErrors.New(dErrors.CodeValidation, "kind is required")
	}
	kind = knownlayer.ParseKind(string(kind))
	layers := knownlayer.FilterByKind(s.layers.Layers(), kind)

	// Metric labels stay bounded by the configured kinds.
	label := kindOther
	if len(layers) > 0 {
		label = string(kind)
	}
	return s.group(ctx, label, layers)
}

func (s *Service) group(ctx context.Context, kind string, layers []*knownlayer.KnownLayer) (*knownlayer.Grouping, error) {
	ctx, span := s.tracer.Start(ctx, "knownlayer.group",
		trace.WithAttributes(
			attribute.String("knownlayer.kind", kind),
			attribute.Int("knownlayer.layers", len(layers)),
		),
	)
	defer span.End()
	start := requestcontext.Now(ctx)

	records, err := s.cache.Snapshot(ctx)
	if err != nil {
		s.fail(ctx, span, kind, "unavailable", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		s.fail(ctx, span, kind, "cancelled", err)
		return nil, err
	}

	grouping, err := knownlayer.GroupRecords(layers, records)
	if err != nil {
		var fault *knownlayer.SelectorFaultError
		if errors.As(err, &fault) {
			s.fail(ctx, span, kind, "selector_fault", err)
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "known layer selector failed")
		}
		s.fail(ctx, span, kind, "invalid", err)
		return nil, err
	}

	elapsed := time.Since(start)
	s.metrics.ObserveGroupLatency(kind, elapsed)
	s.metrics.IncrementOutcome(kind, "ok")
	s.metrics.SetUnmapped(kind, len(grouping.UnmappedRecords))
	span.SetAttributes(
		attribute.Int("knownlayer.records", len(grouping.OriginalRecords)),
		attribute.Int("knownlayer.unmapped", len(grouping.UnmappedRecords)),
	)
	span.SetStatus(codes.Ok, "")

	s.logger.InfoContext(ctx, "known layer records grouped",
		"kind", kind,
		"layers", len(grouping.KnownLayers),
		"records", len(grouping.OriginalRecords),
		"unmapped", len(grouping.UnmappedRecords),
		"duration", elapsed,
	)
	return grouping, nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, kind, outcome string, err error) {
	s.metrics.IncrementOutcome(kind, outcome)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logger.ErrorContext(ctx, "known layer grouping failed",
		"kind", kind,
		"outcome", outcome,
		"error", err,
	)
}
