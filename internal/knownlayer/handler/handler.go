package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"mapportal/internal/catalog/cache"
	"mapportal/internal/knownlayer"
	"mapportal/pkg/platform/httputil"
	"mapportal/pkg/requestcontext"
)

// Service defines the grouping operations exposed over HTTP.
type Service interface {
	GroupKnownLayerRecords(ctx context.Context) (*knownlayer.Grouping, error)
	GroupKnownLayerRecordsOfKind(ctx context.Context, kind knownlayer.Kind) (*knownlayer.Grouping, error)
}

// LayerLister lists the configured known layers.
type LayerLister interface {
	Layers() []*knownlayer.KnownLayer
}

// StatusReporter reports the state of the record cache.
type StatusReporter interface {
	Status() cache.Status
}

// Handler serves the known layer endpoints.
type Handler struct {
	service Service
	layers  LayerLister
	status  StatusReporter
	logger  *slog.Logger
}

// New creates a known layer Handler.
func New(service Service, layers LayerLister, status StatusReporter, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service: service,
		layers:  layers,
		status:  status,
		logger:  logger,
	}
}

// Register registers the known layer routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/knownlayers/grouping", h.handleGrouping)
	r.Get("/knownlayers", h.handleListLayers)
	r.Get("/catalog/status", h.handleCatalogStatus)
}

// handleGrouping groups the cached catalog, optionally restricted to the
// layers of one kind.
func (h *Handler) handleGrouping(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var (
		grouping *knownlayer.Grouping
		err      error
	)
	if raw, ok := r.URL.Query()["kind"]; ok {
		grouping, err = h.service.GroupKnownLayerRecordsOfKind(ctx, parseKind(firstOf(raw)))
	} else {
		grouping, err = h.service.GroupKnownLayerRecords(ctx)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to group known layer records",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp := NewGroupingResponse(grouping)
	total := len(resp.KnownLayers)
	httputil.WriteSuccess(w, resp, &total)
}

func (h *Handler) handleListLayers(w http.ResponseWriter, r *http.Request) {
	layers := h.layers.Layers()
	resp := make([]LayerResponse, 0, len(layers))
	for _, l := range layers {
		resp = append(resp, NewLayerResponse(l))
	}
	total := len(resp)
	httputil.WriteSuccess(w, resp, &total)
}

func (h *Handler) handleCatalogStatus(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, h.status.Status(), nil)
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// parseKind normalizes a requested kind, keeping blank input blank so the
// service can reject it.
func parseKind(raw string) knownlayer.Kind {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return knownlayer.ParseKind(raw)
}
