package handler

import (
	"mapportal/internal/catalog/models"
	"mapportal/internal/knownlayer"
)

// LayerResponse describes a known layer to the portal front end.
type LayerResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Group       string `json:"group,omitempty"`
	Order       string `json:"order,omitempty"`
	IconURL     string `json:"iconUrl,omitempty"`
	ProxyURL    string `json:"proxyUrl,omitempty"`
	Hidden      bool   `json:"hidden"`
}

// RecordSummary is the part of a record the layer panel renders.
type RecordSummary struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Source     string `json:"source,omitempty"`
}

type LayerGroupResponse struct {
	LayerResponse
	BelongingRecords []RecordSummary `json:"belongingRecords"`
	RelatedRecords   []RecordSummary `json:"relatedRecords"`
}

type GroupingResponse struct {
	KnownLayers     []LayerGroupResponse `json:"knownLayers"`
	UnmappedRecords []RecordSummary      `json:"unmappedRecords"`
}

// NewLayerResponse converts a layer for the wire.
func NewLayerResponse(l *knownlayer.KnownLayer) LayerResponse {
	p := l.Presentation()
	return LayerResponse{
		ID:          l.ID(),
		Kind:        string(l.Kind()),
		Name:        p.Name,
		Description: p.Description,
		Group:       p.Group,
		Order:       p.Order,
		IconURL:     p.IconURL,
		ProxyURL:    p.ProxyURL,
		Hidden:      p.Hidden,
	}
}

func toSummaries(records []*models.Record) []RecordSummary {
	out := make([]RecordSummary, 0, len(records))
	for _, r := range records {
		out = append(out, RecordSummary{Identifier: r.Identifier, Title: r.Title, Source: r.Source})
	}
	return out
}

// NewGroupingResponse converts a grouping for the wire.
func NewGroupingResponse(g *knownlayer.Grouping) GroupingResponse {
	layers := make([]LayerGroupResponse, 0, len(g.KnownLayers))
	for _, bucket := range g.KnownLayers {
		layers = append(layers, LayerGroupResponse{
			LayerResponse:    NewLayerResponse(bucket.KnownLayer),
			BelongingRecords: toSummaries(bucket.BelongingRecords),
			RelatedRecords:   toSummaries(bucket.RelatedRecords),
		})
	}
	return GroupingResponse{
		KnownLayers:     layers,
		UnmappedRecords: toSummaries(g.UnmappedRecords),
	}
}
