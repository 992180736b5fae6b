package knownlayer

import (
	"slices"

	"mapportal/internal/catalog/models"
	dErrors "mapportal/pkg/domain-errors"
)

// LayerAndRecords is one layer's share of a grouping. Both slices follow
// the order of the input snapshot and never share a record.
type LayerAndRecords struct {
	KnownLayer       *KnownLayer
	BelongingRecords []*models.Record
	RelatedRecords   []*models.Record
}

// Grouping is the result of classifying a record snapshot against a set of
// known layers.
type Grouping struct {
	// OriginalRecords is the snapshot the grouping was computed from.
	OriginalRecords []*models.Record
	// KnownLayers has one entry per evaluated layer, in registry order,
	// including layers that matched nothing.
	KnownLayers []*LayerAndRecords
	// UnmappedRecords holds records no evaluated layer claimed.
	UnmappedRecords []*models.Record
}

// GroupRecords classifies every record against every layer.
//
// Each (layer, record) pair is evaluated independently, so a record can
// belong to one layer and be related to several others. A record lands in
// UnmappedRecords only when every layer returned NotRelated. With no layers
// every record is unmapped.
//
// The first selector error aborts the call and no grouping is returned.
func GroupRecords(layers []*KnownLayer, records []*models.Record) (*Grouping, error) {
	snapshot := slices.Clone(records)

	// claims are tracked per snapshot position so distinct records sharing
	// an identifier never alias.
	claimed := make([]bool, len(snapshot))
	buckets := make([]*LayerAndRecords, 0, len(layers))

	for _, layer := range layers {
		if layer == nil {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "known layer list contains a nil layer")
		}
		bucket := &LayerAndRecords{
			KnownLayer:       layer,
			BelongingRecords: []*models.Record{},
			RelatedRecords:   []*models.Record{},
		}
		for i, record := range snapshot {
			relation, err := layer.selector.IsRelatedRecord(record)
			if err == nil && !relation.IsValid() {
				err = ErrInvalidRelation
			}
			if err != nil {
				return nil, &SelectorFaultError{LayerID: layer.id, RecordID: recordID(record), Err: err}
			}

			switch relation {
			case Belongs:
				bucket.BelongingRecords = append(bucket.BelongingRecords, record)
				claimed[i] = true
			case Related:
				bucket.RelatedRecords = append(bucket.RelatedRecords, record)
				claimed[i] = true
			}
		}
		buckets = append(buckets, bucket)
	}

	unmapped := []*models.Record{}
	for i, record := range snapshot {
		if !claimed[i] {
			unmapped = append(unmapped, record)
		}
	}

	return &Grouping{
		OriginalRecords: snapshot,
		KnownLayers:     buckets,
		UnmappedRecords: unmapped,
	}, nil
}

// GroupRecordsOfKind is GroupRecords restricted to layers tagged kind.
// Layers of any other kind neither produce a bucket nor claim records, so
// a record claimed only by an excluded layer is reported as unmapped.
func GroupRecordsOfKind(layers []*KnownLayer, records []*models.Record, kind Kind) (*Grouping, error) {
	return GroupRecords(FilterByKind(layers, kind), records)
}

// FilterByKind returns the layers tagged kind, preserving order.
func FilterByKind(layers []*KnownLayer, kind Kind) []*KnownLayer {
	filtered := make([]*KnownLayer, 0, len(layers))
	for _, l := range layers {
		if l != nil && l.IsKind(kind) {
			filtered = append(filtered, l)
		}
	}
	return filtered
}

// Layer returns the bucket for the layer with the given id, or nil.
func (g *Grouping) Layer(id string) *LayerAndRecords {
	for _, b := range g.KnownLayers {
		if b.KnownLayer.ID() == id {
			return b
		}
	}
	return nil
}

func recordID(r *models.Record) string {
	if r == nil {
		return ""
	}
	return r.Identifier
}
