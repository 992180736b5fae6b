package knownlayer

import "mapportal/internal/catalog/models"

// Selector decides how a record relates to the layer that owns it.
//
// Implementations must be deterministic for a fixed record and must not
// mutate it. A selector that cannot decide returns NotRelated with a nil
// error; a non-nil error is a fault that aborts the whole grouping.
type Selector interface {
	IsRelatedRecord(record *models.Record) (Relation, error)
}

// SelectorFunc adapts an ordinary function to the Selector interface.
type SelectorFunc func(record *models.Record) (Relation, error)

func (f SelectorFunc) IsRelatedRecord(record *models.Record) (Relation, error) {
	return f(record)
}
