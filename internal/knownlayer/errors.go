package knownlayer

import (
	"errors"
	"fmt"
)

// ErrInvalidRelation is the fault recorded when a selector returns a value
// outside Belongs, Related and NotRelated.
var ErrInvalidRelation = errors.New("selector returned an undefined relation")

// SelectorFaultError reports a selector that failed instead of returning a
// relation. Grouping stops at the first fault.
type SelectorFaultError struct {
	LayerID  string
	RecordID string
	Err      error
}

func (e *SelectorFaultError) Error() string {
	return fmt.Sprintf("selector for layer %q failed on record %q: %v", e.LayerID, e.RecordID, e.Err)
}

func (e *SelectorFaultError) Unwrap() error {
	return e.Err
}
