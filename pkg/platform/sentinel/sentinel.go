package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, sources and the record
// cache return these (optionally wrapped) so services and handlers can
// translate them without knowing which backend produced them.
//
// - ErrNotFound: record or layer does not exist
// - ErrConflict: identifier already registered
// - ErrUnavailable: upstream harvest or cache snapshot cannot be served
// - ErrInvalidState: stored payload cannot be decoded
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
