package knownlayer

import (
	"strings"

	dErrors "mapportal/pkg/domain-errors"
)

// Kind tags the concrete variety of a known layer. Grouping can be
// restricted to a single kind; layers of other kinds, including KindBase,
// are then ignored entirely.
type Kind string

const (
	// KindBase is the plain known layer.
	KindBase Kind = "knownlayer"
	// KindVocabulary layers are backed by a vocabulary service.
	KindVocabulary Kind = "vocabulary"
	// KindReport layers group document-style records with no map service.
	KindReport Kind = "report"
)

// ParseKind normalizes s; an empty string yields KindBase.
func ParseKind(s string) Kind {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return KindBase
	}
	return Kind(s)
}

// Presentation carries display metadata the engine never reads.
type Presentation struct {
	Name        string
	Description string
	Group       string
	Order       string
	IconURL     string
	ProxyURL    string
	Hidden      bool
}

// KnownLayer is a named classification target owning exactly one selector.
// Fields are unexported so a layer cannot change after construction.
type KnownLayer struct {
	id           string
	kind         Kind
	selector     Selector
	presentation Presentation
}

// Option configures optional KnownLayer fields.
type Option func(*KnownLayer)

// WithKind sets the layer's kind tag. The default is KindBase.
func WithKind(kind Kind) Option {
	return func(l *KnownLayer) {
		l.kind = kind
	}
}

// WithPresentation attaches display metadata.
func WithPresentation(p Presentation) Option {
	return func(l *KnownLayer) {
		l.presentation = p
	}
}

// New constructs a KnownLayer. id must be non-blank and selector non-nil.
func New(id string, selector Selector, opts ...Option) (*KnownLayer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "known layer id is required")
	}
	if selector == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "known layer selector is required")
	}
	l := &KnownLayer{id: id, kind: KindBase, selector: selector}
	for _, opt := range opts {
		opt(l)
	}
	if l.kind == "" {
		l.kind = KindBase
	}
	return l, nil
}

func (l *KnownLayer) ID() string                 { return l.id }
func (l *KnownLayer) Kind() Kind                 { return l.kind }
func (l *KnownLayer) Selector() Selector         { return l.selector }
func (l *KnownLayer) Presentation() Presentation { return l.presentation }

// IsKind reports whether the layer carries exactly the given tag.
func (l *KnownLayer) IsKind(kind Kind) bool {
	return l.kind == kind
}
