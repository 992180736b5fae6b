// Package selectors provides the rule-based selectors known layers are
// configured with. Each selector is immutable once built and safe for
// concurrent use.
package selectors

import (
	"strings"

	"mapportal/internal/catalog/models"
	"mapportal/internal/knownlayer"
	pstrings "mapportal/pkg/platform/strings"
)

type stringSet map[string]struct{}

func newSet(values []string) stringSet {
	set := make(stringSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func (s stringSet) has(v string) bool {
	_, ok := s[v]
	return ok
}

// IdentifierSelector matches records by their catalog identifier.
type IdentifierSelector struct {
	belong  stringSet
	related stringSet
}

// NewIdentifierSelector builds a selector that returns Belongs for
// belongIDs and Related for relatedIDs. Identifiers match exactly.
func NewIdentifierSelector(belongIDs, relatedIDs []string) *IdentifierSelector {
	return &IdentifierSelector{
		belong:  newSet(pstrings.DedupeAndTrim(belongIDs)),
		related: newSet(pstrings.DedupeAndTrim(relatedIDs)),
	}
}

func (s *IdentifierSelector) IsRelatedRecord(record *models.Record) (knownlayer.Relation, error) {
	id := strings.TrimSpace(record.Identifier)
	switch {
	case s.belong.has(id):
		return knownlayer.Belongs, nil
	case s.related.has(id):
		return knownlayer.Related, nil
	}
	return knownlayer.NotRelated, nil
}

// KeywordSelector matches records by descriptive keyword, ignoring case.
type KeywordSelector struct {
	keywords        stringSet
	relatedKeywords stringSet
}

// NewKeywordSelector builds a selector that returns Belongs when a record
// carries any of keywords, and Related when it carries any of
// relatedKeywords.
func NewKeywordSelector(keywords, relatedKeywords []string) *KeywordSelector {
	return &KeywordSelector{
		keywords:        newSet(pstrings.DedupeAndTrimLower(keywords)),
		relatedKeywords: newSet(pstrings.DedupeAndTrimLower(relatedKeywords)),
	}
}

func (s *KeywordSelector) IsRelatedRecord(record *models.Record) (knownlayer.Relation, error) {
	for k := range s.keywords {
		if record.HasKeyword(k) {
			return knownlayer.Belongs, nil
		}
	}
	for k := range s.relatedKeywords {
		if record.HasKeyword(k) {
			return knownlayer.Related, nil
		}
	}
	return knownlayer.NotRelated, nil
}

// OnlineResourceSelector matches records advertising a service layer, such
// as a WFS feature type or a WMS layer name.
type OnlineResourceSelector struct {
	protocol         models.Protocol
	layerNames       stringSet
	relatedNames     stringSet
	endpoints        []string
	includeEndpoints bool
}

// OnlineResourceConfig configures an OnlineResourceSelector.
//
// ServiceEndpoints filters which resource URLs may produce Belongs. When
// IncludeEndpoints is true the list is an allow list, otherwise a deny
// list. An empty list disables filtering.
type OnlineResourceConfig struct {
	Protocol          models.Protocol
	LayerNames        []string
	RelatedLayerNames []string
	ServiceEndpoints  []string
	IncludeEndpoints  bool
}

func NewOnlineResourceSelector(cfg OnlineResourceConfig) *OnlineResourceSelector {
	return &OnlineResourceSelector{
		protocol:         cfg.Protocol,
		layerNames:       newSet(pstrings.DedupeAndTrim(cfg.LayerNames)),
		relatedNames:     newSet(pstrings.DedupeAndTrim(cfg.RelatedLayerNames)),
		endpoints:        pstrings.DedupeAndTrim(cfg.ServiceEndpoints),
		includeEndpoints: cfg.IncludeEndpoints,
	}
}

func (s *OnlineResourceSelector) IsRelatedRecord(record *models.Record) (knownlayer.Relation, error) {
	related := false
	for _, res := range record.ResourcesOfProtocol(s.protocol) {
		name := strings.TrimSpace(res.Name)
		if s.layerNames.has(name) && s.endpointAllowed(res.URL) {
			return knownlayer.Belongs, nil
		}
		if s.relatedNames.has(name) {
			related = true
		}
	}
	if related {
		return knownlayer.Related, nil
	}
	return knownlayer.NotRelated, nil
}

// endpointAllowed compares URLs by prefix so query strings on harvested
// endpoints do not defeat the filter.
func (s *OnlineResourceSelector) endpointAllowed(url string) bool {
	if len(s.endpoints) == 0 {
		return true
	}
	listed := false
	for _, e := range s.endpoints {
		if strings.HasPrefix(url, e) {
			listed = true
			break
		}
	}
	return listed == s.includeEndpoints
}
