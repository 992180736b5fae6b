package knownlayer

import (
	"fmt"
	"strings"
)

// Relation is the outcome of classifying one record against one layer.
type Relation int

const (
	// NotRelated is the zero value so an undecided selector is harmless.
	NotRelated Relation = iota
	// Related marks a weaker, secondary association.
	Related
	// Belongs marks a primary match.
	Belongs
)

func (r Relation) String() string {
	switch r {
	case NotRelated:
		return "not_related"
	case Related:
		return "related"
	case Belongs:
		return "belongs"
	default:
		return fmt.Sprintf("relation(%d)", int(r))
	}
}

// IsValid reports whether r is one of the three defined outcomes.
func (r Relation) IsValid() bool {
	return r == NotRelated || r == Related || r == Belongs
}

// ParseRelation parses the String form of a Relation.
func ParseRelation(s string) (Relation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "belongs":
		return Belongs, nil
	case "related":
		return Related, nil
	case "not_related", "notrelated":
		return NotRelated, nil
	}
	return NotRelated, fmt.Errorf("unknown relation %q", s)
}
