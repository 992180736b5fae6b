// Package strings normalizes the string lists found in layer and selector
// configuration: identifiers, keywords, layer names and endpoints.
package strings

import (
	"strings"
)

// DedupeAndTrim trims each value, drops blanks and keeps the first
// occurrence of each remaining value.
//
//	DedupeAndTrim([]string{" gml:Borehole ", "gml:Borehole", ""})
//	// []string{"gml:Borehole"}
func DedupeAndTrim(values []string) []string {
	return normalize(values, func(s string) string { return s })
}

// DedupeAndTrimLower is DedupeAndTrim with lower-casing, for lists that are
// matched case-insensitively such as keywords.
func DedupeAndTrimLower(values []string) []string {
	return normalize(values, strings.ToLower)
}

func normalize(values []string, fold func(string) string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = fold(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
