package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil slice", input: nil, expected: nil},
		{name: "empty slice", input: []string{}, expected: []string{}},
		{
			name:     "trims layer names",
			input:    []string{"  gsml:Borehole ", "er:MineralOccurrence"},
			expected: []string{"gsml:Borehole", "er:MineralOccurrence"},
		},
		{
			name:     "keeps first occurrence",
			input:    []string{"b", "a", "b", "c", "a"},
			expected: []string{"b", "a", "c"},
		},
		{
			name:     "drops blanks",
			input:    []string{"", "  ", "x"},
			expected: []string{"x"},
		},
		{
			name:     "case is significant",
			input:    []string{"WMS", "wms"},
			expected: []string{"WMS", "wms"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestDedupeAndTrimLower(t *testing.T) {
	assert.Equal(t,
		[]string{"geology", "boreholes"},
		DedupeAndTrimLower([]string{" Geology", "BOREHOLES", "geology ", ""}),
	)
	assert.Nil(t, DedupeAndTrimLower(nil))
}
