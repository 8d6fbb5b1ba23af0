package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// chars spreads s over glyphs at a fixed origin, the way fonts without a
// Widths array are reported.
func chars(s string, x, y float64) []glyph {
	out := make([]glyph, 0, len(s))
	for _, r := range s {
		out = append(out, glyph{X: x, Y: y, FontSize: 10, S: string(r)})
	}
	return out
}

func concat(parts ...[]glyph) []glyph {
	var out []glyph
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestLayoutRows(t *testing.T) {
	tests := []struct {
		name     string
		glyphs   []glyph
		expected []string
	}{
		{
			name:     "empty",
			glyphs:   nil,
			expected: nil,
		},
		{
			name:     "rows top to bottom",
			glyphs:   concat(chars("second", 72, 700), chars("first", 72, 714)),
			expected: []string{"first", "second"},
		},
		{
			name:     "row ordered by x",
			glyphs:   concat(chars("10.00", 400, 700), chars("DES:DEPOSIT", 72, 700)),
			expected: []string{"DES:DEPOSIT 10.00"},
		},
		{
			name:     "baseline jitter stays on one row",
			glyphs:   concat(chars("ID: 1", 72, 700), chars("CCD", 120, 699.2)),
			expected: []string{"ID: 1 CCD"},
		},
		{
			name: "empty and newline fragments dropped",
			glyphs: concat(
				[]glyph{{X: 72, Y: 700, S: ""}, {X: 72, Y: 700, S: "\n"}},
				chars("ID: 000123 CCD", 72, 700),
				[]glyph{{X: 300, Y: 700, S: "\n"}},
			),
			expected: []string{"ID: 000123 CCD"},
		},
		{
			name:     "no doubled space next to a space glyph",
			glyphs:   concat(chars("BANK ", 72, 700), chars("OF AMERICA", 110, 700)),
			expected: []string{"BANK OF AMERICA"},
		},
		{
			name:     "blank row skipped",
			glyphs:   concat(chars("   ", 72, 720), chars("text", 72, 700)),
			expected: []string{"text"},
		},
		{
			name: "measured glyphs join without spaces",
			glyphs: []glyph{
				{X: 72, Y: 700, W: 6, FontSize: 10, S: "I"},
				{X: 78, Y: 700, W: 6, FontSize: 10, S: "D"},
				{X: 84, Y: 700, W: 3, FontSize: 10, S: ":"},
			},
			expected: []string{"ID:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, layoutRows(tt.glyphs))
		})
	}
}
