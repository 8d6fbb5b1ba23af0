package common

import (
	"math"
	"sort"
	"strings"
)

// glyph is one positioned piece of page text, in PDF user space (Y grows upward).
type glyph struct {
	X, Y     float64
	W        float64
	FontSize float64
	S        string
}

const (
	// Baselines closer than this belong to the same row.
	rowTolerance = 2.0
	// A horizontal gap wider than this fraction of the font size separates words.
	wordGapRatio = 0.2
)

// layoutRows groups glyphs into rows top to bottom and orders each row left
// to right. Glyphs sharing an X keep their content stream order, which
// matters for fonts without a Widths array where every glyph of a string
// reports the same origin.
func layoutRows(glyphs []glyph) []string {
	kept := make([]glyph, 0, len(glyphs))
	for _, g := range glyphs {
		if g.S == "" || g.S == "\n" || g.S == "\r" {
			continue
		}
		kept = append(kept, g)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Y > kept[j].Y
	})

	var rows []string
	for start := 0; start < len(kept); {
		end := start + 1
		for end < len(kept) && math.Abs(kept[start].Y-kept[end].Y) <= rowTolerance {
			end++
		}

		if row := joinRow(kept[start:end]); row != "" {
			rows = append(rows, row)
		}
		start = end
	}

	return rows
}

func joinRow(row []glyph) string {
	sort.SliceStable(row, func(i, j int) bool {
		return row[i].X < row[j].X
	})

	var b strings.Builder
	for i, g := range row {
		if i > 0 {
			prev := row[i-1]
			gap := g.X - (prev.X + prev.W)
			if gap > math.Max(math.Abs(prev.FontSize), math.Abs(g.FontSize))*wordGapRatio &&
				!strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(g.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
	}

	return strings.TrimSpace(b.String())
}
