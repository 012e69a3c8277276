package annotate

import (
	"math"

	"github.com/swimtools/heatsheet/pdf"
)

// roundKey quantizes a top edge to 1e-3. Glyph runs from the same printed
// line come back with float noise in their coordinates; after rounding they
// share a key.
func roundKey(y float64) float64 {
	return math.Round(y*1000) / 1000
}

// GroupByLine groups boxes that lie on the same visual line, keyed by their
// rounded top edge. The search backend may return one box per glyph run even
// for a single printed line. Group order follows first appearance.
func GroupByLine(boxes []pdf.Rect) [][]pdf.Rect {
	groups := make(map[float64][]pdf.Rect)
	var order []float64

	for _, box := range boxes {
		key := roundKey(box.Y0)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], box)
	}

	lines := make([][]pdf.Rect, len(order))
	for i, key := range order {
		lines[i] = groups[key]
	}
	return lines
}

// Combine merges one line's boxes into a single rectangle: the x-span runs
// from the leftmost x0 to the rightmost x1, the y-span is copied verbatim
// from the first box.
func Combine(group []pdf.Rect) pdf.Rect {
	combined := group[0]
	for _, box := range group[1:] {
		combined.X0 = min(combined.X0, box.X0)
		combined.X1 = max(combined.X1, box.X1)
	}
	return combined
}
