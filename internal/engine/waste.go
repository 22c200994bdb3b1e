package engine

import "github.com/piwi3910/palletpack/internal/model"

// WasteScorer rates a free candidate footprint on a grid. Lower is better.
type WasteScorer interface {
	// Score rates the w x h footprint at (x, y). The footprint is known to be free.
	Score(g *Grid, x, y, w, h int) int
	// Floor is the lowest score any w x h footprint can reach; the packer stops
	// scanning once a candidate hits it.
	Floor(w, h int) int
}

// FootprintWaste counts free cells inside the footprint. Every valid candidate
// is fully free, so the score is always w*h and the first candidate in scan
// order wins.
type FootprintWaste struct{}

func (FootprintWaste) Score(g *Grid, x, y, w, h int) int { return g.FreeCells(x, y, w, h) }
func (FootprintWaste) Floor(w, h int) int                { return w * h }

// NeighborhoodWaste counts free cells in the footprint plus a one-cell ring
// around it. Cells beyond the pallet edge count as filled, so positions hugging
// walls and other shapes score lower.
type NeighborhoodWaste struct{}

func (NeighborhoodWaste) Score(g *Grid, x, y, w, h int) int {
	return g.FreeCells(x-1, y-1, w+2, h+2)
}

func (NeighborhoodWaste) Floor(w, h int) int { return w * h }

// NewWasteScorer maps a configured metric to its scorer. Unknown or empty
// metrics fall back to FootprintWaste.
func NewWasteScorer(m model.WasteMetric) WasteScorer {
	if m == model.WasteNeighborhood {
		return NeighborhoodWaste{}
	}
	return FootprintWaste{}
}
