package engine

import (
	"sort"

	"go.uber.org/zap"

	"github.com/piwi3910/palletpack/internal/model"
)

// Surface is one pallet being filled by the greedy packer. It owns its grid.
type Surface struct {
	Width      int
	Height     int
	Placements []model.Placement
	grid       *Grid
}

// NewSurface creates an empty pallet surface.
func NewSurface(width, height int) *Surface {
	return &Surface{
		Width:  width,
		Height: height,
		grid:   NewGrid(width, height),
	}
}

// Result snapshots the surface as a PalletResult.
func (s *Surface) Result(index, padding int) model.PalletResult {
	placements := make([]model.Placement, len(s.Placements))
	copy(placements, s.Placements)
	return model.PalletResult{
		Index:      index,
		Width:      s.Width,
		Height:     s.Height,
		Padding:    padding,
		Placements: placements,
	}
}

// Packer implements greedy best-fit decreasing packing onto as many pallets
// as needed.
type Packer struct {
	Width   int
	Height  int
	Padding int
	Scorer  WasteScorer
	logger  *zap.Logger
}

// NewPacker creates a packer for the pallet described by settings.
func NewPacker(settings model.PackSettings, logger *zap.Logger) *Packer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Packer{
		Width:   settings.PalletWidth,
		Height:  settings.PalletHeight,
		Padding: settings.Padding,
		Scorer:  NewWasteScorer(settings.Waste),
		logger:  logger,
	}
}

// candidate is a scored top-left position for one orientation.
type candidate struct {
	x, y    int
	rotated bool
	score   int
}

// Place puts one shape on the surface at its lowest-waste free position.
// Orientation false is scanned before true; positions are scanned with x
// outer and y inner, and only a strictly lower score replaces the current
// best. It reports false when no position fits.
func (p *Packer) Place(s *Surface, index int, shape model.Shape) bool {
	var best candidate
	found := false

scan:
	for _, rotated := range []bool{false, true} {
		if rotated && shape.Width == shape.Height {
			break
		}
		w, h := shape.Dimensions(rotated)
		pw, ph := w+p.Padding, h+p.Padding
		floor := p.Scorer.Floor(pw, ph)

		for x := 0; x <= s.Width-pw; x++ {
			for y := 0; y <= s.Height-ph; y++ {
				if !s.grid.IsFree(x, y, pw, ph) {
					continue
				}
				score := p.Scorer.Score(s.grid, x, y, pw, ph)
				if !found || score < best.score {
					best = candidate{x: x, y: y, rotated: rotated, score: score}
					found = true
				}
				// Both orientations share the same floor, so nothing later can beat it
				if score <= floor {
					break scan
				}
			}
		}
	}

	if !found {
		return false
	}

	w, h := shape.Dimensions(best.rotated)
	s.grid.Mark(best.x, best.y, w+p.Padding, h+p.Padding)
	s.Placements = append(s.Placements, model.Placement{
		ShapeIndex: index,
		Shape:      shape,
		X:          best.x,
		Y:          best.y,
		Rotated:    best.rotated,
	})
	return true
}

// Pack places every shape, largest area first, opening a new pallet whenever
// the current one is full. Shapes that do not fit even an empty pallet are
// returned as unplaced.
func (p *Packer) Pack(shapes []model.Shape) model.PackResult {
	result := model.PackResult{Algorithm: model.AlgorithmGreedy}

	order := make([]int, len(shapes))
	for i := range order {
		order[i] = i
	}
	// Stable so equal areas keep input order
	sort.SliceStable(order, func(i, j int) bool {
		return shapes[order[i]].Area() > shapes[order[j]].Area()
	})

	var surfaces []*Surface
	for _, idx := range order {
		shape := shapes[idx]
		if len(surfaces) > 0 && p.Place(surfaces[len(surfaces)-1], idx, shape) {
			continue
		}

		fresh := NewSurface(p.Width, p.Height)
		if !p.Place(fresh, idx, shape) {
			p.logger.Warn("shape does not fit an empty pallet",
				zap.Int("index", idx),
				zap.String("label", shape.Label),
				zap.Int("width", shape.Width),
				zap.Int("height", shape.Height),
			)
			result.Unplaced = append(result.Unplaced, shape)
			continue
		}
		surfaces = append(surfaces, fresh)
		p.logger.Debug("opened pallet",
			zap.Int("pallet", len(surfaces)),
			zap.Int("index", idx),
		)
	}

	for i, s := range surfaces {
		result.Pallets = append(result.Pallets, s.Result(i+1, p.Padding))
	}
	return result
}
