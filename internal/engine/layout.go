package engine

import (
	"math/rand"

	"github.com/piwi3910/palletpack/internal/model"
)

// slot holds the placement decision for one input shape.
type slot struct {
	placement model.Placement
	placed    bool
}

// Layout is one genetic search individual: an attempted placement of every
// input shape on a single pallet. Slot i always belongs to shape i. The grid
// mirrors the placed slots and is owned by the layout alone.
type Layout struct {
	width  int
	height int
	shapes []model.Shape
	slots  []slot
	grid   *Grid
}

// NewLayout creates a layout with every shape unplaced.
func NewLayout(width, height int, shapes []model.Shape) *Layout {
	l := &Layout{
		width:  width,
		height: height,
		shapes: shapes,
		slots:  make([]slot, len(shapes)),
		grid:   NewGrid(width, height),
	}
	for i, s := range shapes {
		l.slots[i] = slot{placement: model.Placement{ShapeIndex: i, Shape: s}}
	}
	return l
}

// Len returns the number of slots, which equals the number of input shapes.
func (l *Layout) Len() int { return len(l.slots) }

func (l *Layout) rect(i int) (x, y, w, h int) {
	p := l.slots[i].placement
	return p.X, p.Y, p.PlacedWidth(), p.PlacedHeight()
}

// commit places slot i and marks its rectangle.
func (l *Layout) commit(i, x, y int, rotated bool) {
	s := &l.slots[i]
	s.placement.X = x
	s.placement.Y = y
	s.placement.Rotated = rotated
	s.placed = true
	w, h := s.placement.PlacedWidth(), s.placement.PlacedHeight()
	l.grid.Mark(x, y, w, h)
}

// rebuild clears the grid and replays every placed slot.
func (l *Layout) rebuild() {
	l.grid.Reset()
	for i := range l.slots {
		if l.slots[i].placed {
			l.grid.Mark(l.rect(i))
		}
	}
}

// RandomPlacement places each shape, in input order, at the first of up to
// attempts random (x, y, orientation) draws that is in bounds and free.
// Shapes that exhaust their draws stay unplaced.
func (l *Layout) RandomPlacement(rng *rand.Rand, attempts int) {
	l.grid.Reset()
	for i := range l.slots {
		l.slots[i].placed = false
		if l.width <= 0 || l.height <= 0 {
			continue
		}
		shape := l.shapes[i]
		for a := 0; a < attempts; a++ {
			x := rng.Intn(l.width)
			y := rng.Intn(l.height)
			rotated := rng.Intn(2) == 1
			w, h := shape.Dimensions(rotated)
			if l.grid.IsFree(x, y, w, h) {
				l.commit(i, x, y, rotated)
				break
			}
		}
	}
}

// Repair relocates every placed slot that escapes the pallet or overlaps any
// other placed slot. Each gets up to attempts random (x, y) draws with its
// orientation held fixed. Slots that find no free position keep their invalid
// rectangle. It returns how many slots are still invalid.
func (l *Layout) Repair(rng *rand.Rand, attempts int) int {
	invalid := 0
	for i := range l.slots {
		if !l.slots[i].placed {
			continue
		}
		x, y, w, h := l.rect(i)
		l.grid.Unmark(x, y, w, h)
		if l.grid.IsFree(x, y, w, h) {
			l.grid.Mark(x, y, w, h)
			continue
		}

		moved := false
		if l.width > 0 && l.height > 0 {
			for a := 0; a < attempts; a++ {
				nx := rng.Intn(l.width)
				ny := rng.Intn(l.height)
				if l.grid.IsFree(nx, ny, w, h) {
					l.commit(i, nx, ny, l.slots[i].placement.Rotated)
					moved = true
					break
				}
			}
		}
		if !moved {
			l.grid.Mark(x, y, w, h)
			invalid++
		}
	}
	return invalid
}

// Fitness replays the placed slots on a fresh grid. A cell claimed for the
// first time adds one to the used area; a cell claimed again adds one to the
// overlap penalty. Cells outside the pallet are ignored. The result is
// used-overlap, never below zero.
func (l *Layout) Fitness() int {
	g := NewGrid(l.width, l.height)
	used, overlap := 0, 0
	for i := range l.slots {
		if !l.slots[i].placed {
			continue
		}
		x, y, w, h := l.rect(i)
		free := g.FreeCells(x, y, w, h)
		used += free
		overlap += g.ClippedArea(x, y, w, h) - free
		g.Mark(x, y, w, h)
	}
	if f := used - overlap; f > 0 {
		return f
	}
	return 0
}

// Valid reports whether every placed slot is in bounds and overlaps no other.
func (l *Layout) Valid() bool {
	g := NewGrid(l.width, l.height)
	for i := range l.slots {
		if !l.slots[i].placed {
			continue
		}
		x, y, w, h := l.rect(i)
		if !g.IsFree(x, y, w, h) {
			return false
		}
		g.Mark(x, y, w, h)
	}
	return true
}

// Placements returns the placed slots in slot order.
func (l *Layout) Placements() []model.Placement {
	var out []model.Placement
	for _, s := range l.slots {
		if s.placed {
			out = append(out, s.placement)
		}
	}
	return out
}

// Unplaced returns the shapes whose slots hold no placement.
func (l *Layout) Unplaced() []model.Shape {
	var out []model.Shape
	for i, s := range l.slots {
		if !s.placed {
			out = append(out, l.shapes[i])
		}
	}
	return out
}

// clone returns a deep copy with its own slots and grid.
func (l *Layout) clone() *Layout {
	cp := &Layout{
		width:  l.width,
		height: l.height,
		shapes: l.shapes,
		slots:  make([]slot, len(l.slots)),
		grid:   NewGrid(l.width, l.height),
	}
	copy(cp.slots, l.slots)
	copy(cp.grid.cells, l.grid.cells)
	return cp
}
