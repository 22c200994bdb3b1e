package engine

import "math"

// Grid is the occupancy model shared by both packers. Each cell holds the
// number of rectangles covering it, so a rectangle can be removed again
// even when it overlaps others.
type Grid struct {
	width, height int
	cells         []int32
}

// NewGrid creates an empty width x height grid. Negative sizes, and sizes
// whose cell count overflows int, give an empty grid.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 || width > math.MaxInt/height {
		width, height = 0, 0
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]int32, width*height),
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether the rectangle lies entirely inside the grid.
func (g *Grid) InBounds(x, y, w, h int) bool {
	return w > 0 && h > 0 && x >= 0 && y >= 0 && x+w <= g.width && y+h <= g.height
}

// Occupied reports whether a single cell is covered. Out-of-bounds cells are
// reported as occupied.
func (g *Grid) Occupied(x, y int) bool {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return true
	}
	return g.cells[y*g.width+x] > 0
}

// IsFree reports whether every cell of the rectangle is in bounds and
// unoccupied.
func (g *Grid) IsFree(x, y, w, h int) bool {
	if !g.InBounds(x, y, w, h) {
		return false
	}
	for j := y; j < y+h; j++ {
		row := g.cells[j*g.width : (j+1)*g.width]
		for i := x; i < x+w; i++ {
			if row[i] > 0 {
				return false
			}
		}
	}
	return true
}

// Mark covers the rectangle. Cells outside the grid are ignored.
func (g *Grid) Mark(x, y, w, h int) {
	g.add(x, y, w, h, 1)
}

// Unmark removes one layer of coverage from the rectangle. It must mirror an
// earlier Mark with the same arguments.
func (g *Grid) Unmark(x, y, w, h int) {
	g.add(x, y, w, h, -1)
}

func (g *Grid) add(x, y, w, h int, delta int32) {
	x0, y0, x1, y1 := g.clip(x, y, w, h)
	for j := y0; j < y1; j++ {
		row := g.cells[j*g.width : (j+1)*g.width]
		for i := x0; i < x1; i++ {
			row[i] += delta
			if row[i] < 0 {
				row[i] = 0
			}
		}
	}
}

// FreeCells counts the in-bounds unoccupied cells of the rectangle.
func (g *Grid) FreeCells(x, y, w, h int) int {
	x0, y0, x1, y1 := g.clip(x, y, w, h)
	free := 0
	for j := y0; j < y1; j++ {
		row := g.cells[j*g.width : (j+1)*g.width]
		for i := x0; i < x1; i++ {
			if row[i] == 0 {
				free++
			}
		}
	}
	return free
}

// OccupiedCells returns the number of covered cells.
func (g *Grid) OccupiedCells() int {
	n := 0
	for _, c := range g.cells {
		if c > 0 {
			n++
		}
	}
	return n
}

// Reset clears every cell.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = 0
	}
}

// clip intersects the rectangle with the grid and returns half-open bounds.
func (g *Grid) clip(x, y, w, h int) (x0, y0, x1, y1 int) {
	x0, y0 = max(x, 0), max(y, 0)
	x1, y1 = min(x+w, g.width), min(y+h, g.height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return x0, y0, x1, y1
}

// ClippedArea returns how many cells of the rectangle lie inside the grid.
func (g *Grid) ClippedArea(x, y, w, h int) int {
	x0, y0, x1, y1 := g.clip(x, y, w, h)
	return (x1 - x0) * (y1 - y0)
}
