package model

import (
	"math"

	"github.com/google/uuid"
)

// Shape is a rectangle to be packed. Dimensions are integer grid cells.
// Two shapes with equal dimensions are still distinct; identity is the
// position in the input list.
type Shape struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func NewShape(label string, w, h int) Shape {
	return Shape{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Width:  w,
		Height: h,
	}
}

// Area returns width*height.
func (s Shape) Area() int {
	return s.Width * s.Height
}

// Dimensions returns the shape's size in the given orientation.
func (s Shape) Dimensions(rotated bool) (int, int) {
	if rotated {
		return s.Height, s.Width
	}
	return s.Width, s.Height
}

// ShapeRequest is one row of an input list: a shape and how many copies of it
// are needed.
type ShapeRequest struct {
	Label    string `json:"label"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Quantity int    `json:"quantity"`
}

// ExpandRequests turns requests into individual shapes, preserving order.
// A request with a quantity below 1 counts as a single shape.
func ExpandRequests(reqs []ShapeRequest) []Shape {
	var shapes []Shape
	for _, r := range reqs {
		qty := r.Quantity
		if qty < 1 {
			qty = 1
		}
		for i := 0; i < qty; i++ {
			shapes = append(shapes, NewShape(r.Label, r.Width, r.Height))
		}
	}
	return shapes
}

// CountRequests returns how many shapes ExpandRequests would produce. The sum
// saturates at math.MaxInt instead of wrapping.
func CountRequests(reqs []ShapeRequest) int {
	total := 0
	for _, r := range reqs {
		qty := max(r.Quantity, 1)
		if qty > math.MaxInt-total {
			return math.MaxInt
		}
		total += qty
	}
	return total
}

// Rect is an axis-aligned rectangle [X, X+Width) x [Y, Y+Height).
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Intersects reports whether two rectangles share at least one cell.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Within reports whether r lies inside a w x h surface anchored at the origin.
func (r Rect) Within(w, h int) bool {
	return r.X >= 0 && r.Y >= 0 && r.X+r.Width <= w && r.Y+r.Height <= h
}

// Placement is one shape put on a pallet.
type Placement struct {
	ShapeIndex int   `json:"shape_index"` // Position of the shape in the input list
	Shape      Shape `json:"shape"`
	X          int   `json:"x"`
	Y          int   `json:"y"`
	Rotated    bool  `json:"rotated"` // Width and height swapped
}

// PlacedWidth returns the effective width considering rotation.
func (p Placement) PlacedWidth() int {
	if p.Rotated {
		return p.Shape.Height
	}
	return p.Shape.Width
}

// PlacedHeight returns the effective height considering rotation.
func (p Placement) PlacedHeight() int {
	if p.Rotated {
		return p.Shape.Width
	}
	return p.Shape.Height
}

// Bounds returns the visible rectangle of the placement.
func (p Placement) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, Width: p.PlacedWidth(), Height: p.PlacedHeight()}
}

// Footprint returns the rectangle reserved for the placement, which includes
// the padding on the right and bottom edges.
func (p Placement) Footprint(padding int) Rect {
	r := p.Bounds()
	r.Width += padding
	r.Height += padding
	return r
}

// PalletResult is one filled pallet.
type PalletResult struct {
	Index      int         `json:"index"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Padding    int         `json:"padding"`
	Placements []Placement `json:"placements"`
}

// UsedArea returns the visible area covered by placements.
func (pr PalletResult) UsedArea() int {
	total := 0
	for _, p := range pr.Placements {
		total += p.PlacedWidth() * p.PlacedHeight()
	}
	return total
}

// TotalArea returns the pallet area.
func (pr PalletResult) TotalArea() int {
	return pr.Width * pr.Height
}

// Efficiency returns the usage percentage.
func (pr PalletResult) Efficiency() float64 {
	ta := pr.TotalArea()
	if ta == 0 {
		return 0
	}
	return float64(pr.UsedArea()) / float64(ta) * 100.0
}

// PackResult holds a full multi-pallet solution.
type PackResult struct {
	Algorithm   Algorithm      `json:"algorithm"`
	Pallets     []PalletResult `json:"pallets"`
	Unplaced    []Shape        `json:"unplaced,omitempty"`
	Interrupted bool           `json:"interrupted,omitempty"` // Genetic search stopped before its last generation
}

// PlacedCount returns the number of placements across all pallets.
func (r PackResult) PlacedCount() int {
	n := 0
	for _, p := range r.Pallets {
		n += len(p.Placements)
	}
	return n
}

// TotalEfficiency returns overall pallet usage percentage.
func (r PackResult) TotalEfficiency() float64 {
	var used, total int
	for _, p := range r.Pallets {
		used += p.UsedArea()
		total += p.TotalArea()
	}
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100.0
}

// GenerationStats summarizes the fitness of one evaluated population.
type GenerationStats struct {
	Generation int     `json:"generation"`
	Best       int     `json:"best"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"stddev"`
}

// GeneticResult is the best candidate layout found by the genetic search.
// Not every input shape is guaranteed to appear in Placements.
type GeneticResult struct {
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Placements  []Placement       `json:"placements"`
	Fitness     int               `json:"fitness"`
	Generations int               `json:"generations"`
	History     []GenerationStats `json:"history,omitempty"`
	Unplaced    []Shape           `json:"unplaced,omitempty"`
	Interrupted bool              `json:"interrupted,omitempty"` // Stopped before the configured generation count
}

// AsPackResult presents the layout as a single-pallet PackResult so exporters
// can treat both strategies alike. An empty layout yields no pallets.
func (g GeneticResult) AsPackResult() PackResult {
	res := PackResult{Algorithm: AlgorithmGenetic, Unplaced: g.Unplaced, Interrupted: g.Interrupted}
	if len(g.Placements) == 0 {
		return res
	}
	res.Pallets = []PalletResult{{
		Index:      1,
		Width:      g.Width,
		Height:     g.Height,
		Placements: g.Placements,
	}}
	return res
}

// Project ties everything together for save/load.
type Project struct {
	Name     string         `json:"name"`
	Shapes   []ShapeRequest `json:"shapes"`
	Settings PackSettings   `json:"settings"`
	Result   *PackResult    `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Shapes:   []ShapeRequest{},
		Settings: DefaultSettings(),
	}
}
