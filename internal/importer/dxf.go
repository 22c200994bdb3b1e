package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/palletpack/internal/model"
)

// point is a drawing coordinate in DXF units.
type point struct{ x, y float64 }

// segment connects two points; loose LINEs and ARCs are chained from these.
type segment struct{ start, end point }

// bounds is an axis-aligned bounding box of a closed outline.
type bounds struct{ minX, minY, maxX, maxY float64 }

func (b bounds) width() float64  { return b.maxX - b.minX }
func (b bounds) height() float64 { return b.maxY - b.minY }
func (b bounds) area() float64   { return b.width() * b.height() }

func boundsOf(pts []point) bounds {
	b := bounds{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, p := range pts {
		b.minX = math.Min(b.minX, p.x)
		b.minY = math.Min(b.minY, p.y)
		b.maxX = math.Max(b.maxX, p.x)
		b.maxY = math.Max(b.maxY, p.y)
	}
	return b
}

// ImportDXF imports shapes from a DXF file. Every closed outline (LWPOLYLINE,
// CIRCLE, or chain of connected LINEs/ARCs) becomes one shape sized to its
// bounding box, rounded up to whole cells. Identical boxes are merged into a
// single request with a quantity.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var boxes []bounds
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			pts := lwPolylinePoints(e)
			if len(pts) < 3 {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
				continue
			}
			boxes = append(boxes, boundsOf(pts))

		case *entity.Circle:
			cx, cy, r := e.Center[0], e.Center[1], e.Radius
			boxes = append(boxes, bounds{cx - r, cy - r, cx + r, cy + r})

		case *entity.Arc:
			pts := arcPoints(e, 32)
			for i := 0; i+1 < len(pts); i++ {
				segments = append(segments, segment{pts[i], pts[i+1]})
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: point{e.Start[0], e.Start[1]},
				end:   point{e.End[0], e.End[1]},
			})
		}
	}

	for _, chain := range chainSegments(segments, 0.01) {
		boxes = append(boxes, boundsOf(chain))
	}

	if len(boxes) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	// Largest first for a stable order
	sort.SliceStable(boxes, func(i, j int) bool { return boxes[i].area() > boxes[j].area() })

	index := map[[2]int]int{}
	for _, b := range boxes {
		if b.width() < 0.01 || b.height() < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", b.width(), b.height()))
			continue
		}

		w := int(math.Ceil(b.width() - 1e-6))
		h := int(math.Ceil(b.height() - 1e-6))
		key := [2]int{w, h}
		if i, ok := index[key]; ok {
			result.Shapes[i].Quantity++
			continue
		}
		index[key] = len(result.Shapes)
		result.Shapes = append(result.Shapes, model.ShapeRequest{
			Label:    fmt.Sprintf("DXF %dx%d", w, h),
			Width:    w,
			Height:   h,
			Quantity: 1,
		})
	}

	return result
}

// lwPolylinePoints returns the vertices of an LWPOLYLINE, sampling the arc
// of every bulged edge so the bounding box covers it.
func lwPolylinePoints(lw *entity.LwPolyline) []point {
	var pts []point
	n := len(lw.Vertices)
	for i := 0; i < n; i++ {
		current := point{lw.Vertices[i][0], lw.Vertices[i][1]}
		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		if math.Abs(bulge) <= 1e-9 {
			pts = append(pts, current)
			continue
		}
		next := point{lw.Vertices[(i+1)%n][0], lw.Vertices[(i+1)%n][1]}
		arc := bulgeArcPoints(current, next, bulge, 32)
		pts = append(pts, arc[:len(arc)-1]...)
	}
	return pts
}

// bulgeArcPoints samples the arc between two vertices. The bulge is the
// tangent of a quarter of the included angle; its sign gives the direction.
func bulgeArcPoints(p1, p2 point, bulge float64, numSegments int) []point {
	dx, dy := p2.x-p1.x, p2.y-p1.y
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return []point{p1, p2}
	}

	sagitta := math.Abs(bulge) * chord / 2
	radius := (chord*chord/(4*sagitta) + sagitta) / 2

	perpX, perpY := -dy/chord, dx/chord
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	dist := radius - sagitta
	cx := (p1.x+p2.x)/2 + perpX*dist
	cy := (p1.y+p2.y)/2 + perpY*dist

	start := math.Atan2(p1.y-cy, p1.x-cx)
	end := math.Atan2(p2.y-cy, p2.x-cx)
	if bulge < 0 && end > start {
		end -= 2 * math.Pi
	} else if bulge > 0 && end < start {
		end += 2 * math.Pi
	}

	pts := make([]point, numSegments+1)
	for i := range pts {
		a := start + float64(i)/float64(numSegments)*(end-start)
		pts[i] = point{cx + radius*math.Cos(a), cy + radius*math.Sin(a)}
	}
	return pts
}

// arcPoints samples a DXF ARC entity counter-clockwise from start to end angle.
func arcPoints(a *entity.Arc, numSegments int) []point {
	cx, cy, r := a.Circle.Center[0], a.Circle.Center[1], a.Circle.Radius
	start := a.Angle[0] * math.Pi / 180
	end := a.Angle[1] * math.Pi / 180
	if end <= start {
		end += 2 * math.Pi
	}

	pts := make([]point, numSegments+1)
	for i := range pts {
		t := start + float64(i)/float64(numSegments)*(end-start)
		pts[i] = point{cx + r*math.Cos(t), cy + r*math.Sin(t)}
	}
	return pts
}

// chainSegments joins segments whose endpoints lie within tolerance into
// closed outlines. Open chains are dropped.
func chainSegments(segs []segment, tolerance float64) [][]point {
	used := make([]bool, len(segs))
	var outlines [][]point

	for startIdx := range segs {
		if used[startIdx] {
			continue
		}
		used[startIdx] = true
		chain := []point{segs[startIdx].start, segs[startIdx].end}

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
				} else if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
				} else {
					continue
				}
				used[i] = true
				extended = true
				break
			}
		}

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	return outlines
}

func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.x-b.x, a.y-b.y) <= tolerance
}
