// Package grid models the tabletop grid: square and hex offset layouts,
// conversions between pixel points and cell offsets, elevation steps and
// the straight-line cell traversal used by every gridded measurement.
package grid

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/udisondev/elevationruler/internal/geom"
)

// Grid is the active grid configuration. It is read-only once built.
type Grid struct {
	Type      Type
	Size      float64 // pixels per cell (center-to-center for hex)
	Distance  float64 // scene units per cell
	Diagonals DiagonalRule
}

// New creates a grid.
func New(t Type, size, distance float64, rule DiagonalRule) *Grid {
	return &Grid{Type: t, Size: size, Distance: distance, Diagonals: rule}
}

// IsGridless reports whether measurement ignores cells.
func (g *Grid) IsGridless() bool { return g.Type == Gridless }

// PixelsPerUnit is the scene's pixel-per-distance-unit ratio.
func (g *Grid) PixelsPerUnit() float64 { return g.Size / g.Distance }

// PixelsToUnits converts a pixel length to scene units.
func (g *Grid) PixelsToUnits(px float64) float64 { return px / g.PixelsPerUnit() }

// UnitsToPixels converts scene units to pixels.
func (g *Grid) UnitsToPixels(u float64) float64 { return u * g.PixelsPerUnit() }

// ElevationStep converts a pixel elevation to the nearest whole step.
// One step is one cell's worth of distance: z = k * Distance * PixelsPerUnit.
func (g *Grid) ElevationStep(z float64) int {
	return int(math.Round(z / g.Size))
}

// ElevationPixels converts an elevation step back to pixels.
func (g *Grid) ElevationPixels(k int) float64 {
	return float64(k) * g.Size
}

// hexRadius is the center-to-corner distance of a hex cell.
func (g *Grid) hexRadius() float64 { return g.Size / sqrt3 }

// OffsetFromPoint returns the cell containing p.
func (g *Grid) OffsetFromPoint(p r2.Vec) Offset {
	if !g.Type.IsHex() {
		return Offset{
			I: int(math.Floor(p.Y / g.Size)),
			J: int(math.Floor(p.X / g.Size)),
		}
	}
	return g.cubeToOffset(g.pointToCube(p))
}

// PointFromOffset returns the center of cell o.
func (g *Grid) PointFromOffset(o Offset) r2.Vec {
	switch g.Type {
	case HexOddR, HexEvenR:
		shift := 0.0
		if g.rowShifted(o.I) {
			shift = 0.5
		}
		return r2.Vec{
			X: g.Size * (float64(o.J) + 0.5 + shift),
			Y: g.hexRadius() * (1 + 1.5*float64(o.I)),
		}
	case HexOddQ, HexEvenQ:
		shift := 0.0
		if g.colShifted(o.J) {
			shift = 0.5
		}
		return r2.Vec{
			X: g.hexRadius() * (1 + 1.5*float64(o.J)),
			Y: g.Size * (float64(o.I) + 0.5 + shift),
		}
	default:
		return r2.Vec{
			X: (float64(o.J) + 0.5) * g.Size,
			Y: (float64(o.I) + 0.5) * g.Size,
		}
	}
}

// TopLeftFromOffset returns the top-left corner of the cell's bounding box.
func (g *Grid) TopLeftFromOffset(o Offset) r2.Vec {
	c := g.PointFromOffset(o)
	w, h := g.cellExtent()
	return r2.Vec{X: c.X - w/2, Y: c.Y - h/2}
}

// cellExtent returns the bounding width and height of one cell.
func (g *Grid) cellExtent() (float64, float64) {
	switch {
	case g.Type.IsHexRow():
		return g.Size, 2 * g.hexRadius()
	case g.Type.IsHex():
		return 2 * g.hexRadius(), g.Size
	default:
		return g.Size, g.Size
	}
}

// CellPolygon returns the outline of cell o.
func (g *Grid) CellPolygon(o Offset) geom.Polygon {
	c := g.PointFromOffset(o)
	if !g.Type.IsHex() {
		return geom.NewRectangle(c.X-g.Size/2, c.Y-g.Size/2, g.Size, g.Size).Outline()
	}

	start := 0.0
	if g.Type.IsHexRow() {
		start = math.Pi / 6 // pointy top
	}
	r := g.hexRadius()
	pts := make([]r2.Vec, 6)
	for i := range pts {
		a := start + float64(i)*math.Pi/3
		pts[i] = r2.Vec{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
	}
	return geom.Polygon{Points: pts}
}

// CellArea returns the area of one cell in square pixels.
func (g *Grid) CellArea() float64 {
	if !g.Type.IsHex() {
		return g.Size * g.Size
	}
	r := g.hexRadius()
	return 3 * sqrt3 / 2 * r * r
}

// DirectPath returns the ordered cells crossed by the straight line from
// the center of a to the center of b, both endpoints included.
// Consecutive cells are always neighbors.
func (g *Grid) DirectPath(a, b Offset) []Offset {
	if g.Type.IsHex() {
		return g.hexLine(a, b)
	}

	path := make([]Offset, 0, max(absInt(b.I-a.I), absInt(b.J-a.J))+1)
	it := NewLineIterator(a.J, a.I, b.J, b.I)
	for it.Next() {
		x, y := it.Cell()
		path = append(path, Offset{I: y, J: x})
	}
	return path
}

// CellDistance returns the number of single-cell moves between a and b
// when diagonals count as one move.
func (g *Grid) CellDistance(a, b Offset) int {
	if g.Type.IsHex() {
		return cubeDistance(g.offsetToCube(a), g.offsetToCube(b))
	}
	return max(absInt(b.I-a.I), absInt(b.J-a.J))
}

// Neighbors returns the cells one move away from o. Square grids under the
// Illegal diagonal rule only connect orthogonally.
func (g *Grid) Neighbors(o Offset) []Offset {
	if g.Type.IsHex() {
		c := g.offsetToCube(o)
		out := make([]Offset, 0, 6)
		for _, d := range cubeDirections {
			out = append(out, g.cubeToOffset(cube{q: c.q + d.q, r: c.r + d.r}))
		}
		return out
	}

	out := make([]Offset, 0, 8)
	for di := -1; di <= 1; di++ {
		for dj := -1; dj <= 1; dj++ {
			if di == 0 && dj == 0 {
				continue
			}
			if di != 0 && dj != 0 && g.Diagonals == Illegal {
				continue
			}
			out = append(out, Offset{I: o.I + di, J: o.J + dj})
		}
	}
	return out
}
