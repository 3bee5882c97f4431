package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ellipseOutlinePoints is the vertex count of the polygon used for area clipping.
const ellipseOutlinePoints = 64

// Ellipse is an axis-aligned ellipse.
type Ellipse struct {
	Center r2.Vec
	RX, RY float64
}

// NewCircle builds a circle.
func NewCircle(cx, cy, r float64) Ellipse {
	return Ellipse{Center: r2.Vec{X: cx, Y: cy}, RX: r, RY: r}
}

// Contains checks the normalized squared distance against 1.
func (e Ellipse) Contains(p r2.Vec) bool {
	if e.RX <= 0 || e.RY <= 0 {
		return false
	}
	dx := (p.X - e.Center.X) / e.RX
	dy := (p.Y - e.Center.Y) / e.RY
	return dx*dx+dy*dy <= 1+Epsilon
}

// SegmentIntersections solves the quadratic for a→b in the ellipse's
// unit-circle space.
func (e Ellipse) SegmentIntersections(a, b r2.Vec) []r2.Vec {
	if e.RX <= 0 || e.RY <= 0 {
		return nil
	}
	ax := (a.X - e.Center.X) / e.RX
	ay := (a.Y - e.Center.Y) / e.RY
	dx := (b.X - a.X) / e.RX
	dy := (b.Y - a.Y) / e.RY

	qa := dx*dx + dy*dy
	if qa < Epsilon {
		return nil
	}
	qb := 2 * (ax*dx + ay*dy)
	qc := ax*ax + ay*ay - 1
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return nil
	}

	sq := math.Sqrt(disc)
	roots := []float64{(-qb - sq) / (2 * qa)}
	if sq > Epsilon {
		roots = append(roots, (-qb+sq)/(2*qa))
	}

	d := r2.Sub(b, a)
	var out []r2.Vec
	for _, t := range roots {
		if t < -Epsilon || t > 1+Epsilon {
			continue
		}
		out = append(out, r2.Add(a, r2.Scale(t, d)))
	}
	return out
}

// Bounds returns the ellipse's bounding box.
func (e Ellipse) Bounds() r2.Box {
	return r2.Box{
		Min: r2.Vec{X: e.Center.X - e.RX, Y: e.Center.Y - e.RY},
		Max: r2.Vec{X: e.Center.X + e.RX, Y: e.Center.Y + e.RY},
	}
}

// Outline approximates the ellipse with a regular polygon.
func (e Ellipse) Outline() Polygon {
	pts := make([]r2.Vec, ellipseOutlinePoints)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / ellipseOutlinePoints
		pts[i] = r2.Vec{
			X: e.Center.X + e.RX*math.Cos(a),
			Y: e.Center.Y + e.RY*math.Sin(a),
		}
	}
	return Polygon{Points: pts}
}
