package grid

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Point3 is a canvas position in pixels; Z is elevation in pixels.
type Point3 r3.Vec

// Location is either representation of a 3D grid coordinate. Every
// measurement entry point accepts a Location so callers may pass pixel
// points or cell offsets.
type Location interface {
	AsPoint(g *Grid) Point3
	AsOffset(g *Grid) Offset3
}

// AsPoint returns p unchanged.
func (p Point3) AsPoint(*Grid) Point3 { return p }

// AsOffset returns the cell containing p and its elevation step.
func (p Point3) AsOffset(g *Grid) Offset3 {
	return g.OffsetFromPoint(p.XY()).At(g.ElevationStep(p.Z))
}

// XY projects onto the canvas.
func (p Point3) XY() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// Vec returns the gonum vector.
func (p Point3) Vec() r3.Vec { return r3.Vec(p) }

// Lerp returns the point a fraction t of the way from p to q.
func (p Point3) Lerp(q Point3, t float64) Point3 {
	return Point3(r3.Add(p.Vec(), r3.Scale(t, r3.Sub(q.Vec(), p.Vec()))))
}

// DistanceTo returns the Euclidean distance in pixels.
func (p Point3) DistanceTo(q Point3) float64 {
	return r3.Norm(r3.Sub(q.Vec(), p.Vec()))
}

// AsPoint returns the center of the cell at the elevation of step K.
func (o Offset3) AsPoint(g *Grid) Point3 {
	c := g.PointFromOffset(o.Offset())
	return Point3{X: c.X, Y: c.Y, Z: g.ElevationPixels(o.K)}
}

// AsOffset returns o unchanged.
func (o Offset3) AsOffset(*Grid) Offset3 { return o }
