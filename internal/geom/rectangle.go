package geom

import "gonum.org/v1/gonum/spatial/r2"

// Rectangle is an axis-aligned rectangle.
type Rectangle struct {
	Min, Max r2.Vec
}

// NewRectangle builds a rectangle from its top-left corner and size.
func NewRectangle(x, y, w, h float64) Rectangle {
	return Rectangle{
		Min: r2.Vec{X: x, Y: y},
		Max: r2.Vec{X: x + w, Y: y + h},
	}
}

// Contains checks AABB membership, edges included.
func (r Rectangle) Contains(p r2.Vec) bool {
	return p.X >= r.Min.X-Epsilon && p.X <= r.Max.X+Epsilon &&
		p.Y >= r.Min.Y-Epsilon && p.Y <= r.Max.Y+Epsilon
}

// SegmentIntersections returns the crossings of a→b with the four edges.
func (r Rectangle) SegmentIntersections(a, b r2.Vec) []r2.Vec {
	return r.Outline().SegmentIntersections(a, b)
}

// Bounds returns the rectangle as a box.
func (r Rectangle) Bounds() r2.Box { return r2.Box{Min: r.Min, Max: r.Max} }

// Outline returns the rectangle's corners clockwise from the top-left.
func (r Rectangle) Outline() Polygon {
	return Polygon{Points: []r2.Vec{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	}}
}

// Center returns the midpoint.
func (r Rectangle) Center() r2.Vec {
	return r2.Scale(0.5, r2.Add(r.Min, r.Max))
}
