// Package geom implements the canvas shapes obstacles are made of:
// polygons, rectangles and ellipses, with containment, segment
// intersection and clipped-area queries.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Epsilon is the tolerance used for coincident points and parallel edges.
const Epsilon = 1e-9

// Shape is a closed region on the canvas.
type Shape interface {
	// Contains reports whether p lies inside the shape or on its boundary.
	Contains(p r2.Vec) bool
	// SegmentIntersections returns the points where segment a→b crosses
	// the shape boundary. Order is unspecified; callers must derive the
	// position along the segment from the points themselves.
	SegmentIntersections(a, b r2.Vec) []r2.Vec
	// Bounds returns the axis-aligned bounding box.
	Bounds() r2.Box
	// Outline returns a polygon with the same area (exact for polygons
	// and rectangles, a fine approximation for ellipses).
	Outline() Polygon
}

// BoxesOverlap reports whether two boxes share any point.
func BoxesOverlap(a, b r2.Box) bool {
	return a.Min.X <= b.Max.X && b.Min.X <= a.Max.X &&
		a.Min.Y <= b.Max.Y && b.Min.Y <= a.Max.Y
}

// SegmentBox returns the bounding box of segment a→b.
func SegmentBox(a, b r2.Vec) r2.Box {
	return r2.Box{
		Min: r2.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: r2.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// PadBox grows a box by d on every side.
func PadBox(b r2.Box, d float64) r2.Box {
	return r2.Box{
		Min: r2.Vec{X: b.Min.X - d, Y: b.Min.Y - d},
		Max: r2.Vec{X: b.Max.X + d, Y: b.Max.Y + d},
	}
}

// Touches reports whether segment a→b has any point inside s.
func Touches(s Shape, a, b r2.Vec) bool {
	if !BoxesOverlap(s.Bounds(), SegmentBox(a, b)) {
		return false
	}
	if s.Contains(a) || s.Contains(b) {
		return true
	}
	return len(s.SegmentIntersections(a, b)) > 0
}

// OverlapArea returns the area of s that falls inside the convex polygon clip.
func OverlapArea(s Shape, clip Polygon) float64 {
	if !BoxesOverlap(s.Bounds(), clip.Bounds()) {
		return 0
	}
	return clipConvex(s.Outline(), clip).Area()
}

// segmentIntersections returns the crossing points of segment a→b with
// segment c→d. Collinear overlaps yield the overlap endpoints.
func segmentIntersections(a, b, c, d r2.Vec) []r2.Vec {
	r := r2.Sub(b, a)
	s := r2.Sub(d, c)
	denom := r2.Cross(r, s)
	ca := r2.Sub(c, a)

	if math.Abs(denom) < Epsilon {
		if math.Abs(r2.Cross(ca, r)) > Epsilon {
			return nil // parallel, not collinear
		}
		rr := r2.Dot(r, r)
		if rr < Epsilon {
			return nil
		}
		t0 := r2.Dot(ca, r) / rr
		t1 := r2.Dot(r2.Sub(d, a), r) / rr
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		lo, hi := math.Max(t0, 0), math.Min(t1, 1)
		if lo > hi {
			return nil
		}
		return []r2.Vec{r2.Add(a, r2.Scale(lo, r)), r2.Add(a, r2.Scale(hi, r))}
	}

	t := r2.Cross(ca, s) / denom
	u := r2.Cross(ca, r) / denom
	if t < -Epsilon || t > 1+Epsilon || u < -Epsilon || u > 1+Epsilon {
		return nil
	}
	return []r2.Vec{r2.Add(a, r2.Scale(t, r))}
}

// onSegment reports whether p lies on segment a→b.
func onSegment(p, a, b r2.Vec) bool {
	ab := r2.Sub(b, a)
	ap := r2.Sub(p, a)
	if math.Abs(r2.Cross(ab, ap)) > Epsilon*math.Max(1, r2.Norm(ab)) {
		return false
	}
	dot := r2.Dot(ap, ab)
	return dot >= -Epsilon && dot <= r2.Dot(ab, ab)+Epsilon
}
