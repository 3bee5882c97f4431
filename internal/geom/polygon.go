package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Polygon is a simple polygon given by its vertices in order.
// The closing edge from the last vertex back to the first is implicit.
type Polygon struct {
	Points []r2.Vec
}

// NewPolygon builds a polygon from flat x,y pairs.
func NewPolygon(xy ...float64) Polygon {
	pts := make([]r2.Vec, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		pts = append(pts, r2.Vec{X: xy[i], Y: xy[i+1]})
	}
	return Polygon{Points: pts}
}

// Contains checks if p is inside the polygon using ray casting.
// Points on an edge count as inside.
func (p Polygon) Contains(pt r2.Vec) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	inside := false
	j := n - 1
	for i := range n {
		pi, pj := p.Points[i], p.Points[j]
		if onSegment(pt, pj, pi) {
			return true
		}
		if (pi.Y > pt.Y) != (pj.Y > pt.Y) {
			x := (pj.X-pi.X)*(pt.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if pt.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// SegmentIntersections returns every point where a→b meets an edge.
func (p Polygon) SegmentIntersections(a, b r2.Vec) []r2.Vec {
	n := len(p.Points)
	if n < 2 {
		return nil
	}
	var out []r2.Vec
	j := n - 1
	for i := range n {
		out = append(out, segmentIntersections(a, b, p.Points[j], p.Points[i])...)
		j = i
	}
	return out
}

// Bounds returns the polygon's bounding box.
func (p Polygon) Bounds() r2.Box {
	if len(p.Points) == 0 {
		return r2.Box{}
	}
	box := r2.Box{Min: p.Points[0], Max: p.Points[0]}
	for _, pt := range p.Points[1:] {
		box.Min.X = math.Min(box.Min.X, pt.X)
		box.Min.Y = math.Min(box.Min.Y, pt.Y)
		box.Max.X = math.Max(box.Max.X, pt.X)
		box.Max.Y = math.Max(box.Max.Y, pt.Y)
	}
	return box
}

// Outline returns the polygon itself.
func (p Polygon) Outline() Polygon { return p }

// Area returns the unsigned area (shoelace formula).
func (p Polygon) Area() float64 {
	return math.Abs(p.signedArea())
}

func (p Polygon) signedArea() float64 {
	n := len(p.Points)
	if n < 3 {
		return 0
	}
	var sum float64
	j := n - 1
	for i := range n {
		sum += r2.Cross(p.Points[j], p.Points[i])
		j = i
	}
	return sum / 2
}

// Translate returns a copy shifted by d.
func (p Polygon) Translate(d r2.Vec) Polygon {
	pts := make([]r2.Vec, len(p.Points))
	for i, pt := range p.Points {
		pts[i] = r2.Add(pt, d)
	}
	return Polygon{Points: pts}
}

// clipConvex clips subject against a convex clip polygon (Sutherland–Hodgman).
// The subject may be concave; the result then has degenerate bridging
// edges but its area stays correct.
func clipConvex(subject, clip Polygon) Polygon {
	if len(clip.Points) < 3 || len(subject.Points) < 3 {
		return Polygon{}
	}
	orient := 1.0
	if clip.signedArea() < 0 {
		orient = -1
	}

	out := subject.Points
	n := len(clip.Points)
	for i := range n {
		if len(out) == 0 {
			break
		}
		c0 := clip.Points[i]
		c1 := clip.Points[(i+1)%n]
		edge := r2.Sub(c1, c0)
		inside := func(p r2.Vec) bool {
			return orient*r2.Cross(edge, r2.Sub(p, c0)) >= -Epsilon
		}

		in := out
		out = make([]r2.Vec, 0, len(in)+2)
		prev := in[len(in)-1]
		for _, cur := range in {
			curIn, prevIn := inside(cur), inside(prev)
			switch {
			case curIn && prevIn:
				out = append(out, cur)
			case curIn && !prevIn:
				out = append(out, lineIntersection(prev, cur, c0, c1), cur)
			case !curIn && prevIn:
				out = append(out, lineIntersection(prev, cur, c0, c1))
			}
			prev = cur
		}
	}
	return Polygon{Points: out}
}

// lineIntersection intersects segment a→b with the infinite line c→d.
func lineIntersection(a, b, c, d r2.Vec) r2.Vec {
	r := r2.Sub(b, a)
	s := r2.Sub(d, c)
	denom := r2.Cross(r, s)
	if math.Abs(denom) < Epsilon {
		return a
	}
	t := r2.Cross(r2.Sub(c, a), s) / denom
	return r2.Add(a, r2.Scale(t, r))
}
