package penalty

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/udisondev/elevationruler/internal/geom"
	"github.com/udisondev/elevationruler/internal/grid"
)

// MinLength is the segment length in pixels below which a segment is a point.
const MinLength = 1e-8

// tEpsilon merges crossings closer than this along the segment.
const tEpsilon = 1e-9

// Crossing is a point where a segment enters or leaves a source in
// cutaway space. T is the fraction of the segment from its start.
type Crossing struct {
	T      float64
	Source int // index into the sources slice
	Into   bool
}

type interval struct {
	lo, hi float64
}

// Crossings returns the crossings of segment a→b with srcs, sorted by T.
// For each source they alternate Into / out of; a segment that starts
// inside a source opens with an Into crossing at T=0.
func Crossings(a, b grid.Point3, srcs []Source) []Crossing {
	var out []Crossing
	for i, s := range srcs {
		for _, iv := range insideIntervals(a, b, s) {
			out = append(out,
				Crossing{T: iv.lo, Source: i, Into: true},
				Crossing{T: iv.hi, Source: i, Into: false},
			)
		}
	}
	slices.SortStableFunc(out, func(x, y Crossing) int { return cmp.Compare(x.T, y.T) })
	return out
}

// Intersect returns the movement multiplier of segment a→b across srcs:
//
//	(outside + Σ inside_k · active_k) / total
//
// where active_k is the product of the multipliers of every source the
// segment is inside during interval k. Overlapping sources compound.
// Returns 1 when no part of the segment is inside any source.
func Intersect(a, b grid.Point3, srcs []Source) float64 {
	total := a.DistanceTo(b)
	if total < MinLength || len(srcs) == 0 {
		return 1
	}
	crossings := Crossings(a, b, srcs)
	if len(crossings) == 0 {
		return 1
	}

	depth := make([]int, len(srcs))
	var outside, inside, weighted float64
	add := func(span float64) {
		if span <= 0 {
			return
		}
		mult, entered := 1.0, false
		for i, d := range depth {
			if d > 0 {
				mult *= srcs[i].Multiplier
				entered = true
			}
		}
		if !entered {
			outside += span
			return
		}
		inside += span
		weighted += span * mult
	}

	prev := 0.0
	for _, c := range crossings {
		add((c.T - prev) * total)
		if c.Into {
			depth[c.Source]++
		} else {
			depth[c.Source]--
		}
		prev = c.T
	}
	add((1 - prev) * total)

	if inside < MinLength {
		return 1
	}
	return (outside + weighted) / total
}

// insideIntervals returns the parts of a→b, as t ranges, that are inside
// the source's shape on the canvas and inside its band in elevation.
func insideIntervals(a, b grid.Point3, s Source) []interval {
	band, ok := bandInterval(a.Z, b.Z, s.BottomZ, s.TopZ)
	if !ok {
		return nil
	}
	var out []interval
	for _, iv := range canvasIntervals(a.XY(), b.XY(), s.Shape) {
		lo, hi := math.Max(iv.lo, band.lo), math.Min(iv.hi, band.hi)
		if hi-lo > tEpsilon {
			out = append(out, interval{lo: lo, hi: hi})
		}
	}
	return out
}

// canvasIntervals splits a→b at every boundary crossing and keeps the
// pieces whose midpoint is inside the shape. Crossing positions come from
// distance to a, not from any parameter the shape computed.
func canvasIntervals(a, b r2.Vec, shape geom.Shape) []interval {
	d := r2.Sub(b, a)
	length := r2.Norm(d)
	if length < MinLength {
		if shape.Contains(a) {
			return []interval{{lo: 0, hi: 1}}
		}
		return nil
	}

	ts := []float64{0, 1}
	for _, p := range shape.SegmentIntersections(a, b) {
		t := r2.Norm(r2.Sub(p, a)) / length
		if t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}
	slices.Sort(ts)

	var out []interval
	prev := ts[0]
	for _, t := range ts[1:] {
		if t-prev <= tEpsilon {
			continue
		}
		mid := r2.Add(a, r2.Scale((prev+t)/2, d))
		if shape.Contains(mid) {
			if n := len(out); n > 0 && scalar.EqualWithinAbs(out[n-1].hi, prev, tEpsilon) {
				out[n-1].hi = t
			} else {
				out = append(out, interval{lo: prev, hi: t})
			}
		}
		prev = t
	}
	return out
}

// bandInterval returns the t range over which the elevation of a segment
// running from az to bz stays inside [lo, hi].
func bandInterval(az, bz, lo, hi float64) (interval, bool) {
	dz := bz - az
	if math.Abs(dz) < MinLength {
		if az >= lo && az <= hi {
			return interval{lo: 0, hi: 1}, true
		}
		return interval{}, false
	}
	t0, t1 := (lo-az)/dz, (hi-az)/dz
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	t0, t1 = math.Max(t0, 0), math.Min(t1, 1)
	if t1-t0 <= tEpsilon {
		return interval{}, false
	}
	return interval{lo: t0, hi: t1}, true
}
