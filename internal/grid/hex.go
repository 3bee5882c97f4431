package grid

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// cube is an axial hex coordinate; the third cube axis is s = -q - r.
type cube struct {
	q, r int
}

func (c cube) s() int { return -c.q - c.r }

var cubeDirections = [6]cube{
	{q: 1, r: 0}, {q: 1, r: -1}, {q: 0, r: -1},
	{q: -1, r: 0}, {q: -1, r: 1}, {q: 0, r: 1},
}

func cubeDistance(a, b cube) int {
	return (absInt(a.q-b.q) + absInt(a.r-b.r) + absInt(a.s()-b.s())) / 2
}

// rowShifted reports whether row i is pushed half a cell right.
func (g *Grid) rowShifted(i int) bool {
	odd := i&1 == 1
	if g.Type == HexOddR {
		return odd
	}
	return !odd
}

// colShifted reports whether column j is pushed half a cell down.
func (g *Grid) colShifted(j int) bool {
	odd := j&1 == 1
	if g.Type == HexOddQ {
		return odd
	}
	return !odd
}

func (g *Grid) offsetToCube(o Offset) cube {
	switch g.Type {
	case HexOddR:
		return cube{q: o.J - (o.I-(o.I&1))/2, r: o.I}
	case HexEvenR:
		return cube{q: o.J - (o.I+(o.I&1))/2, r: o.I}
	case HexOddQ:
		return cube{q: o.J, r: o.I - (o.J-(o.J&1))/2}
	default: // HexEvenQ
		return cube{q: o.J, r: o.I - (o.J+(o.J&1))/2}
	}
}

func (g *Grid) cubeToOffset(c cube) Offset {
	switch g.Type {
	case HexOddR:
		return Offset{I: c.r, J: c.q + (c.r-(c.r&1))/2}
	case HexEvenR:
		return Offset{I: c.r, J: c.q + (c.r+(c.r&1))/2}
	case HexOddQ:
		return Offset{I: c.r + (c.q-(c.q&1))/2, J: c.q}
	default: // HexEvenQ
		return Offset{I: c.r + (c.q+(c.q&1))/2, J: c.q}
	}
}

// pointToCube converts a canvas point to the hex containing it.
// Cube (0,0) is offset (0,0) in every layout, so its center is the origin.
func (g *Grid) pointToCube(p r2.Vec) cube {
	origin := g.PointFromOffset(Offset{})
	px := p.X - origin.X
	py := p.Y - origin.Y
	r := g.hexRadius()

	var fq, fr float64
	if g.Type.IsHexRow() {
		fq = (sqrt3/3*px - py/3) / r
		fr = (2.0 / 3 * py) / r
	} else {
		fq = (2.0 / 3 * px) / r
		fr = (-px/3 + sqrt3/3*py) / r
	}
	return cubeRound(fq, fr, -fq-fr)
}

func cubeRound(fq, fr, fs float64) cube {
	q := math.Round(fq)
	r := math.Round(fr)
	s := math.Round(fs)

	dq := math.Abs(q - fq)
	dr := math.Abs(r - fr)
	ds := math.Abs(s - fs)

	switch {
	case dq > dr && dq > ds:
		q = -r - s
	case dr > ds:
		r = -q - s
	}
	return cube{q: int(q), r: int(r)}
}

// hexLine walks the hexes under the line between two cell centers by
// rounding evenly spaced cube samples. The start is nudged off the exact
// center so samples never land on a shared edge.
func (g *Grid) hexLine(a, b Offset) []Offset {
	ca, cb := g.offsetToCube(a), g.offsetToCube(b)
	n := cubeDistance(ca, cb)
	path := make([]Offset, 0, n+1)
	path = append(path, a)
	if n == 0 {
		return path
	}

	const nq, nr = 1e-6, 2e-6
	aq, ar := float64(ca.q)+nq, float64(ca.r)+nr
	bq, br := float64(cb.q)+nq, float64(cb.r)+nr
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		fq := aq + (bq-aq)*t
		fr := ar + (br-ar)*t
		path = append(path, g.cubeToOffset(cubeRound(fq, fr, -fq-fr)))
	}
	return path
}
