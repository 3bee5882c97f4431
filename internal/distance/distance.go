package distance

import (
	"github.com/udisondev/elevationruler/internal/grid"
)

// Gridless returns the Euclidean 3D distance between a and b in scene units.
func Gridless(g *grid.Grid, a, b grid.Point3) float64 {
	return g.PixelsToUnits(a.DistanceTo(b))
}

// GridMoves returns the folded tally used for pricing. Under the
// Equidistant rule a diagonal is just another orthogonal move and is
// counted as horizontal.
func GridMoves(g *grid.Grid, a, b grid.Offset3) Moves {
	m := FoldElevation(SumMoves(g, a, b), g.Diagonals)
	if g.Diagonals == grid.Equidistant {
		m.H += m.D
		m.D = 0
	}
	return m
}

// Gridded returns the grid distance from a to b in scene units:
// (H+V)*unit plus the diagonal price of D after elevation folding.
// The tally is advanced by the diagonals taken.
func Gridded(g *grid.Grid, a, b grid.Offset3, tally Tally) (float64, Tally) {
	m := GridMoves(g, a, b)
	d := float64(m.H+m.V) * g.Distance
	diag, tally := tally.Diagonal(g.Diagonals, m.D, g.Distance)
	return d + diag, tally
}

// Measure returns the physical distance between two locations.
func Measure(g *grid.Grid, a, b grid.Location, gridless bool) float64 {
	if gridless || g.IsGridless() {
		return Gridless(g, a.AsPoint(g), b.AsPoint(g))
	}
	d, _ := Gridded(g, a.AsOffset(g), b.AsOffset(g), Tally{})
	return d
}

// StepCost prices a single step of kind k. A lone elevation step folds to
// a horizontal one.
func StepCost(g *grid.Grid, k StepKind, tally Tally) (float64, Tally) {
	switch k {
	case Horizontal, Vertical, Elevation:
		return g.Distance, tally
	case Diagonal:
		return tally.Diagonal(g.Diagonals, 1, g.Distance)
	default:
		return 0, tally
	}
}
