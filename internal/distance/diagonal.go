package distance

import (
	"math"

	"github.com/udisondev/elevationruler/internal/grid"
)

// DiagonalCost returns the distance added by n diagonal moves when prev
// diagonals have already been taken on the path. prev only matters for
// the alternating rules, whose price depends on the running parity.
func DiagonalCost(rule grid.DiagonalRule, prev, n int, unit float64) float64 {
	if n <= 0 {
		return 0
	}
	switch rule {
	case grid.Equidistant:
		return float64(n) * unit
	case grid.Exact:
		return float64(n) * unit * math.Sqrt2
	case grid.Approximate:
		return float64(n) * unit * 1.5
	case grid.Rectilinear, grid.Illegal:
		return float64(n) * unit * 2
	case grid.AlternatingOdd, grid.AlternatingEven:
		var cost float64
		for i := prev + 1; i <= prev+n; i++ {
			odd := i%2 == 1
			if odd == (rule == grid.AlternatingOdd) {
				cost += unit
			} else {
				cost += 2 * unit
			}
		}
		return cost
	default:
		return float64(n) * unit
	}
}

// Tally carries the diagonal count across steps and segments so the
// alternating rules keep their phase over a whole path.
type Tally struct {
	Diagonals int
}

// Diagonal prices n more diagonals and returns the advanced tally.
func (t Tally) Diagonal(rule grid.DiagonalRule, n int, unit float64) (float64, Tally) {
	cost := DiagonalCost(rule, t.Diagonals, n, unit)
	t.Diagonals += n
	return cost, t
}
