// Package measure combines physical distance and move penalties into the
// ruler's answer for a segment or a whole path: how far it is, what it
// costs to move there, and where a mover with a limited budget stops.
package measure

import (
	"log/slog"
	"math"

	"github.com/udisondev/elevationruler/internal/distance"
	"github.com/udisondev/elevationruler/internal/grid"
	"github.com/udisondev/elevationruler/internal/penalty"
	"github.com/udisondev/elevationruler/internal/scene"
)

const (
	// MaxBisections bounds the gridless stop-target search.
	MaxBisections = 20
	// StopTolerance is how close, in scene units, the gridless search
	// gets to the stop target.
	StopTolerance = 0.01

	stopEpsilon = 1e-9
)

// Options control one measurement.
type Options struct {
	// Token is the mover. It never penalizes itself. May be nil.
	Token *scene.Token
	// Gridless measures straight 3D distance even on a gridded scene.
	Gridless bool
	// DeferElevation leaves elevation beyond the segment's 2D step count
	// for a later segment. Gridded only; the zero value resolves the whole
	// elevation change.
	DeferElevation bool
	// StopTarget is the move-distance budget; zero means unlimited.
	StopTarget float64
	// Tally is the diagonal count carried in from earlier segments.
	Tally distance.Tally
}

// Result is the outcome of a measurement.
type Result struct {
	Distance     float64 // physical distance, scene units
	MoveDistance float64 // Distance scaled by move penalties
	End          grid.Point3

	// Remaining is the unused budget when a stop target was given.
	Remaining float64
	// RemainingElevationSteps is the signed elevation change deferred
	// by DeferElevation.
	RemainingElevationSteps int
	// Truncated is set when the stop target ended the measurement
	// before the destination.
	Truncated bool

	Tally distance.Tally
}

// Measurer measures segments on one grid with one penalty engine.
type Measurer struct {
	grid   *grid.Grid
	engine *penalty.Engine
}

// New creates a measurer. A nil engine applies no penalties.
func New(g *grid.Grid, engine *penalty.Engine) *Measurer {
	return &Measurer{grid: g, engine: engine}
}

// Grid returns the measurer's grid.
func (m *Measurer) Grid() *grid.Grid { return m.grid }

type strategy func(m *Measurer, a, b grid.Location, opts Options) Result

var strategies = [...]strategy{
	penalty.Gridless: (*Measurer).gridless,
	penalty.Gridded:  (*Measurer).gridded,
}

// Measure returns the distance and move distance from a to b.
// It reads the scene at call time and keeps nothing between calls.
func (m *Measurer) Measure(a, b grid.Location, opts Options) Result {
	return strategies[m.mode(opts.Gridless)](m, a, b, opts)
}

func (m *Measurer) mode(gridless bool) penalty.Mode {
	if gridless || m.grid.IsGridless() {
		return penalty.Gridless
	}
	return penalty.Gridded
}

func (m *Measurer) penaltyFunc(gridless bool, mover *scene.Token) penalty.Func {
	if m.engine == nil {
		return func(grid.Point3, grid.Point3) float64 { return 1 }
	}
	return m.engine.Func(gridless, mover)
}

// gridless measures the straight segment once. With a stop target it
// bisects along the segment, since the penalty varies along it.
func (m *Measurer) gridless(a, b grid.Location, opts Options) Result {
	pa, pb := a.AsPoint(m.grid), b.AsPoint(m.grid)
	res := Result{End: pb, Tally: opts.Tally}
	if pa.DistanceTo(pb) < penalty.MinLength {
		res.End = pa
		res.Remaining = opts.StopTarget
		return res
	}

	pf := m.penaltyFunc(true, opts.Token)
	cost := func(p grid.Point3) (float64, float64) {
		d := distance.Gridless(m.grid, pa, p)
		return d, d * pf(pa, p)
	}

	res.Distance, res.MoveDistance = cost(pb)
	target := opts.StopTarget
	if target <= 0 {
		return res
	}
	if res.MoveDistance <= target+stopEpsilon {
		res.Remaining = target - res.MoveDistance
		return res
	}

	lo, hi := 0.0, 1.0
	best := Result{End: pa, Tally: opts.Tally}
	bestGap := math.Inf(1)
	for range MaxBisections {
		t := (lo + hi) / 2
		p := pa.Lerp(pb, t)
		d, md := cost(p)
		if gap := math.Abs(md - target); gap < bestGap {
			best.Distance, best.MoveDistance, best.End = d, md, p
			bestGap = gap
		}
		if bestGap <= StopTolerance/2 {
			break
		}
		if md < target {
			lo = t
		} else {
			hi = t
		}
	}

	best.Truncated = true
	best.Remaining = math.Max(0, target-best.MoveDistance)
	return best
}

// gridded walks the cells under the 3D line, pricing and penalizing one
// step at a time so a stop target can end on an exact cell.
func (m *Measurer) gridded(a, b grid.Location, opts Options) Result {
	g := m.grid
	oa, ob := a.AsOffset(g), b.AsOffset(g)
	res := Result{End: a.AsPoint(g), Remaining: opts.StopTarget, Tally: opts.Tally}
	if oa == ob {
		return res
	}

	end := b.AsPoint(g)
	if opts.DeferElevation {
		steps := g.CellDistance(oa.Offset(), ob.Offset())
		if dk := ob.K - oa.K; absInt(dk) > steps {
			capped := oa.K + signInt(dk)*steps
			res.RemainingElevationSteps = ob.K - capped
			ob.K = capped
			end.Z = g.ElevationPixels(capped)
		}
	}

	path := distance.Under3dLine(g, oa, ob)
	if len(path) == 0 {
		slog.Warn("no grid cells under segment", "from", oa, "to", ob)
		return Result{End: a.AsPoint(g), Tally: opts.Tally}
	}

	pf := m.penaltyFunc(false, opts.Token)
	tally := opts.Tally
	prev := path[0]
	prevPt := prev.AsPoint(g)
	for _, curr := range path[1:] {
		kind := distance.Classify(g, prev, curr)
		if kind == distance.None {
			slog.Warn("repeated cell in traversal", "cell", curr)
			continue
		}
		cost, next := distance.StepCost(g, kind, tally)
		currPt := curr.AsPoint(g)
		moveCost := cost * pf(prevPt, currPt)

		if opts.StopTarget > 0 && res.MoveDistance+moveCost > opts.StopTarget+stopEpsilon {
			res.Truncated = true
			break
		}

		res.Distance += cost
		res.MoveDistance += moveCost
		res.End = currPt
		tally = next
		prev, prevPt = curr, currPt
	}

	if !res.Truncated {
		res.End = end
	}
	res.Tally = tally
	if opts.StopTarget > 0 {
		res.Remaining = opts.StopTarget - res.MoveDistance
	} else {
		res.Remaining = 0
	}
	return res
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func signInt(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
