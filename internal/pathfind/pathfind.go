// Package pathfind suggests a cheap cell route between two locations,
// pricing each step with the same distance and move-penalty rules the
// ruler uses.
package pathfind

import (
	"container/heap"
	"log/slog"
	"math"

	"github.com/udisondev/elevationruler/internal/distance"
	"github.com/udisondev/elevationruler/internal/grid"
	"github.com/udisondev/elevationruler/internal/penalty"
	"github.com/udisondev/elevationruler/internal/scene"
)

// DefaultMaxIterations limits CPU usage when no limit is configured.
const DefaultMaxIterations = 10000

// Finder runs A* over grid cells at a constant elevation.
type Finder struct {
	grid          *grid.Grid
	engine        *penalty.Engine
	maxIterations int

	// Blocked marks impassable cells. May be nil.
	Blocked func(grid.Offset) bool
}

// New creates a finder. engine may be nil, in which case only distance
// counts. A non-positive maxIterations uses DefaultMaxIterations.
func New(g *grid.Grid, engine *penalty.Engine, maxIterations int) *Finder {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Finder{grid: g, engine: engine, maxIterations: maxIterations}
}

// FindPath returns the cells from start to end, both included, or nil if
// no route was found within the iteration limit. The route stays at the
// start's elevation step.
func (f *Finder) FindPath(start, end grid.Location, mover *scene.Token) []grid.Offset3 {
	if f.grid.IsGridless() {
		return nil
	}
	s := start.AsOffset(f.grid)
	e := end.AsOffset(f.grid)
	e.K = s.K

	// Same cell, nothing to search
	if s.Offset() == e.Offset() {
		return []grid.Offset3{s}
	}

	result := f.astar(s, e, f.penaltyFunc(mover), f.heuristicScale())
	if result == nil {
		slog.Debug("no path found", "from", s, "to", e, "max_iterations", f.maxIterations)
		return nil
	}

	path := make([]grid.Offset3, 0, 32)
	for n := result; n != nil; n = n.parent {
		path = append(path, n.cell.At(s.K))
	}

	// Reverse (A* builds path backward)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Waypoints reduces a cell path to its turning points: a cell is dropped
// when the step into it and the step out of it go the same way.
func Waypoints(path []grid.Offset3) []grid.Offset3 {
	if len(path) <= 2 {
		return path
	}
	out := make([]grid.Offset3, 0, len(path))
	out = append(out, path[0])
	for i := 1; i < len(path)-1; i++ {
		in := delta(path[i-1], path[i])
		next := delta(path[i], path[i+1])
		if in == next {
			continue
		}
		out = append(out, path[i])
	}
	return append(out, path[len(path)-1])
}

func delta(a, b grid.Offset3) grid.Offset3 {
	return grid.Offset3{I: b.I - a.I, J: b.J - a.J, K: b.K - a.K}
}

// heuristicScale keeps the heuristic admissible when some multiplier
// makes a step cheaper than its plain distance.
func (f *Finder) heuristicScale() float64 {
	if f.engine == nil {
		return 1
	}
	return math.Min(1, f.engine.MinMultiplier())
}

func (f *Finder) penaltyFunc(mover *scene.Token) penalty.Func {
	if f.engine == nil {
		return nil
	}
	return f.engine.Func(false, mover)
}

// node is a cell in the A* search graph. Parity tracks the diagonal
// count for the alternating rules, whose step price depends on it.
type node struct {
	cell   grid.Offset
	parity int
	parent *node
	gCost  float64 // actual cost from start
	fCost  float64 // gCost + heuristic
	tally  distance.Tally
	index  int // heap index
}

type nodeKey struct {
	cell   grid.Offset
	parity int
}

func (f *Finder) astar(s, e grid.Offset3, pf penalty.Func, scale float64) *node {
	g := f.grid
	start := &node{cell: s.Offset()}
	start.fCost = f.heuristic(start.cell, e.Offset(), scale)

	openList := &nodeHeap{}
	heap.Init(openList)
	heap.Push(openList, start)

	closed := make(map[nodeKey]struct{}, 256)

	for range f.maxIterations {
		if openList.Len() == 0 {
			return nil
		}

		current := heap.Pop(openList).(*node)
		if current.cell == e.Offset() {
			return current
		}

		key := nodeKey{current.cell, current.parity}
		if _, exists := closed[key]; exists {
			continue
		}
		closed[key] = struct{}{}

		from := current.cell.At(s.K)
		fromPt := from.AsPoint(g)
		for _, nb := range g.Neighbors(current.cell) {
			if f.Blocked != nil && f.Blocked(nb) {
				continue
			}
			to := nb.At(s.K)
			kind := distance.Classify(g, from, to)
			cost, tally := distance.StepCost(g, kind, current.tally)
			if pf != nil {
				cost *= pf(fromPt, to.AsPoint(g))
			}

			n := &node{
				cell:   nb,
				parity: tally.Diagonals % 2,
				parent: current,
				gCost:  current.gCost + cost,
				tally:  tally,
			}
			if _, exists := closed[nodeKey{n.cell, n.parity}]; exists {
				continue
			}
			n.fCost = n.gCost + f.heuristic(nb, e.Offset(), scale)
			heap.Push(openList, n)
		}
	}

	return nil // max iterations exceeded
}

// heuristic prices one unit per move with diagonals counted as one move,
// scaled by the cheapest multiplier the scene can produce.
func (f *Finder) heuristic(a, b grid.Offset, scale float64) float64 {
	return float64(f.grid.CellDistance(a, b)) * f.grid.Distance * scale
}

// nodeHeap implements container/heap for the A* open list (min-heap by fCost).
type nodeHeap []*node

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].fCost < h[j].fCost }
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x any)        { n := x.(*node); n.index = len(*h); *h = append(*h, n) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	nd := old[n-1]
	old[n-1] = nil // GC
	nd.index = -1
	*h = old[:n-1]
	return nd
}
