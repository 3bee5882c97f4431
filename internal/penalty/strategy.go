package penalty

import (
	"log/slog"

	"github.com/udisondev/elevationruler/internal/geom"
	"github.com/udisondev/elevationruler/internal/grid"
)

// reducer turns the sources found near a→b into one multiplier.
type reducer func(e *Engine, a, b grid.Point3, srcs []Source) float64

var griddedReducers = map[Algorithm]reducer{
	Center:    centerReducer,
	Percent:   percentReducer,
	Euclidean: euclideanReducer,
}

func (e *Engine) reducer(mode Mode) reducer {
	if mode == Gridless {
		return gridlessReducer
	}
	if r, ok := griddedReducers[e.opts.Algorithm]; ok {
		return r
	}
	slog.Warn("unknown penalty algorithm, using center", "algorithm", e.opts.Algorithm)
	return centerReducer
}

func gridlessReducer(_ *Engine, a, b grid.Point3, srcs []Source) float64 {
	return Intersect(a, b, srcs)
}

func centerReducer(e *Engine, _, b grid.Point3, srcs []Source) float64 {
	return e.cellProduct(b, srcs, func(s Source, cell grid.Offset) bool {
		return s.Shape.Contains(e.grid.PointFromOffset(cell))
	})
}

func percentReducer(e *Engine, _, b grid.Point3, srcs []Source) float64 {
	area := e.grid.CellArea()
	if area <= 0 {
		return 1
	}
	return e.cellProduct(b, srcs, func(s Source, cell grid.Offset) bool {
		return geom.OverlapArea(s.Shape, e.grid.CellPolygon(cell))/area > e.opts.PercentThreshold
	})
}

// euclideanReducer measures the fraction of the line from the center of
// the previous cell to the center of the current one. The fraction
// inside a shape does not depend on direction, so prev→curr and
// curr→prev agree.
func euclideanReducer(e *Engine, a, b grid.Point3, srcs []Source) float64 {
	return Intersect(e.cellCenter(a), e.cellCenter(b), srcs)
}

// cellProduct multiplies the multipliers of the sources that occupy the
// cell containing b at b's elevation.
func (e *Engine) cellProduct(b grid.Point3, srcs []Source, occupies func(Source, grid.Offset) bool) float64 {
	cell := b.AsOffset(e.grid).Offset()
	m := 1.0
	for _, s := range srcs {
		if s.InBand(b.Z) && occupies(s, cell) {
			m *= s.Multiplier
		}
	}
	return m
}

func (e *Engine) cellCenter(p grid.Point3) grid.Point3 {
	c := e.grid.PointFromOffset(p.AsOffset(e.grid).Offset())
	return grid.Point3{X: c.X, Y: c.Y, Z: p.Z}
}
