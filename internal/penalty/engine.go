// Package penalty computes the movement-cost multiplier of a segment from
// the tokens, drawings and terrain it crosses.
//
// Every obstacle kind follows one code path: discover sources near the
// segment, then reduce them to a multiplier with the strategy of the
// current mode. Gridless segments use the fractional cutaway intersection.
// Gridded steps use the configured Algorithm, looked up in a table.
package penalty

import (
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/udisondev/elevationruler/internal/geom"
	"github.com/udisondev/elevationruler/internal/grid"
	"github.com/udisondev/elevationruler/internal/scene"
)

// Mode selects gridless or gridded penalty reduction.
type Mode uint8

const (
	Gridless Mode = iota
	Gridded
)

// Algorithm decides when an obstacle counts for a gridded step.
type Algorithm uint8

const (
	// Center counts an obstacle covering the destination cell's center.
	Center Algorithm = iota
	// Percent counts an obstacle covering more than PercentThreshold of
	// the destination cell's area.
	Percent
	// Euclidean applies the fractional intersection along the
	// center-to-center line of the step.
	Euclidean
)

func (a Algorithm) String() string {
	switch a {
	case Center:
		return "center"
	case Percent:
		return "percent"
	case Euclidean:
		return "euclidean"
	default:
		return "unknown"
	}
}

// TokenFilter selects which tokens slow the mover down.
type TokenFilter uint8

const (
	AllTokens TokenFilter = iota
	HostileTokens
	NoTokens
)

func (f TokenFilter) String() string {
	switch f {
	case AllTokens:
		return "all"
	case HostileTokens:
		return "hostile"
	case NoTokens:
		return "none"
	default:
		return "unknown"
	}
}

// Options configure an Engine.
type Options struct {
	Algorithm        Algorithm
	PercentThreshold float64 // fraction of cell area, Percent only
	TokenMultiplier  float64
	TokenFilter      TokenFilter
}

// DefaultOptions returns center-point qualification with tokens doubling
// movement cost.
func DefaultOptions() Options {
	return Options{
		Algorithm:        Center,
		PercentThreshold: 0.5,
		TokenMultiplier:  2,
		TokenFilter:      AllTokens,
	}
}

// Func returns the multiplier for moving from a to b.
type Func func(a, b grid.Point3) float64

// Compose multiplies the results of fns. Nil entries are skipped.
func Compose(fns ...Func) Func {
	return func(a, b grid.Point3) float64 {
		m := 1.0
		for _, fn := range fns {
			if fn != nil {
				m *= fn(a, b)
			}
		}
		return m
	}
}

// Engine builds penalty functions over a scene. It only reads the scene
// and keeps no state between calls.
type Engine struct {
	grid    *grid.Grid
	scene   *scene.Scene
	terrain Terrain
	opts    Options
}

// NewEngine creates an engine. sc and terrain may be nil.
func NewEngine(g *grid.Grid, sc *scene.Scene, terrain Terrain, opts Options) *Engine {
	return &Engine{grid: g, scene: sc, terrain: terrain, opts: opts}
}

// Options returns the engine's options.
func (e *Engine) Options() Options { return e.opts }

// Mode returns the reduction mode used for a measurement.
func (e *Engine) Mode(gridless bool) Mode {
	if gridless || e.grid.IsGridless() {
		return Gridless
	}
	return Gridded
}

// MinMultiplier is a lower bound on any value a Func from this engine
// returns: the product of every source multiplier below 1 in the scene.
// It is 1 when nothing speeds movement up.
func (e *Engine) MinMultiplier() float64 {
	everywhere := r2.Box{
		Min: r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)},
		Max: r2.Vec{X: math.Inf(1), Y: math.Inf(1)},
	}

	m := 1.0
	if e.scene != nil {
		if e.opts.TokenFilter != NoTokens && e.opts.TokenMultiplier < 1 {
			for range e.scene.Tokens(everywhere, nil) {
				m *= e.opts.TokenMultiplier
			}
		}
		for _, d := range e.scene.Drawings(everywhere, (*scene.Drawing).HasPenalty) {
			m *= math.Min(1, d.Multiplier)
		}
	}
	if e.terrain != nil {
		for _, s := range e.terrain.Sources(everywhere) {
			m *= math.Min(1, s.Multiplier)
		}
	}
	return m
}

type discoverFunc func(area r2.Box, a, b grid.Point3) []Source

// Func returns the combined token, drawing and terrain penalty for mover.
// mover may be nil.
func (e *Engine) Func(gridless bool, mover *scene.Token) Func {
	mode := e.Mode(gridless)
	reduce := e.reducer(mode)

	sub := func(kind Kind, discover discoverFunc) Func {
		return func(a, b grid.Point3) float64 {
			if a == b {
				return 1
			}
			srcs := discover(e.area(mode, a, b), a, b)
			if mode == Gridless {
				a2, b2 := a.XY(), b.XY()
				srcs = slices.DeleteFunc(srcs, func(s Source) bool {
					return !geom.Touches(s.Shape, a2, b2)
				})
			}
			if len(srcs) == 0 {
				return 1
			}
			m := reduce(e, a, b, srcs)
			slog.Debug("move penalty", "kind", kind, "sources", len(srcs), "multiplier", m)
			return m
		}
	}

	return Compose(
		sub(KindToken, e.tokenSources(mover)),
		sub(KindDrawing, e.drawingSources),
		sub(KindTerrain, e.terrainSources),
	)
}

// area is the canvas box searched for sources. Gridded steps also look
// at the whole destination cell.
func (e *Engine) area(mode Mode, a, b grid.Point3) r2.Box {
	pad := 1.0
	if mode == Gridded {
		pad = e.grid.Size
	}
	return geom.PadBox(geom.SegmentBox(a.XY(), b.XY()), pad)
}

func (e *Engine) tokenSources(mover *scene.Token) discoverFunc {
	return func(area r2.Box, a, b grid.Point3) []Source {
		if e.scene == nil || e.opts.TokenFilter == NoTokens {
			return nil
		}
		// без движущегося токена считаем, что двигается союзник
		side := scene.Friendly
		if mover != nil {
			side = mover.Disposition
		}
		tokens := e.scene.Tokens(area, func(t *scene.Token) bool {
			if mover != nil && t.ID == mover.ID {
				return false
			}
			if e.opts.TokenFilter == HostileTokens && !t.Disposition.HostileTo(side) {
				return false
			}
			return true
		})
		out := make([]Source, 0, len(tokens))
		for _, t := range tokens {
			out = append(out, FromToken(t, e.scene.Border(t), e.opts.TokenMultiplier))
		}
		return out
	}
}

func (e *Engine) drawingSources(area r2.Box, a, b grid.Point3) []Source {
	if e.scene == nil {
		return nil
	}
	lo, hi := math.Min(a.Z, b.Z), math.Max(a.Z, b.Z)
	drawings := e.scene.Drawings(area, func(d *scene.Drawing) bool {
		return d.HasPenalty() && d.Elevation >= lo && d.Elevation <= hi
	})
	out := make([]Source, 0, len(drawings))
	for _, d := range drawings {
		out = append(out, FromDrawing(d))
	}
	return out
}

func (e *Engine) terrainSources(area r2.Box, a, b grid.Point3) []Source {
	if e.terrain == nil {
		return nil
	}
	return e.terrain.Sources(area)
}
