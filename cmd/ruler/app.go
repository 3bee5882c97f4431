package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/udisondev/elevationruler/internal/config"
	"github.com/udisondev/elevationruler/internal/grid"
	"github.com/udisondev/elevationruler/internal/measure"
	"github.com/udisondev/elevationruler/internal/pathfind"
	"github.com/udisondev/elevationruler/internal/penalty"
	"github.com/udisondev/elevationruler/internal/scene"
)

// app holds everything built from config and the scene document.
// Measurement only reads it, so paths can be measured concurrently.
type app struct {
	cfg      config.Ruler
	grid     *grid.Grid
	scene    *scene.Scene
	paths    []scene.Path
	measurer *measure.Measurer
	finder   *pathfind.Finder
}

func newApp(cfg config.Ruler, scenePath string) (*app, error) {
	g, err := cfg.Grid.Build()
	if err != nil {
		return nil, fmt.Errorf("building grid: %w", err)
	}
	opts, err := cfg.Penalty.Options()
	if err != nil {
		return nil, fmt.Errorf("penalty options: %w", err)
	}

	doc, err := scene.LoadDocument(scenePath)
	if err != nil {
		return nil, fmt.Errorf("loading scene: %w", err)
	}
	sc, paths, err := doc.Build(g, cfg.BucketSize)
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}

	var terrain penalty.Terrain
	if cfg.Penalty.Terrain {
		terrain = penalty.RegionTerrain{Layer: sc.Terrain()}
	}
	engine := penalty.NewEngine(g, sc, terrain, opts)

	return &app{
		cfg:      cfg,
		grid:     g,
		scene:    sc,
		paths:    paths,
		measurer: measure.New(g, engine),
		finder:   pathfind.New(g, engine, cfg.Pathfinding.MaxIterations),
	}, nil
}

// report is the measurement of one scene path.
type report struct {
	Name      string
	Result    measure.PathResult
	Elevation float64 // end elevation, scene units
	Bands     []measure.BandResult
	Route     []grid.Offset3
}

func (a *app) measure(p scene.Path, gridless, route bool) report {
	wps := make([]grid.Location, len(p.Waypoints))
	for i, w := range p.Waypoints {
		wps[i] = w
	}
	opts := measure.Options{
		Token:          p.Token,
		Gridless:       gridless || p.Gridless,
		DeferElevation: !a.cfg.Measure.UseAllElevation,
		StopTarget:     p.StopTarget,
	}

	r := report{
		Name:   p.Name,
		Result: a.measurer.MeasurePath(wps, opts),
	}
	r.Elevation = a.grid.PixelsToUnits(r.Result.End.Z)

	if bands := a.cfg.Measure.Bands(); len(bands) > 0 {
		bandOpts := opts
		bandOpts.StopTarget = 0
		r.Bands = a.measurer.SpeedBands(wps, bands, bandOpts)
	}

	if route && len(wps) >= 2 {
		r.Route = pathfind.Waypoints(a.finder.FindPath(wps[0], wps[len(wps)-1], p.Token))
	}
	return r
}

func writeReports(w io.Writer, reports []report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tDISTANCE\tMOVE\tEND\tTRUNCATED\tBANDS\tROUTE")
	for _, r := range reports {
		end := r.Result.End
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t(%.0f, %.0f, %.0f)\t%t\t%s\t%s\n",
			r.Name,
			r.Result.Distance,
			r.Result.MoveDistance,
			end.X, end.Y, r.Elevation,
			r.Result.Truncated,
			formatBands(r.Bands),
			formatRoute(r.Route),
		)
	}
	return tw.Flush()
}

func formatBands(bands []measure.BandResult) string {
	if len(bands) == 0 {
		return "-"
	}
	s := ""
	for i, b := range bands {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s=%.2f", b.Name, b.MoveDistance)
	}
	return s
}

func formatRoute(route []grid.Offset3) string {
	if len(route) == 0 {
		return "-"
	}
	s := ""
	for i, c := range route {
		if i > 0 {
			s += ">"
		}
		s += fmt.Sprintf("[%d,%d]", c.I, c.J)
	}
	return s
}
