package measure

import (
	"github.com/udisondev/elevationruler/internal/grid"
)

// PathResult is a multi-waypoint measurement. The embedded Result holds
// the totals; Segments holds one entry per measured segment.
type PathResult struct {
	Result
	Segments []Result
}

// MeasurePath measures consecutive waypoint segments. The diagonal tally
// carries across segments so alternating rules keep their phase.
// With opts.DeferElevation, elevation is deferred on every segment but
// the last. opts.StopTarget applies to the whole path.
func (m *Measurer) MeasurePath(waypoints []grid.Location, opts Options) PathResult {
	var out PathResult
	out.Tally = opts.Tally
	out.Remaining = opts.StopTarget
	if len(waypoints) == 0 {
		return out
	}
	out.End = waypoints[0].AsPoint(m.grid)

	var start grid.Location = waypoints[0]
	last := len(waypoints) - 2
	for i, wp := range waypoints[1:] {
		seg := opts
		seg.Tally = out.Tally
		seg.DeferElevation = opts.DeferElevation && i != last
		if opts.StopTarget > 0 {
			seg.StopTarget = opts.StopTarget - out.MoveDistance
			if seg.StopTarget <= stopEpsilon {
				out.Truncated = true
				break
			}
		}

		// start keeps any elevation deferred by the previous segment
		r := m.Measure(start, wp, seg)
		out.Segments = append(out.Segments, r)
		out.Distance += r.Distance
		out.MoveDistance += r.MoveDistance
		out.End = r.End
		out.Tally = r.Tally
		out.RemainingElevationSteps = r.RemainingElevationSteps
		start = r.End

		if r.Truncated {
			out.Truncated = true
			break
		}
	}

	if opts.StopTarget > 0 {
		out.Remaining = opts.StopTarget - out.MoveDistance
	} else {
		out.Remaining = 0
	}
	return out
}

// Band is a named movement budget such as walk or dash.
type Band struct {
	Name     string
	Distance float64
}

// BandResult is the stretch of a path covered by one band.
type BandResult struct {
	Name         string
	Start, End   grid.Point3
	Distance     float64
	MoveDistance float64
	// Complete is set when the path's end was reached within this band.
	Complete bool
}

// SpeedBands splits a path into consecutive stretches, one per band,
// each ending where that band's budget runs out. Bands after the path is
// complete are omitted.
func (m *Measurer) SpeedBands(waypoints []grid.Location, bands []Band, opts Options) []BandResult {
	if len(waypoints) < 2 {
		return nil
	}

	out := make([]BandResult, 0, len(bands))
	rest := waypoints
	tally := opts.Tally
	for _, b := range bands {
		seg := opts
		seg.StopTarget = b.Distance
		seg.Tally = tally

		r := m.MeasurePath(rest, seg)
		out = append(out, BandResult{
			Name:         b.Name,
			Start:        rest[0].AsPoint(m.grid),
			End:          r.End,
			Distance:     r.Distance,
			MoveDistance: r.MoveDistance,
			Complete:     !r.Truncated,
		})
		if !r.Truncated {
			break
		}

		// продолжаем с точки остановки: там же лежит отложенная высота
		k := len(r.Segments)
		if k > 0 && r.Segments[k-1].Truncated {
			rest = append([]grid.Location{r.End}, rest[k:]...)
		} else {
			rest = append([]grid.Location{r.End}, rest[k+1:]...)
		}
		tally = r.Tally
	}
	return out
}
