package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/elevationruler/internal/config"
	"github.com/udisondev/elevationruler/internal/grid"
	"github.com/udisondev/elevationruler/internal/measure"
	"github.com/udisondev/elevationruler/internal/testutil"
)

const straightScene = `{
  "paths": [
    {"name": "east", "waypoints": [[50, 50, 0], [450, 50, 0]]}
  ]
}`

func TestAppMeasureStraight(t *testing.T) {
	path := testutil.WriteFile(t, "scene.json", straightScene)
	a, err := newApp(config.DefaultRuler(), path)
	require.NoError(t, err)
	require.Len(t, a.paths, 1)

	r := a.measure(a.paths[0], false, true)
	assert.Equal(t, "east", r.Name)
	testutil.AssertClose(t, 20, r.Result.Distance, testutil.Tolerance, "distance")
	testutil.AssertClose(t, 20, r.Result.MoveDistance, testutil.Tolerance, "move distance")
	assert.False(t, r.Result.Truncated)
	assert.Equal(t, []grid.Offset3{{I: 0, J: 0}, {I: 0, J: 4}}, r.Route)
	assert.NotEmpty(t, r.Bands)
}

func TestNewAppErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Ruler)
		scene  string
	}{
		{
			name:   "bad grid",
			mutate: func(c *config.Ruler) { c.Grid.Type = "octagon" },
			scene:  straightScene,
		},
		{
			name:   "bad algorithm",
			mutate: func(c *config.Ruler) { c.Penalty.Algorithm = "random" },
			scene:  straightScene,
		},
		{
			name:   "invalid scene",
			mutate: func(*config.Ruler) {},
			scene:  `{"paths": [{"waypoints": [[0, 0, 0]]}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultRuler()
			tt.mutate(&cfg)
			_, err := newApp(cfg, testutil.WriteFile(t, "scene.json", tt.scene))
			assert.Error(t, err)
		})
	}
}

func TestWriteReports(t *testing.T) {
	reports := []report{
		{
			Name: "east",
			Result: measure.PathResult{Result: measure.Result{
				Distance:     20,
				MoveDistance: 25,
				End:          grid.Point3{X: 450, Y: 50},
			}},
			Bands: []measure.BandResult{{Name: "walk", MoveDistance: 25}},
			Route: []grid.Offset3{{I: 0, J: 0}, {I: 0, J: 4}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeReports(&buf, reports))
	out := buf.String()
	assert.Contains(t, out, "PATH")
	assert.Contains(t, out, "east")
	assert.Contains(t, out, "25.00")
	assert.Contains(t, out, "walk=25.00")
	assert.Contains(t, out, "[0,0]>[0,4]")
}

func TestFormatEmpty(t *testing.T) {
	assert.Equal(t, "-", formatBands(nil))
	assert.Equal(t, "-", formatRoute(nil))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "DEBUG"},
		{"warn", "WARN"},
		{"error", "ERROR"},
		{"", "INFO"},
		{"verbose", "INFO"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in).String(), tt.in)
	}
}
