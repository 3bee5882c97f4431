package penalty

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/elevationruler/internal/geom"
	"github.com/udisondev/elevationruler/internal/grid"
	"github.com/udisondev/elevationruler/internal/scene"
	"github.com/udisondev/elevationruler/internal/testutil"
)

const tol = 1e-9

func rectSource(x, y, w, h, m float64) Source {
	return Source{
		Kind:       KindDrawing,
		Shape:      geom.NewRectangle(x, y, w, h),
		Multiplier: m,
		BottomZ:    math.Inf(-1),
		TopZ:       math.Inf(1),
	}
}

func TestIntersect(t *testing.T) {
	a := grid.Point3{X: 0, Y: 50}
	b := grid.Point3{X: 300, Y: 50}

	tests := []struct {
		name string
		a, b grid.Point3
		srcs []Source
		want float64
	}{
		{
			name: "two overlapping halves compound",
			a:    a, b: b,
			srcs: []Source{rectSource(-10, 0, 320, 100, 0.5), rectSource(-10, 0, 320, 100, 0.5)},
			want: 0.25,
		},
		{
			name: "middle third doubled",
			a:    a, b: b,
			srcs: []Source{rectSource(100, 0, 100, 100, 2)},
			want: 4.0 / 3.0,
		},
		{
			name: "boundary exactly at both endpoints",
			a:    grid.Point3{X: 100, Y: 50}, b: grid.Point3{X: 200, Y: 50},
			srcs: []Source{rectSource(100, 0, 100, 100, 2)},
			want: 2,
		},
		{
			name: "disjoint obstacles",
			a:    a, b: b,
			srcs: []Source{rectSource(0, 0, 100, 100, 2), rectSource(200, 0, 100, 100, 3)},
			want: (100.0 + 200 + 300) / 300,
		},
		{
			name: "partial overlap of two",
			a:    a, b: b,
			srcs: []Source{rectSource(0, 0, 200, 100, 2), rectSource(100, 0, 200, 100, 2)},
			want: (100*2 + 100*4 + 100*2) / 300.0,
		},
		{
			name: "no source on the path",
			a:    a, b: b,
			srcs: []Source{rectSource(0, 200, 100, 100, 5)},
			want: 1,
		},
		{
			name: "zero length",
			a:    a, b: a,
			srcs: []Source{rectSource(-10, 0, 320, 100, 3)},
			want: 1,
		},
		{
			name: "ellipse across the middle",
			a:    a, b: b,
			srcs: []Source{{Shape: geom.NewCircle(150, 50, 50), Multiplier: 2, BottomZ: math.Inf(-1), TopZ: math.Inf(1)}},
			want: 4.0 / 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Intersect(tt.a, tt.b, tt.srcs), tol)
		})
	}
}

func TestIntersectElevationBand(t *testing.T) {
	src := rectSource(-10, 0, 320, 100, 2)
	src.BottomZ, src.TopZ = 0, 100

	// Climbs from 0 to 300 px, so only the first third is in the band.
	a := grid.Point3{X: 0, Y: 50, Z: 0}
	b := grid.Point3{X: 300, Y: 50, Z: 300}
	assert.InDelta(t, 4.0/3.0, Intersect(a, b, []Source{src}), tol)

	// Entirely above the band.
	a.Z, b.Z = 150, 150
	assert.Equal(t, 1.0, Intersect(a, b, []Source{src}))
}

func TestIntersectVerticalMove(t *testing.T) {
	src := rectSource(0, 0, 100, 100, 3)
	src.BottomZ, src.TopZ = 0, 100

	a := grid.Point3{X: 50, Y: 50, Z: 0}
	b := grid.Point3{X: 50, Y: 50, Z: 200}
	assert.InDelta(t, (100*3+100)/200.0, Intersect(a, b, []Source{src}), tol)
}

func TestCrossingsAlternate(t *testing.T) {
	// U-shaped polygon: the line at y=25 enters and leaves twice.
	u := geom.NewPolygon(0, 0, 300, 0, 300, 100, 200, 100, 200, 50, 100, 50, 100, 100, 0, 100)
	srcs := []Source{{Shape: u, Multiplier: 2, BottomZ: math.Inf(-1), TopZ: math.Inf(1)}}

	crossings := Crossings(grid.Point3{X: -50, Y: 75}, grid.Point3{X: 350, Y: 75}, srcs)
	require.Len(t, crossings, 4)
	for i, c := range crossings {
		assert.Equal(t, i%2 == 0, c.Into, "crossing %d", i)
	}
	assert.InDelta(t, 50.0/400, crossings[0].T, tol)
	assert.InDelta(t, 150.0/400, crossings[1].T, tol)

	// Starting inside opens with an entry at t=0.
	crossings = Crossings(grid.Point3{X: 50, Y: 75}, grid.Point3{X: 350, Y: 75}, srcs)
	require.NotEmpty(t, crossings)
	assert.True(t, crossings[0].Into)
	assert.Equal(t, 0.0, crossings[0].T)
}

func TestCompose(t *testing.T) {
	half := func(grid.Point3, grid.Point3) float64 { return 0.5 }
	triple := func(grid.Point3, grid.Point3) float64 { return 3 }

	fn := Compose(half, nil, triple)
	assert.Equal(t, 1.5, fn(grid.Point3{}, grid.Point3{X: 1}))
	assert.Equal(t, 1.0, Compose()(grid.Point3{}, grid.Point3{X: 1}))
}

func TestEngineGridlessDrawings(t *testing.T) {
	g := testutil.GridlessGrid()
	sc := testutil.Scene(nil,
		testutil.Drawing(geom.NewRectangle(-10, 0, 320, 100), 0.5),
		testutil.Drawing(geom.NewRectangle(-10, 0, 320, 100), 0.5),
		testutil.Drawing(geom.NewRectangle(-10, 0, 320, 100), 1), // no effect
	)
	e := NewEngine(g, sc, nil, DefaultOptions())

	fn := e.Func(true, nil)
	assert.InDelta(t, 0.25, fn(grid.Point3{X: 0, Y: 50}, grid.Point3{X: 300, Y: 50}), tol)
}

func TestEngineDrawingElevation(t *testing.T) {
	raised := testutil.Drawing(geom.NewRectangle(-10, 0, 320, 100), 3)
	raised.Elevation = 200
	e := NewEngine(testutil.GridlessGrid(), testutil.Scene(nil, raised), nil, DefaultOptions())
	fn := e.Func(true, nil)

	ground := fn(grid.Point3{X: 0, Y: 50}, grid.Point3{X: 300, Y: 50})
	assert.Equal(t, 1.0, ground, "segment below the drawing")

	climbing := fn(grid.Point3{X: 0, Y: 50}, grid.Point3{X: 300, Y: 50, Z: 400})
	assert.InDelta(t, 3.0, climbing, tol, "elevation range includes the drawing")
}

func TestEngineTokenFilter(t *testing.T) {
	mover := testutil.Mover(0, 0)
	goblin := testutil.Goblin(0, 2)
	ally := testutil.CellToken(uuid.New(), 0, 1, scene.Friendly)
	sc := testutil.Scene([]*scene.Token{mover, goblin, ally})

	a := testutil.CellCenter(0, 0, 0)
	b := testutil.CellCenter(0, 3, 0)

	tests := []struct {
		filter TokenFilter
		want   float64
	}{
		{AllTokens, 5.0 / 3.0},
		{HostileTokens, 4.0 / 3.0},
		{NoTokens, 1},
	}

	for _, tt := range tests {
		t.Run(tt.filter.String(), func(t *testing.T) {
			opts := DefaultOptions()
			opts.TokenFilter = tt.filter
			e := NewEngine(testutil.GridlessGrid(), sc, nil, opts)
			assert.InDelta(t, tt.want, e.Func(true, mover)(a, b), tol)
		})
	}
}

func TestEngineTokenAboveSegment(t *testing.T) {
	flier := testutil.Goblin(0, 1)
	flier.Elevation = 500
	sc := testutil.Scene([]*scene.Token{flier})
	e := NewEngine(testutil.GridlessGrid(), sc, nil, DefaultOptions())

	m := e.Func(true, nil)(testutil.CellCenter(0, 0, 0), testutil.CellCenter(0, 3, 0))
	assert.Equal(t, 1.0, m)
}

func TestEngineGriddedAlgorithms(t *testing.T) {
	g := testutil.SquareGrid(grid.Exact)

	tests := []struct {
		name      string
		algorithm Algorithm
		shape     geom.Shape
		a, b      grid.Point3
		want      float64
	}{
		{
			name:      "center covers destination",
			algorithm: Center,
			shape:     testutil.CellRect(3, 3, 3, 3),
			a:         testutil.CellCenter(2, 2, 0),
			b:         testutil.CellCenter(3, 3, 0),
			want:      3,
		},
		{
			name:      "center misses earlier step",
			algorithm: Center,
			shape:     testutil.CellRect(3, 3, 3, 3),
			a:         testutil.CellCenter(1, 1, 0),
			b:         testutil.CellCenter(2, 2, 0),
			want:      1,
		},
		{
			name:      "percent above threshold",
			algorithm: Percent,
			shape:     geom.NewRectangle(300, 300, 60, 100),
			a:         testutil.CellCenter(2, 2, 0),
			b:         testutil.CellCenter(3, 3, 0),
			want:      3,
		},
		{
			name:      "percent below threshold",
			algorithm: Percent,
			shape:     geom.NewRectangle(300, 300, 40, 100),
			a:         testutil.CellCenter(2, 2, 0),
			b:         testutil.CellCenter(3, 3, 0),
			want:      1,
		},
		{
			name:      "euclidean uses cell centers",
			algorithm: Euclidean,
			shape:     testutil.CellRect(0, 1, 0, 1),
			a:         grid.Point3{X: 20, Y: 70},
			b:         grid.Point3{X: 180, Y: 30},
			want:      2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Algorithm = tt.algorithm
			sc := testutil.Scene(nil, testutil.Drawing(tt.shape, 3))
			e := NewEngine(g, sc, nil, opts)
			assert.InDelta(t, tt.want, e.Func(false, nil)(tt.a, tt.b), tol)
		})
	}
}

func TestEngineTerrain(t *testing.T) {
	layer := scene.NewTerrainLayer(0)
	layer.Add(&scene.TerrainRegion{
		ID:         uuid.New(),
		Name:       "swamp",
		Shape:      geom.NewRectangle(-100, -100, 1000, 1000),
		Multiplier: 2,
		BottomZ:    0,
		TopZ:       100,
	})
	e := NewEngine(testutil.GridlessGrid(), nil, RegionTerrain{Layer: layer}, DefaultOptions())
	fn := e.Func(true, nil)

	assert.InDelta(t, 2.0, fn(grid.Point3{X: 0, Y: 0}, grid.Point3{X: 300, Y: 0}), tol)
	assert.Equal(t, 1.0, fn(grid.Point3{X: 0, Y: 0, Z: 150}, grid.Point3{X: 300, Y: 0, Z: 150}))
}

func TestEngineWithoutCollaborators(t *testing.T) {
	e := NewEngine(testutil.SquareGrid(grid.Exact), nil, nil, DefaultOptions())
	for _, gridless := range []bool{true, false} {
		assert.Equal(t, 1.0, e.Func(gridless, nil)(testutil.CellCenter(0, 0, 0), testutil.CellCenter(3, 3, 1)))
	}
}

func TestEngineMode(t *testing.T) {
	assert.Equal(t, Gridless, NewEngine(testutil.GridlessGrid(), nil, nil, DefaultOptions()).Mode(false))
	assert.Equal(t, Gridded, NewEngine(testutil.SquareGrid(grid.Exact), nil, nil, DefaultOptions()).Mode(false))
	assert.Equal(t, Gridless, NewEngine(testutil.SquareGrid(grid.Exact), nil, nil, DefaultOptions()).Mode(true))
}

func TestEngineMinMultiplier(t *testing.T) {
	g := testutil.SquareGrid(grid.Exact)
	sc := testutil.Scene(
		[]*scene.Token{testutil.Mover(5, 5), testutil.Goblin(9, 9)},
		testutil.Drawing(testutil.CellRect(0, 0, 1, 1), 0.5),
		testutil.Drawing(testutil.CellRect(50, 50, 51, 51), 3),
		testutil.Drawing(testutil.CellRect(2, 2, 2, 2), 1),
	)
	layer := scene.NewTerrainLayer(0)
	layer.Add(&scene.TerrainRegion{
		Shape:      geom.NewRectangle(-5000, -5000, 100, 100),
		Multiplier: 0.8,
		BottomZ:    math.Inf(-1),
		TopZ:       math.Inf(1),
	})

	opts := DefaultOptions()
	opts.TokenMultiplier = 0.5

	tests := []struct {
		name    string
		filter  TokenFilter
		terrain Terrain
		want    float64
	}{
		{"everything", AllTokens, RegionTerrain{Layer: layer}, 0.5 * 0.5 * 0.5 * 0.8},
		{"no tokens", NoTokens, RegionTerrain{Layer: layer}, 0.5 * 0.8},
		{"no terrain", AllTokens, nil, 0.5 * 0.5 * 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := opts
			o.TokenFilter = tt.filter
			e := NewEngine(g, sc, tt.terrain, o)
			assert.InDelta(t, tt.want, e.MinMultiplier(), tol)
		})
	}

	assert.Equal(t, 1.0, NewEngine(g, nil, nil, DefaultOptions()).MinMultiplier())
	assert.InDelta(t, 0.5, NewEngine(g, sc, nil, DefaultOptions()).MinMultiplier(), tol,
		"tokens slowing movement never lower the bound")
}
