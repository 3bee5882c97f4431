package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/elevationruler/internal/grid"
)

func squareGrid(rule grid.DiagonalRule) *grid.Grid {
	return grid.New(grid.Square, 100, 5, rule)
}

func TestGriddedExactDiagonal(t *testing.T) {
	g := squareGrid(grid.Exact)

	d, tally := Gridded(g, grid.Offset3{}, grid.Offset3{I: 3, J: 3}, Tally{})
	assert.InDelta(t, 15*math.Sqrt2, d, 1e-9)
	assert.Equal(t, 3, tally.Diagonals)
}

func TestGriddedEquidistantHasNoDiagonals(t *testing.T) {
	g := squareGrid(grid.Equidistant)

	ends := []grid.Offset3{
		{I: 3, J: 3}, {I: 0, J: 7}, {I: -2, J: 5}, {I: 4, J: -1}, {I: -6, J: -6},
	}
	for _, b := range ends {
		m := GridMoves(g, grid.Offset3{}, b)
		assert.Zero(t, m.D, "end %v", b)
		d, _ := Gridded(g, grid.Offset3{}, b, Tally{})
		assert.InDelta(t, float64(m.H+m.V)*g.Distance, d, 1e-9, "end %v", b)
	}
}

func TestFoldElevation(t *testing.T) {
	tests := []struct {
		name string
		in   Moves
		rule grid.DiagonalRule
		want Moves
	}{
		{"elevation pairs with horizontal", Moves{H: 2, E: 2}, grid.Exact, Moves{D: 2}},
		{"then with vertical", Moves{H: 1, V: 2, E: 2}, grid.Exact, Moves{V: 1, D: 2}},
		{"leftover becomes horizontal", Moves{H: 1, E: 3}, grid.Exact, Moves{H: 2, D: 1}},
		{"existing diagonals kept", Moves{D: 2, E: 1}, grid.Exact, Moves{H: 1, D: 2}},
		{"illegal never forms diagonals", Moves{H: 2, E: 2}, grid.Illegal, Moves{H: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FoldElevation(tt.in, tt.rule))
		})
	}
}

func TestDiagonalCost(t *testing.T) {
	tests := []struct {
		name string
		rule grid.DiagonalRule
		prev int
		n    int
		want float64
	}{
		{"equidistant", grid.Equidistant, 0, 3, 15},
		{"exact", grid.Exact, 0, 2, 10 * math.Sqrt2},
		{"approximate", grid.Approximate, 0, 2, 15},
		{"rectilinear", grid.Rectilinear, 0, 2, 20},
		{"illegal", grid.Illegal, 0, 1, 10},
		{"alternating odd", grid.AlternatingOdd, 0, 5, 35},
		{"alternating even", grid.AlternatingEven, 0, 5, 40},
		{"alternating odd continues phase", grid.AlternatingOdd, 1, 1, 10},
		{"alternating even continues phase", grid.AlternatingEven, 1, 1, 5},
		{"zero diagonals", grid.Exact, 4, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DiagonalCost(tt.rule, tt.prev, tt.n, 5), 1e-9)
		})
	}
}

func TestTallyThreadsAcrossSegments(t *testing.T) {
	g := squareGrid(grid.AlternatingOdd)

	// Two one-diagonal segments cost the same as one two-diagonal segment.
	d1, tally := Gridded(g, grid.Offset3{}, grid.Offset3{I: 1, J: 1}, Tally{})
	d2, tally := Gridded(g, grid.Offset3{I: 1, J: 1}, grid.Offset3{I: 2, J: 2}, tally)
	whole, _ := Gridded(g, grid.Offset3{}, grid.Offset3{I: 2, J: 2}, Tally{})

	assert.Equal(t, 5.0, d1)
	assert.Equal(t, 10.0, d2)
	assert.Equal(t, whole, d1+d2)
	assert.Equal(t, 2, tally.Diagonals)
}

func TestUnder3dLineCombinedDiagonals(t *testing.T) {
	g := squareGrid(grid.Exact)

	cells := Under3dLine(g, grid.Offset3{}, grid.Offset3{J: 2, K: 2})
	assert.Equal(t, []grid.Offset3{{}, {J: 1, K: 1}, {J: 2, K: 2}}, cells)
	assert.Equal(t, Moves{D: 2}, SumMoves(g, grid.Offset3{}, grid.Offset3{J: 2, K: 2}))
}

func TestUnder3dLineIllegalSplitsDiagonals(t *testing.T) {
	g := squareGrid(grid.Illegal)

	cells := Under3dLine(g, grid.Offset3{}, grid.Offset3{J: 2, K: 2})
	assert.Equal(t, []grid.Offset3{
		{}, {J: 1}, {J: 1, K: 1}, {J: 2, K: 1}, {J: 2, K: 2},
	}, cells)

	d, _ := Gridded(g, grid.Offset3{}, grid.Offset3{J: 2, K: 2}, Tally{})
	assert.Equal(t, 20.0, d)
}

func TestUnder3dLineMoreElevationThanCanvas(t *testing.T) {
	g := squareGrid(grid.Exact)
	a, b := grid.Offset3{}, grid.Offset3{J: 1, K: 3}

	cells := Under3dLine(g, a, b)
	require.Len(t, cells, 4)
	assert.Equal(t, a, cells[0])
	assert.Equal(t, b, cells[3])

	m := SumMoves(g, a, b)
	assert.Equal(t, Moves{D: 1, E: 2}, m)
	assert.Equal(t, Moves{H: 2, D: 1}, FoldElevation(m, g.Diagonals))

	d, _ := Gridded(g, a, b, Tally{})
	assert.InDelta(t, 10+5*math.Sqrt2, d, 1e-9)
}

func TestUnder3dLineDescending(t *testing.T) {
	g := squareGrid(grid.Exact)

	cells := Under3dLine(g, grid.Offset3{K: 2}, grid.Offset3{K: -1})
	assert.Equal(t, []grid.Offset3{{K: 2}, {K: 1}, {K: 0}, {K: -1}}, cells)

	d, _ := Gridded(g, grid.Offset3{K: 2}, grid.Offset3{K: -1}, Tally{})
	assert.Equal(t, 15.0, d)
}

func TestUnder3dLineHexRow(t *testing.T) {
	g := grid.New(grid.HexOddR, 100, 5, grid.Exact)
	a, b := grid.Offset3{}, grid.Offset3{J: 4, K: 2}

	cells := Under3dLine(g, a, b)
	require.NotEmpty(t, cells)
	assert.Equal(t, a, cells[0])
	assert.Equal(t, b, cells[len(cells)-1])

	m := SumMoves(g, a, b)
	assert.Equal(t, 4, m.H+m.D, "every canvas step is taken once")
	assert.Equal(t, 2, m.D, "elevation rides along two canvas steps")
	assert.Zero(t, m.E)
}

func TestClassify(t *testing.T) {
	sq := squareGrid(grid.Exact)
	hexRow := grid.New(grid.HexOddR, 100, 5, grid.Exact)
	hexCol := grid.New(grid.HexOddQ, 100, 5, grid.Exact)

	tests := []struct {
		name       string
		g          *grid.Grid
		prev, curr grid.Offset3
		want       StepKind
	}{
		{"same cell", sq, grid.Offset3{}, grid.Offset3{}, None},
		{"column", sq, grid.Offset3{}, grid.Offset3{J: 1}, Horizontal},
		{"row", sq, grid.Offset3{}, grid.Offset3{I: 1}, Vertical},
		{"diagonal", sq, grid.Offset3{}, grid.Offset3{I: 1, J: 1}, Diagonal},
		{"elevation", sq, grid.Offset3{}, grid.Offset3{K: 1}, Elevation},
		{"canvas plus elevation", sq, grid.Offset3{}, grid.Offset3{J: 1, K: -1}, Diagonal},
		{"hex row lateral", hexRow, grid.Offset3{}, grid.Offset3{J: 1}, Horizontal},
		{"hex row change", hexRow, grid.Offset3{}, grid.Offset3{I: 1}, Vertical},
		{"hex col change", hexCol, grid.Offset3{}, grid.Offset3{J: 1}, Horizontal},
		{"hex col lateral", hexCol, grid.Offset3{}, grid.Offset3{I: 1}, Vertical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.g, tt.prev, tt.curr))
		})
	}
}

func TestGridless(t *testing.T) {
	g := grid.New(grid.Gridless, 100, 5, grid.Exact)

	d := Gridless(g, grid.Point3{}, grid.Point3{X: 300, Y: 400})
	assert.InDelta(t, 25.0, d, 1e-9)

	d = Gridless(g, grid.Point3{}, grid.Point3{X: 200, Y: 0, Z: 200})
	assert.InDelta(t, 10*math.Sqrt2, d, 1e-9)
}

func TestMeasureAcceptsEitherRepresentation(t *testing.T) {
	g := squareGrid(grid.Exact)

	byOffset := Measure(g, grid.Offset3{}, grid.Offset3{I: 3, J: 3}, false)
	byPoint := Measure(g, grid.Point3{X: 50, Y: 50}, grid.Point3{X: 350, Y: 350}, false)
	mixed := Measure(g, grid.Point3{X: 10, Y: 90}, grid.Offset3{I: 3, J: 3}, false)

	assert.InDelta(t, 15*math.Sqrt2, byOffset, 1e-9)
	assert.Equal(t, byOffset, byPoint)
	assert.Equal(t, byOffset, mixed)

	assert.Zero(t, Measure(g, grid.Offset3{I: 1, J: 1}, grid.Offset3{I: 1, J: 1}, false))
	assert.Zero(t, Measure(g, grid.Point3{X: 5, Y: 5}, grid.Point3{X: 5, Y: 5}, true))
}

func TestStepCost(t *testing.T) {
	g := squareGrid(grid.AlternatingOdd)

	d, tally := StepCost(g, Diagonal, Tally{})
	assert.Equal(t, 5.0, d)
	d, tally = StepCost(g, Diagonal, tally)
	assert.Equal(t, 10.0, d)
	d, _ = StepCost(g, Elevation, tally)
	assert.Equal(t, 5.0, d)
	d, _ = StepCost(g, None, tally)
	assert.Zero(t, d)
}
