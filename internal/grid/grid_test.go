package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

var allHex = []Type{HexOddR, HexEvenR, HexOddQ, HexEvenQ}

func TestSquareOffsetConversion(t *testing.T) {
	g := New(Square, 100, 5, Equidistant)

	tests := []struct {
		name string
		p    r2.Vec
		want Offset
	}{
		{"origin", r2.Vec{X: 0, Y: 0}, Offset{0, 0}},
		{"inside first cell", r2.Vec{X: 99, Y: 99}, Offset{0, 0}},
		{"second column", r2.Vec{X: 150, Y: 10}, Offset{0, 1}},
		{"second row", r2.Vec{X: 10, Y: 150}, Offset{1, 0}},
		{"negative", r2.Vec{X: -1, Y: -101}, Offset{-2, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.OffsetFromPoint(tt.p))
		})
	}

	assert.Equal(t, r2.Vec{X: 350, Y: 250}, g.PointFromOffset(Offset{I: 2, J: 3}))
	assert.Equal(t, r2.Vec{X: 300, Y: 200}, g.TopLeftFromOffset(Offset{I: 2, J: 3}))
}

func TestHexRoundTrip(t *testing.T) {
	for _, typ := range allHex {
		t.Run(typ.String(), func(t *testing.T) {
			g := New(typ, 100, 5, Equidistant)
			for i := -3; i <= 3; i++ {
				for j := -3; j <= 3; j++ {
					o := Offset{I: i, J: j}
					c := g.PointFromOffset(o)
					assert.Equal(t, o, g.OffsetFromPoint(c), "center of %v", o)
					assert.Equal(t, o, g.cubeToOffset(g.offsetToCube(o)))
				}
			}
		})
	}
}

func TestHexNeighborsAreOneCellAway(t *testing.T) {
	for _, typ := range allHex {
		t.Run(typ.String(), func(t *testing.T) {
			g := New(typ, 100, 5, Equidistant)
			o := Offset{I: 1, J: 2}
			c := g.PointFromOffset(o)
			nb := g.Neighbors(o)
			require.Len(t, nb, 6)
			for _, n := range nb {
				assert.Equal(t, 1, g.CellDistance(o, n))
				assert.InDelta(t, 100.0, r2.Norm(r2.Sub(g.PointFromOffset(n), c)), 1e-9,
					"neighbor %v of %v", n, o)
			}
		})
	}
}

func TestSquareNeighbors(t *testing.T) {
	assert.Len(t, New(Square, 100, 5, Exact).Neighbors(Offset{}), 8)
	assert.Len(t, New(Square, 100, 5, Illegal).Neighbors(Offset{}), 4)
}

func TestDirectPathSquare(t *testing.T) {
	g := New(Square, 100, 5, Exact)

	path := g.DirectPath(Offset{0, 0}, Offset{3, 3})
	assert.Equal(t, []Offset{{0, 0}, {1, 1}, {2, 2}, {3, 3}}, path)

	path = g.DirectPath(Offset{0, 0}, Offset{0, -2})
	assert.Equal(t, []Offset{{0, 0}, {0, -1}, {0, -2}}, path)

	path = g.DirectPath(Offset{1, 1}, Offset{1, 1})
	assert.Equal(t, []Offset{{1, 1}}, path)
}

func TestDirectPathHexIsContiguous(t *testing.T) {
	for _, typ := range allHex {
		t.Run(typ.String(), func(t *testing.T) {
			g := New(typ, 100, 5, Equidistant)
			a, b := Offset{I: 0, J: 0}, Offset{I: 5, J: -3}
			path := g.DirectPath(a, b)
			require.Len(t, path, g.CellDistance(a, b)+1)
			assert.Equal(t, a, path[0])
			assert.Equal(t, b, path[len(path)-1])
			for i := 1; i < len(path); i++ {
				assert.Equal(t, 1, g.CellDistance(path[i-1], path[i]))
			}
		})
	}
}

func TestCellPolygonArea(t *testing.T) {
	sq := New(Square, 100, 5, Exact)
	assert.InDelta(t, sq.CellArea(), sq.CellPolygon(Offset{}).Area(), 1e-6)

	for _, typ := range allHex {
		g := New(typ, 100, 5, Exact)
		poly := g.CellPolygon(Offset{I: 2, J: 1})
		assert.InDelta(t, g.CellArea(), poly.Area(), 1e-6, typ.String())
		assert.True(t, poly.Contains(g.PointFromOffset(Offset{I: 2, J: 1})))
	}
}

func TestElevationSteps(t *testing.T) {
	g := New(Square, 100, 5, Exact)

	assert.Equal(t, 20.0, g.PixelsPerUnit())
	assert.Equal(t, 2, g.ElevationStep(g.UnitsToPixels(10)))
	assert.Equal(t, -1, g.ElevationStep(-100))
	assert.Equal(t, 300.0, g.ElevationPixels(3))

	p := Point3{X: 150, Y: 250, Z: 200}
	o := p.AsOffset(g)
	assert.Equal(t, Offset3{I: 2, J: 1, K: 2}, o)
	assert.Equal(t, Point3{X: 150, Y: 250, Z: 200}, o.AsPoint(g))
}

func TestLineIteratorSamePoint(t *testing.T) {
	it := NewLineIterator(3, 3, 3, 3)
	count := 0
	for it.Next() {
		count++
	}
	assert.Equal(t, 1, count)
}

func TestLineIteratorShallow(t *testing.T) {
	it := NewLineIterator(0, 0, 4, 1)
	var xs, ys []int
	for it.Next() {
		x, y := it.Cell()
		xs = append(xs, x)
		ys = append(ys, y)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, xs)
	assert.Equal(t, 0, ys[0])
	assert.Equal(t, 1, ys[4])
}
