package testutil

import (
	"github.com/google/uuid"

	"github.com/udisondev/elevationruler/internal/geom"
	"github.com/udisondev/elevationruler/internal/grid"
	"github.com/udisondev/elevationruler/internal/scene"
)

// Fixtures содержит общие параметры сетки для тестов.
var Fixtures = struct {
	// Размер клетки в пикселях и её размер в единицах сцены
	CellSize     float64
	CellDistance float64

	// Фиксированные id, чтобы тесты могли искать объекты в сцене
	MoverID   uuid.UUID
	GoblinID  uuid.UUID
	DrawingID uuid.UUID
}{
	CellSize:     100,
	CellDistance: 5,
	MoverID:      uuid.MustParse("0b7f2c1e-3c4d-4e5f-8a9b-0c1d2e3f4a5b"),
	GoblinID:     uuid.MustParse("1c8a3d2f-4d5e-4f60-9bac-1d2e3f4a5b6c"),
	DrawingID:    uuid.MustParse("2d9b4e30-5e6f-4071-acbd-2e3f4a5b6c7d"),
}

// SquareGrid returns a 100px / 5-unit square grid with the given rule.
func SquareGrid(rule grid.DiagonalRule) *grid.Grid {
	return grid.New(grid.Square, Fixtures.CellSize, Fixtures.CellDistance, rule)
}

// HexGrid returns a 100px / 5-unit hex grid of type t.
func HexGrid(t grid.Type) *grid.Grid {
	return grid.New(t, Fixtures.CellSize, Fixtures.CellDistance, grid.Equidistant)
}

// GridlessGrid returns a gridless scene scale with 100px per 5 units.
func GridlessGrid() *grid.Grid {
	return grid.New(grid.Gridless, Fixtures.CellSize, Fixtures.CellDistance, grid.Equidistant)
}

// CellCenter returns the pixel center of square cell (i, j) at elevation
// step k on a Fixtures-sized grid.
func CellCenter(i, j, k int) grid.Point3 {
	s := Fixtures.CellSize
	return grid.Point3{X: (float64(j) + 0.5) * s, Y: (float64(i) + 0.5) * s, Z: float64(k) * s}
}

// CellRect returns the rectangle covering square cells from (i0, j0) to
// (i1, j1) inclusive.
func CellRect(i0, j0, i1, j1 int) geom.Rectangle {
	s := Fixtures.CellSize
	return geom.NewRectangle(float64(j0)*s, float64(i0)*s, float64(j1-j0+1)*s, float64(i1-i0+1)*s)
}

// Mover returns a one-cell friendly token at cell (i, j).
func Mover(i, j int) *scene.Token {
	return CellToken(Fixtures.MoverID, i, j, scene.Friendly)
}

// Goblin returns a one-cell hostile token at cell (i, j).
func Goblin(i, j int) *scene.Token {
	return CellToken(Fixtures.GoblinID, i, j, scene.Hostile)
}

// CellToken returns a one-cell token at cell (i, j) on the ground.
func CellToken(id uuid.UUID, i, j int, d scene.Disposition) *scene.Token {
	s := Fixtures.CellSize
	return &scene.Token{
		ID:          id,
		X:           float64(j) * s,
		Y:           float64(i) * s,
		Width:       s,
		Height:      s,
		Disposition: d,
	}
}

// Drawing returns a ground-level drawing over shape with multiplier m.
func Drawing(shape geom.Shape, m float64) *scene.Drawing {
	d := scene.NewDrawing(shape)
	d.Multiplier = m
	return d
}

// Scene builds a scene holding the given tokens and drawings.
func Scene(tokens []*scene.Token, drawings ...*scene.Drawing) *scene.Scene {
	s := scene.New(0)
	for _, t := range tokens {
		s.AddToken(t)
	}
	for _, d := range drawings {
		s.AddDrawing(d)
	}
	return s
}
