// Package scene holds the obstacles a measurement can run into: tokens,
// drawings and terrain regions, each filed in a bucket-grid spatial index.
//
// Obstacles move between measurements, so callers query the scene at call
// time and never cache answers keyed on coordinates alone. Measurement
// only reads a Scene; mutation (AddToken, MoveToken, ...) must not run
// concurrently with it.
package scene

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/udisondev/elevationruler/internal/geom"
)

// Scene is the live set of obstacles.
type Scene struct {
	tokens   *Index[*Token]
	drawings *Index[*Drawing]
	terrain  *TerrainLayer
	byID     map[uuid.UUID]*Token
	border   BorderConstrainer
}

// New creates an empty scene whose indexes use buckets of bucketSize pixels.
func New(bucketSize float64) *Scene {
	return &Scene{
		tokens:   NewIndex[*Token](bucketSize),
		drawings: NewIndex[*Drawing](bucketSize),
		terrain:  NewTerrainLayer(bucketSize),
		byID:     make(map[uuid.UUID]*Token),
		border:   RectBorder{},
	}
}

// SetBorderConstrainer replaces the wall-aware token border provider.
// A nil value restores the plain footprint.
func (s *Scene) SetBorderConstrainer(b BorderConstrainer) {
	if b == nil {
		b = RectBorder{}
	}
	s.border = b
}

// Border returns t's constrained border.
func (s *Scene) Border(t *Token) geom.Shape {
	return s.border.ConstrainedBorder(t)
}

// AddToken places a token.
func (s *Scene) AddToken(t *Token) {
	s.byID[t.ID] = t
	s.tokens.Insert(t, t.Bounds().Bounds())
}

// Token returns the token with the given id.
func (s *Scene) Token(id uuid.UUID) (*Token, bool) {
	t, ok := s.byID[id]
	return t, ok
}

// MoveToken relocates a token and refiles it in the index.
// Returns false if no such token exists.
func (s *Scene) MoveToken(id uuid.UUID, x, y, elevation float64) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	t.X, t.Y, t.Elevation = x, y, elevation
	s.tokens.Insert(t, t.Bounds().Bounds())
	return true
}

// RemoveToken takes a token off the scene.
func (s *Scene) RemoveToken(id uuid.UUID) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	return s.tokens.Remove(t)
}

// Tokens returns tokens whose footprint box overlaps area and satisfies pred.
func (s *Scene) Tokens(area r2.Box, pred func(*Token) bool) []*Token {
	return s.tokens.Query(area, pred)
}

// AddDrawing places a drawing.
func (s *Scene) AddDrawing(d *Drawing) {
	s.drawings.Insert(d, d.Shape.Bounds())
}

// Drawings returns drawings whose bounds overlap area and satisfy pred.
func (s *Scene) Drawings(area r2.Box, pred func(*Drawing) bool) []*Drawing {
	return s.drawings.Query(area, pred)
}

// AddTerrain places a terrain region.
func (s *Scene) AddTerrain(r *TerrainRegion) {
	s.terrain.Add(r)
}

// Terrain returns the scene's terrain layer.
func (s *Scene) Terrain() *TerrainLayer { return s.terrain }

// Reindex refiles every token after callers changed token fields directly.
func (s *Scene) Reindex() {
	for _, t := range s.byID {
		s.tokens.Insert(t, t.Bounds().Bounds())
	}
}
