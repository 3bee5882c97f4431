package penalty

import (
	"math"

	"github.com/google/uuid"

	"github.com/udisondev/elevationruler/internal/geom"
	"github.com/udisondev/elevationruler/internal/scene"
)

// Kind tells which scene object a Source came from.
type Kind uint8

const (
	KindToken Kind = iota
	KindDrawing
	KindTerrain
)

func (k Kind) String() string {
	switch k {
	case KindToken:
		return "token"
	case KindDrawing:
		return "drawing"
	case KindTerrain:
		return "terrain"
	default:
		return "unknown"
	}
}

// Source is one obstacle as the intersector sees it: a canvas shape that
// applies Multiplier to movement whose elevation is within [BottomZ, TopZ].
type Source struct {
	Kind       Kind
	ID         uuid.UUID
	Shape      geom.Shape
	Multiplier float64

	BottomZ, TopZ float64
}

// InBand reports whether elevation z is inside the source's band.
func (s Source) InBand(z float64) bool {
	return z >= s.BottomZ && z <= s.TopZ
}

// FromToken builds a token source over the token's constrained border.
func FromToken(t *scene.Token, border geom.Shape, multiplier float64) Source {
	return Source{
		Kind:       KindToken,
		ID:         t.ID,
		Shape:      border,
		Multiplier: multiplier,
		BottomZ:    t.BottomZ(),
		TopZ:       t.TopZ(),
	}
}

// FromDrawing builds a drawing source. Drawings are qualified by
// elevation before they become sources, so the band is unbounded.
func FromDrawing(d *scene.Drawing) Source {
	return Source{
		Kind:       KindDrawing,
		ID:         d.ID,
		Shape:      d.Shape,
		Multiplier: d.Multiplier,
		BottomZ:    math.Inf(-1),
		TopZ:       math.Inf(1),
	}
}

// FromTerrain builds a terrain source.
func FromTerrain(r *scene.TerrainRegion) Source {
	return Source{
		Kind:       KindTerrain,
		ID:         r.ID,
		Shape:      r.Shape,
		Multiplier: r.Multiplier,
		BottomZ:    r.BottomZ,
		TopZ:       r.TopZ,
	}
}
