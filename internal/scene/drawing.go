package scene

import (
	"github.com/google/uuid"

	"github.com/udisondev/elevationruler/internal/geom"
)

// Drawing is a user-drawn canvas shape that may slow movement.
type Drawing struct {
	ID    uuid.UUID
	Shape geom.Shape

	// Multiplier applied to movement inside the shape; 1 means no effect.
	Multiplier float64

	// Elevation in pixels. The drawing only affects segments whose
	// elevation range includes it.
	Elevation float64
}

// NewDrawing creates a drawing with no movement effect.
func NewDrawing(shape geom.Shape) *Drawing {
	return &Drawing{ID: uuid.New(), Shape: shape, Multiplier: 1}
}

// HasPenalty reports whether the drawing changes movement cost.
func (d *Drawing) HasPenalty() bool { return d.Multiplier != 1 }
