package scene

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/udisondev/elevationruler/internal/geom"
	"github.com/udisondev/elevationruler/internal/grid"
)

// Disposition is a token's attitude toward the players.
type Disposition int8

const (
	Hostile  Disposition = -1
	Neutral  Disposition = 0
	Friendly Disposition = 1
)

// HostileTo reports whether tokens of dispositions d and o oppose each other.
// Neutral tokens oppose nobody.
func (d Disposition) HostileTo(o Disposition) bool {
	return d != Neutral && o != Neutral && d != o
}

// Token is a creature on the canvas.
type Token struct {
	ID   uuid.UUID
	Name string

	// Top-left corner and footprint in pixels.
	X, Y          float64
	Width, Height float64

	// Elevation of the token's base and its vertical extent, in pixels.
	// A zero VerticalHeight means the token is as tall as it is wide.
	Elevation      float64
	VerticalHeight float64

	Disposition Disposition
}

// Bounds returns the token's footprint.
func (t *Token) Bounds() geom.Rectangle {
	return geom.NewRectangle(t.X, t.Y, t.Width, t.Height)
}

// Center returns the footprint center.
func (t *Token) Center() r2.Vec {
	return r2.Vec{X: t.X + t.Width/2, Y: t.Y + t.Height/2}
}

// Position returns the footprint center at the token's elevation.
func (t *Token) Position() grid.Point3 {
	c := t.Center()
	return grid.Point3{X: c.X, Y: c.Y, Z: t.Elevation}
}

// BottomZ is the lowest elevation the token occupies.
func (t *Token) BottomZ() float64 { return t.Elevation }

// TopZ is the highest elevation the token occupies.
func (t *Token) TopZ() float64 {
	h := t.VerticalHeight
	if h <= 0 {
		h = max(t.Width, t.Height)
	}
	return t.Elevation + h
}

// BorderConstrainer supplies a token's footprint after removing the parts
// cut off by walls.
type BorderConstrainer interface {
	ConstrainedBorder(t *Token) geom.Shape
}

// RectBorder is the BorderConstrainer used when no wall data is available:
// the full footprint rectangle.
type RectBorder struct{}

// ConstrainedBorder returns the token's bounds.
func (RectBorder) ConstrainedBorder(t *Token) geom.Shape { return t.Bounds() }
