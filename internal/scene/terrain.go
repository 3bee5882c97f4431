package scene

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/udisondev/elevationruler/internal/geom"
	"github.com/udisondev/elevationruler/internal/grid"
)

// TerrainRegion is an area that changes movement speed inside a vertical
// band, such as a swamp or a deep snowfield.
type TerrainRegion struct {
	ID   uuid.UUID
	Name string

	Shape      geom.Shape
	Multiplier float64 // speed multiplier, e.g. 2 for half speed

	// Vertical band in pixels, inclusive.
	BottomZ, TopZ float64
}

// Contains checks if point p is inside the region's shape and band.
func (r *TerrainRegion) Contains(p grid.Point3) bool {
	if p.Z < r.BottomZ || p.Z > r.TopZ {
		return false
	}
	return r.Shape.Contains(p.XY())
}

// TerrainLayer holds terrain regions with spatial indexing for fast lookups.
type TerrainLayer struct {
	index *Index[*TerrainRegion]
}

// NewTerrainLayer creates an empty layer.
func NewTerrainLayer(bucketSize float64) *TerrainLayer {
	return &TerrainLayer{index: NewIndex[*TerrainRegion](bucketSize)}
}

// Add registers a region under its shape bounds.
func (l *TerrainLayer) Add(r *TerrainRegion) {
	l.index.Insert(r, r.Shape.Bounds())
}

// Len returns the number of regions.
func (l *TerrainLayer) Len() int { return l.index.Len() }

// Regions returns the regions whose bounds overlap area.
func (l *TerrainLayer) Regions(area r2.Box) []*TerrainRegion {
	return l.index.Query(area, nil)
}

// RegionsAt returns all regions containing p.
func (l *TerrainLayer) RegionsAt(p grid.Point3) []*TerrainRegion {
	xy := p.XY()
	return l.index.Query(r2.Box{Min: xy, Max: xy}, func(r *TerrainRegion) bool {
		return r.Contains(p)
	})
}
