package penalty

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/udisondev/elevationruler/internal/scene"
)

// Terrain supplies terrain sources near a segment. An Engine without one
// applies no terrain penalty.
type Terrain interface {
	Sources(area r2.Box) []Source
}

// RegionTerrain serves terrain from a scene's terrain layer.
type RegionTerrain struct {
	Layer *scene.TerrainLayer
}

// Sources returns a source for every region whose bounds overlap area.
func (rt RegionTerrain) Sources(area r2.Box) []Source {
	if rt.Layer == nil {
		return nil
	}
	regions := rt.Layer.Regions(area)
	out := make([]Source, 0, len(regions))
	for _, r := range regions {
		if r.Multiplier == 1 {
			continue
		}
		out = append(out, FromTerrain(r))
	}
	return out
}
