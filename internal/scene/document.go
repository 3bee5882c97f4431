package scene

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/udisondev/elevationruler/internal/geom"
	"github.com/udisondev/elevationruler/internal/grid"
)

// ErrInvalidDocument is returned for scene documents that fail validation.
var ErrInvalidDocument = errors.New("invalid scene document")

//go:embed scene.schema.json
var schemaJSON string

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("scene.schema.json", schemaJSON)
})

// Document is the on-disk description of a scene and the paths to measure
// across it. Canvas positions are pixels, token sizes are cells and
// elevations are scene units.
type Document struct {
	Tokens   []TokenDoc   `json:"tokens"`
	Drawings []DrawingDoc `json:"drawings"`
	Terrain  []TerrainDoc `json:"terrain"`
	Paths    []PathDoc    `json:"paths"`
}

// ShapeDoc describes a polygon, rectangle or ellipse.
type ShapeDoc struct {
	Type   string       `json:"type"`
	Points [][2]float64 `json:"points,omitempty"`
	X      float64      `json:"x,omitempty"`
	Y      float64      `json:"y,omitempty"`
	Width  float64      `json:"width,omitempty"`
	Height float64      `json:"height,omitempty"`
	RX     float64      `json:"rx,omitempty"`
	RY     float64      `json:"ry,omitempty"`
}

// TokenDoc describes a token.
type TokenDoc struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	X              float64  `json:"x"`
	Y              float64  `json:"y"`
	Width          *float64 `json:"width,omitempty"`
	Height         *float64 `json:"height,omitempty"`
	Elevation      float64  `json:"elevation"`
	VerticalHeight float64  `json:"vertical_height"`
	Disposition    string   `json:"disposition"`
}

// DrawingDoc describes a drawing.
type DrawingDoc struct {
	ID         string   `json:"id"`
	Shape      ShapeDoc `json:"shape"`
	Multiplier *float64 `json:"multiplier,omitempty"`
	Elevation  float64  `json:"elevation"`
}

// TerrainDoc describes a terrain region. A missing bottom or top leaves
// the band open on that side.
type TerrainDoc struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Shape      ShapeDoc `json:"shape"`
	Multiplier float64  `json:"multiplier"`
	Bottom     *float64 `json:"bottom,omitempty"`
	Top        *float64 `json:"top,omitempty"`
}

// PathDoc describes a path to measure. Waypoints are [x, y, elevation].
type PathDoc struct {
	Name       string       `json:"name"`
	Token      string       `json:"token"`
	Waypoints  [][3]float64 `json:"waypoints"`
	StopTarget float64      `json:"stop_target"`
	Gridless   bool         `json:"gridless"`
}

// Path is a PathDoc resolved against a built scene.
type Path struct {
	Name       string
	Token      *Token
	Waypoints  []grid.Point3
	StopTarget float64
	Gridless   bool
}

// LoadDocument reads and validates a scene document from a file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene %s: %w", path, err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parsing scene %s: %w", path, err)
	}
	return doc, nil
}

// ParseDocument validates data against the scene schema and decodes it.
func ParseDocument(data []byte) (*Document, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling scene schema: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &doc, nil
}

// Build creates the scene and resolves paths, converting cells and scene
// units to pixels with g.
func (d *Document) Build(g *grid.Grid, bucketSize float64) (*Scene, []Path, error) {
	s := New(bucketSize)

	for i, td := range d.Tokens {
		t, err := td.token(g)
		if err != nil {
			return nil, nil, fmt.Errorf("token %d: %w", i, err)
		}
		s.AddToken(t)
	}

	for i, dd := range d.Drawings {
		shape, err := dd.Shape.shape()
		if err != nil {
			return nil, nil, fmt.Errorf("drawing %d: %w", i, err)
		}
		dr := NewDrawing(shape)
		if dd.ID != "" {
			if dr.ID, err = uuid.Parse(dd.ID); err != nil {
				return nil, nil, fmt.Errorf("drawing %d id: %w", i, err)
			}
		}
		if dd.Multiplier != nil {
			dr.Multiplier = *dd.Multiplier
		}
		dr.Elevation = g.UnitsToPixels(dd.Elevation)
		s.AddDrawing(dr)
	}

	for i, rd := range d.Terrain {
		r, err := rd.region(g)
		if err != nil {
			return nil, nil, fmt.Errorf("terrain %d: %w", i, err)
		}
		s.AddTerrain(r)
	}

	paths := make([]Path, 0, len(d.Paths))
	for i, pd := range d.Paths {
		p := Path{
			Name:       pd.Name,
			StopTarget: pd.StopTarget,
			Gridless:   pd.Gridless,
		}
		if p.Name == "" {
			p.Name = fmt.Sprintf("path-%d", i+1)
		}
		if pd.Token != "" {
			id, err := uuid.Parse(pd.Token)
			if err != nil {
				return nil, nil, fmt.Errorf("path %q token: %w", p.Name, err)
			}
			t, ok := s.Token(id)
			if !ok {
				return nil, nil, fmt.Errorf("%w: path %q references unknown token %s", ErrInvalidDocument, p.Name, id)
			}
			p.Token = t
		}
		for _, w := range pd.Waypoints {
			p.Waypoints = append(p.Waypoints, grid.Point3{X: w[0], Y: w[1], Z: g.UnitsToPixels(w[2])})
		}
		paths = append(paths, p)
	}

	return s, paths, nil
}

func (td TokenDoc) token(g *grid.Grid) (*Token, error) {
	id, err := uuid.Parse(td.ID)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	w, h := 1.0, 1.0
	if td.Width != nil {
		w = *td.Width
	}
	if td.Height != nil {
		h = *td.Height
	}
	disp, err := parseDisposition(td.Disposition)
	if err != nil {
		return nil, err
	}
	return &Token{
		ID:             id,
		Name:           td.Name,
		X:              td.X,
		Y:              td.Y,
		Width:          w * g.Size,
		Height:         h * g.Size,
		Elevation:      g.UnitsToPixels(td.Elevation),
		VerticalHeight: g.UnitsToPixels(td.VerticalHeight),
		Disposition:    disp,
	}, nil
}

func (rd TerrainDoc) region(g *grid.Grid) (*TerrainRegion, error) {
	shape, err := rd.Shape.shape()
	if err != nil {
		return nil, err
	}
	r := &TerrainRegion{
		ID:         uuid.New(),
		Name:       rd.Name,
		Shape:      shape,
		Multiplier: rd.Multiplier,
		BottomZ:    math.Inf(-1),
		TopZ:       math.Inf(1),
	}
	if rd.ID != "" {
		if r.ID, err = uuid.Parse(rd.ID); err != nil {
			return nil, fmt.Errorf("id: %w", err)
		}
	}
	if rd.Bottom != nil {
		r.BottomZ = g.UnitsToPixels(*rd.Bottom)
	}
	if rd.Top != nil {
		r.TopZ = g.UnitsToPixels(*rd.Top)
	}
	return r, nil
}

func (sd ShapeDoc) shape() (geom.Shape, error) {
	switch strings.ToLower(sd.Type) {
	case "polygon":
		pts := make([]r2.Vec, len(sd.Points))
		for i, p := range sd.Points {
			pts[i] = r2.Vec{X: p[0], Y: p[1]}
		}
		return geom.Polygon{Points: pts}, nil
	case "rectangle":
		return geom.NewRectangle(sd.X, sd.Y, sd.Width, sd.Height), nil
	case "ellipse":
		return geom.Ellipse{Center: r2.Vec{X: sd.X, Y: sd.Y}, RX: sd.RX, RY: sd.RY}, nil
	default:
		return nil, fmt.Errorf("%w: unknown shape type %q", ErrInvalidDocument, sd.Type)
	}
}

func parseDisposition(s string) (Disposition, error) {
	switch strings.ToLower(s) {
	case "hostile":
		return Hostile, nil
	case "", "neutral":
		return Neutral, nil
	case "friendly":
		return Friendly, nil
	default:
		return Neutral, fmt.Errorf("%w: unknown disposition %q", ErrInvalidDocument, s)
	}
}
