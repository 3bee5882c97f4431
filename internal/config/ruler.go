package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/elevationruler/internal/grid"
	"github.com/udisondev/elevationruler/internal/measure"
	"github.com/udisondev/elevationruler/internal/penalty"
)

var (
	ErrUnknownGridType     = errors.New("unknown grid type")
	ErrUnknownDiagonalRule = errors.New("unknown diagonal rule")
	ErrUnknownAlgorithm    = errors.New("unknown penalty algorithm")
	ErrUnknownTokenFilter  = errors.New("unknown token filter")
	ErrInvalidValue        = errors.New("invalid config value")
)

// Ruler holds all configuration for measurement.
type Ruler struct {
	LogLevel string `yaml:"log_level"`

	Grid        GridConfig        `yaml:"grid"`
	Penalty     PenaltyConfig     `yaml:"penalty"`
	Measure     MeasureConfig     `yaml:"measure"`
	Pathfinding PathfindingConfig `yaml:"pathfinding"`

	// Scene index
	BucketSize float64 `yaml:"bucket_size"` // pixels

	// Paths measured at once by the CLI
	Workers int `yaml:"workers"`
}

// GridConfig describes the scene grid.
type GridConfig struct {
	Type      string  `yaml:"type"`      // gridless, square, hex_odd_r, hex_even_r, hex_odd_q, hex_even_q
	Size      float64 `yaml:"size"`      // pixels per cell
	Distance  float64 `yaml:"distance"`  // scene units per cell
	Diagonals string  `yaml:"diagonals"` // equidistant, exact, approximate, rectilinear, alternating_odd, alternating_even, illegal
}

// PenaltyConfig describes obstacle penalties.
type PenaltyConfig struct {
	Algorithm        string  `yaml:"algorithm"`         // center, percent, euclidean
	PercentThreshold float64 `yaml:"percent_threshold"` // 0..1
	TokenMultiplier  float64 `yaml:"token_multiplier"`
	Tokens           string  `yaml:"tokens"`  // all, hostile, none
	Terrain          bool    `yaml:"terrain"` // apply scene terrain regions
}

// MeasureConfig holds measurement defaults.
type MeasureConfig struct {
	UseAllElevation bool        `yaml:"use_all_elevation"`
	SpeedBands      []SpeedBand `yaml:"speed_bands"`
}

// SpeedBand is a named movement budget, e.g. walk 30 and dash 30.
type SpeedBand struct {
	Name     string  `yaml:"name"`
	Distance float64 `yaml:"distance"`
}

// PathfindingConfig limits the cell search.
type PathfindingConfig struct {
	MaxIterations int `yaml:"max_iterations"`
}

// DefaultRuler returns Ruler config with a 5-unit square grid.
func DefaultRuler() Ruler {
	return Ruler{
		LogLevel: "info",
		Grid: GridConfig{
			Type:      "square",
			Size:      100,
			Distance:  5,
			Diagonals: "alternating_odd",
		},
		Penalty: PenaltyConfig{
			Algorithm:        "center",
			PercentThreshold: 0.5,
			TokenMultiplier:  2,
			Tokens:           "all",
			Terrain:          true,
		},
		Measure: MeasureConfig{
			UseAllElevation: true,
			SpeedBands: []SpeedBand{
				{Name: "walk", Distance: 30},
				{Name: "dash", Distance: 30},
			},
		},
		Pathfinding: PathfindingConfig{
			MaxIterations: 10000,
		},
		BucketSize: 1024,
		Workers:    4,
	}
}

// LoadRuler loads ruler config from a YAML file and validates it.
// If the file doesn't exist, returns defaults.
func LoadRuler(path string) (Ruler, error) {
	cfg := DefaultRuler()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks every enum and numeric range.
func (r Ruler) Validate() error {
	if _, err := r.Grid.Build(); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	if _, err := r.Penalty.Options(); err != nil {
		return fmt.Errorf("penalty: %w", err)
	}
	for _, b := range r.Measure.SpeedBands {
		if b.Distance <= 0 {
			return fmt.Errorf("speed band %q: %w: distance must be positive", b.Name, ErrInvalidValue)
		}
	}
	if r.Workers < 1 {
		return fmt.Errorf("workers: %w: %d", ErrInvalidValue, r.Workers)
	}
	return nil
}

// Build creates the grid.
func (c GridConfig) Build() (*grid.Grid, error) {
	t, err := ParseGridType(c.Type)
	if err != nil {
		return nil, err
	}
	rule, err := ParseDiagonalRule(c.Diagonals)
	if err != nil {
		return nil, err
	}
	if c.Size <= 0 || c.Distance <= 0 {
		return nil, fmt.Errorf("%w: size and distance must be positive", ErrInvalidValue)
	}
	return grid.New(t, c.Size, c.Distance, rule), nil
}

// Options converts the config to engine options.
func (c PenaltyConfig) Options() (penalty.Options, error) {
	alg, err := ParseAlgorithm(c.Algorithm)
	if err != nil {
		return penalty.Options{}, err
	}
	filter, err := ParseTokenFilter(c.Tokens)
	if err != nil {
		return penalty.Options{}, err
	}
	if c.PercentThreshold < 0 || c.PercentThreshold > 1 {
		return penalty.Options{}, fmt.Errorf("%w: percent_threshold %v", ErrInvalidValue, c.PercentThreshold)
	}
	if c.TokenMultiplier < 0 {
		return penalty.Options{}, fmt.Errorf("%w: token_multiplier %v", ErrInvalidValue, c.TokenMultiplier)
	}
	return penalty.Options{
		Algorithm:        alg,
		PercentThreshold: c.PercentThreshold,
		TokenMultiplier:  c.TokenMultiplier,
		TokenFilter:      filter,
	}, nil
}

// Bands converts the configured speed bands.
func (c MeasureConfig) Bands() []measure.Band {
	out := make([]measure.Band, len(c.SpeedBands))
	for i, b := range c.SpeedBands {
		out[i] = measure.Band{Name: b.Name, Distance: b.Distance}
	}
	return out
}

// ParseGridType resolves a grid type name.
func ParseGridType(s string) (grid.Type, error) {
	switch normalize(s) {
	case "gridless":
		return grid.Gridless, nil
	case "square":
		return grid.Square, nil
	case "hex_odd_r":
		return grid.HexOddR, nil
	case "hex_even_r":
		return grid.HexEvenR, nil
	case "hex_odd_q":
		return grid.HexOddQ, nil
	case "hex_even_q":
		return grid.HexEvenQ, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownGridType, s)
	}
}

// ParseDiagonalRule resolves a diagonal rule name.
func ParseDiagonalRule(s string) (grid.DiagonalRule, error) {
	switch normalize(s) {
	case "equidistant":
		return grid.Equidistant, nil
	case "exact":
		return grid.Exact, nil
	case "approximate":
		return grid.Approximate, nil
	case "rectilinear":
		return grid.Rectilinear, nil
	case "alternating_odd", "alternating":
		return grid.AlternatingOdd, nil
	case "alternating_even":
		return grid.AlternatingEven, nil
	case "illegal":
		return grid.Illegal, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDiagonalRule, s)
	}
}

// ParseAlgorithm resolves a gridded penalty algorithm name.
func ParseAlgorithm(s string) (penalty.Algorithm, error) {
	switch normalize(s) {
	case "center", "":
		return penalty.Center, nil
	case "percent":
		return penalty.Percent, nil
	case "euclidean":
		return penalty.Euclidean, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

// ParseTokenFilter resolves which tokens slow movement.
func ParseTokenFilter(s string) (penalty.TokenFilter, error) {
	switch normalize(s) {
	case "all", "":
		return penalty.AllTokens, nil
	case "hostile":
		return penalty.HostileTokens, nil
	case "none":
		return penalty.NoTokens, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTokenFilter, s)
	}
}

// normalize приводит имя к виду snake_case в нижнем регистре.
func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
}
