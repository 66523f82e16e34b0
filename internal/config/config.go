// Package config handles terramesh configuration loading and management.
package config

import (
	"fmt"

	"github.com/demfold/terramesh/internal/mesher"
)

// Config holds all generator settings.
type Config struct {
	Model   ModelConfig   `yaml:"model"`
	Color   ColorConfig   `yaml:"color"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ModelConfig holds geometry settings.
type ModelConfig struct {
	// Coordinates is one of normalized-cell, normalized-edge,
	// georeferenced.
	Coordinates   string  `yaml:"coordinates"`
	ZScale        float64 `yaml:"z_scale"`
	Downsample    int     `yaml:"downsample"`
	Center        bool    `yaml:"center"`
	Solid         bool    `yaml:"solid"`
	BaseThickness float64 `yaml:"base_thickness"`
}

// ColorConfig holds vertex color settings.
type ColorConfig struct {
	// Strategy is one of palette, gradient, texture, none.
	Strategy string           `yaml:"strategy"`
	Palette  map[int][3]uint8 `yaml:"palette"`
}

// OutputConfig holds output file settings.
type OutputConfig struct {
	OBJ       string `yaml:"obj"`
	STL       string `yaml:"stl"`
	MTL       bool   `yaml:"mtl"`
	STLHeader string `yaml:"stl_header"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	palette := make(map[int][3]uint8)
	for zone, c := range mesher.DefaultPalette() {
		palette[zone] = c
	}
	return &Config{
		Model: ModelConfig{
			Coordinates:   "normalized-edge",
			ZScale:        1.0,
			Downsample:    1,
			Center:        false,
			Solid:         false,
			BaseThickness: 0.05,
		},
		Color: ColorConfig{
			Strategy: "palette",
			Palette:  palette,
		},
		Output: OutputConfig{
			OBJ: "terrain.obj",
			STL: "terrain.stl",
			MTL: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// CoordMode resolves the configured coordinate mode.
func (m *ModelConfig) CoordMode() (mesher.CoordMode, error) {
	switch m.Coordinates {
	case "normalized-cell":
		return mesher.CoordNormalizedCell, nil
	case "normalized-edge", "":
		return mesher.CoordNormalizedEdge, nil
	case "georeferenced":
		return mesher.CoordGeoreferenced, nil
	default:
		return 0, fmt.Errorf("unknown coordinate mode %q", m.Coordinates)
	}
}

// BuildOptions converts the model settings to engine build options.
// geo supplies the affine transform for georeferenced output.
func (m *ModelConfig) BuildOptions(geo mesher.GeoTransform) (mesher.BuildOptions, error) {
	mode, err := m.CoordMode()
	if err != nil {
		return mesher.BuildOptions{}, err
	}
	return mesher.BuildOptions{
		Mode:          mode,
		ZScale:        m.ZScale,
		Center:        m.Center,
		Geo:           geo,
		Downsample:    m.Downsample,
		Solid:         m.Solid,
		BaseThickness: m.BaseThickness,
	}, nil
}

// MesherPalette converts the configured palette to the engine type.
// An empty palette falls back to the stock zone colors.
func (c *ColorConfig) MesherPalette() mesher.Palette {
	if len(c.Palette) == 0 {
		return mesher.DefaultPalette()
	}
	p := make(mesher.Palette, len(c.Palette))
	for zone, col := range c.Palette {
		p[zone] = col
	}
	return p
}
