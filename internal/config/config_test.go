package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/demfold/terramesh/internal/mesher"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Model.Coordinates != "normalized-edge" {
		t.Errorf("expected normalized-edge, got %s", cfg.Model.Coordinates)
	}
	if cfg.Model.ZScale != 1.0 {
		t.Errorf("expected z_scale 1.0, got %f", cfg.Model.ZScale)
	}
	if cfg.Model.Downsample != 1 {
		t.Errorf("expected downsample 1, got %d", cfg.Model.Downsample)
	}
	if cfg.Model.Solid {
		t.Error("expected solid to be false by default")
	}
	if cfg.Model.BaseThickness != 0.05 {
		t.Errorf("expected base_thickness 0.05, got %f", cfg.Model.BaseThickness)
	}

	if cfg.Color.Strategy != "palette" {
		t.Errorf("expected palette strategy, got %s", cfg.Color.Strategy)
	}
	if len(cfg.Color.Palette) != 5 {
		t.Errorf("expected 5 default palette zones, got %d", len(cfg.Color.Palette))
	}

	if cfg.Output.OBJ != "terrain.obj" || cfg.Output.STL != "terrain.stl" {
		t.Errorf("unexpected output defaults: %+v", cfg.Output)
	}
	if !cfg.Output.MTL {
		t.Error("expected mtl output enabled by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "terramesh.yaml")

	yamlContent := `
model:
  coordinates: georeferenced
  z_scale: 20.0
  downsample: 4
  center: true
  solid: true
  base_thickness: 0.1

color:
  strategy: gradient

output:
  obj: out/terrain_utm.obj
  stl: out/terrain_utm.stl
  mtl: false

logging:
  level: debug
  log_file: terramesh.log
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Model.Coordinates != "georeferenced" {
		t.Errorf("expected georeferenced, got %s", cfg.Model.Coordinates)
	}
	if cfg.Model.ZScale != 20.0 {
		t.Errorf("expected z_scale 20.0, got %f", cfg.Model.ZScale)
	}
	if cfg.Model.Downsample != 4 {
		t.Errorf("expected downsample 4, got %d", cfg.Model.Downsample)
	}
	if !cfg.Model.Center || !cfg.Model.Solid {
		t.Error("expected center and solid enabled")
	}
	if cfg.Color.Strategy != "gradient" {
		t.Errorf("expected gradient strategy, got %s", cfg.Color.Strategy)
	}
	// Unset file sections keep defaults.
	if len(cfg.Color.Palette) != 5 {
		t.Errorf("expected default palette preserved, got %d zones", len(cfg.Color.Palette))
	}
	if cfg.Output.MTL {
		t.Error("expected mtl disabled")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "terramesh.log" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "config.yaml")

	cfg := Default()
	cfg.Model.ZScale = 0.3
	cfg.Output.OBJ = "custom.obj"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Model.ZScale != 0.3 {
		t.Errorf("expected z_scale 0.3, got %f", loaded.Model.ZScale)
	}
	if loaded.Output.OBJ != "custom.obj" {
		t.Errorf("expected custom.obj, got %s", loaded.Output.OBJ)
	}
}

func TestFlagsApply(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := RegisterFlags(fs)

	if err := fs.Parse([]string{"-zscale", "0", "-solid", "-obj", "cli.obj", "-debug"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	cfg := Default()
	f.Apply(fs, cfg)

	// An explicit -zscale 0 must win over the default.
	if cfg.Model.ZScale != 0 {
		t.Errorf("expected z_scale 0, got %f", cfg.Model.ZScale)
	}
	if !cfg.Model.Solid {
		t.Error("expected solid enabled")
	}
	if cfg.Output.OBJ != "cli.obj" {
		t.Errorf("expected cli.obj, got %s", cfg.Output.OBJ)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
	// Untouched settings keep their values.
	if cfg.Model.Downsample != 1 {
		t.Errorf("expected downsample untouched, got %d", cfg.Model.Downsample)
	}
	if cfg.Output.STL != "terrain.stl" {
		t.Errorf("expected stl untouched, got %s", cfg.Output.STL)
	}
}

func TestCoordMode(t *testing.T) {
	tests := []struct {
		in      string
		want    mesher.CoordMode
		wantErr bool
	}{
		{"normalized-cell", mesher.CoordNormalizedCell, false},
		{"normalized-edge", mesher.CoordNormalizedEdge, false},
		{"", mesher.CoordNormalizedEdge, false},
		{"georeferenced", mesher.CoordGeoreferenced, false},
		{"bogus", 0, true},
	}
	for _, tt := range tests {
		m := ModelConfig{Coordinates: tt.in}
		got, err := m.CoordMode()
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
