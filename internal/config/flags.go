package config

import "flag"

// Flags holds CLI overrides registered on a flag set. Only flags the
// user actually set are applied, so zero values stay usable (e.g. a
// deliberate -zscale 0).
type Flags struct {
	config     string
	mode       string
	zScale     float64
	downsample int
	center     bool
	solid      bool
	base       float64
	obj        string
	stl        string
	debug      bool
}

// RegisterFlags adds config override flags to a flag set.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.config, "config", "", "Path to config file")
	fs.StringVar(&f.mode, "mode", "", "Coordinate mode: normalized-cell, normalized-edge, georeferenced")
	fs.Float64Var(&f.zScale, "zscale", 1.0, "Vertical exaggeration factor")
	fs.IntVar(&f.downsample, "downsample", 1, "Keep every Nth row/column")
	fs.BoolVar(&f.center, "center", false, "Center georeferenced output at the origin")
	fs.BoolVar(&f.solid, "solid", false, "Extrude a closed solid with a flat base")
	fs.Float64Var(&f.base, "base", 0.05, "Base thickness for solid output")
	fs.StringVar(&f.obj, "obj", "", "OBJ output path")
	fs.StringVar(&f.stl, "stl", "", "STL output path")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	return f
}

// ConfigPath returns the explicit config path, if provided.
func (f *Flags) ConfigPath() string {
	return f.config
}

// Apply copies set flags onto the config. Flags the user did not pass
// are skipped.
func (f *Flags) Apply(fs *flag.FlagSet, cfg *Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "mode":
			cfg.Model.Coordinates = f.mode
		case "zscale":
			cfg.Model.ZScale = f.zScale
		case "downsample":
			cfg.Model.Downsample = f.downsample
		case "center":
			cfg.Model.Center = f.center
		case "solid":
			cfg.Model.Solid = f.solid
		case "base":
			cfg.Model.BaseThickness = f.base
		case "obj":
			cfg.Output.OBJ = f.obj
		case "stl":
			cfg.Output.STL = f.stl
		case "debug":
			cfg.Logging.Level = "debug"
		}
	})
}
