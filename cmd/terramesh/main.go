// terramesh is a CLI utility for turning elevation rasters into
// colored 3D meshes (Wavefront OBJ and binary STL).
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/demfold/terramesh/internal/config"
	"github.com/demfold/terramesh/internal/gridio"
	"github.com/demfold/terramesh/internal/logger"
	"github.com/demfold/terramesh/internal/mesher"
	"github.com/demfold/terramesh/pkg/meshio"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "build":
		cmdBuild(args)
	case "inspect", "info":
		cmdInspect(args)
	case "validate":
		cmdValidate(args)
	case "recolor":
		cmdRecolor(args)
	case "init-config":
		cmdInitConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terramesh - elevation raster to 3D mesh converter

Usage:
  terramesh <command> [options]

Commands:
  build <grid>          Build OBJ/STL meshes from an .asc or .json grid
  inspect <model>       Show statistics for an .obj or .stl file
  validate <file.obj>   Check an OBJ file for common problems
  recolor <in.obj> <texture> <out.obj>
                        Bake texture colors into per-vertex colors
  init-config [path]    Write a default config file

Examples:
  terramesh build dem.asc -mode georeferenced -center -obj terrain.obj
  terramesh build heights.json -solid -base 0.1 -zscale 2
  terramesh inspect terrain.stl
  terramesh recolor qgis_export.obj texture.png recolored.obj`)
}

// loadGrid reads an elevation grid, picking the parser by extension.
// JSON grids carry no affine transform, so Geo stays zero.
func loadGrid(path string) (*mesher.Grid, *mesher.Mask, mesher.GeoTransform, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".asc":
		ag, err := gridio.LoadASCIIGrid(path)
		if err != nil {
			return nil, nil, mesher.GeoTransform{}, err
		}
		return ag.Grid, ag.Mask, ag.Geo, nil
	case ".json":
		grid, mask, err := gridio.LoadJSONGrid(path)
		return grid, mask, mesher.GeoTransform{}, err
	default:
		return nil, nil, mesher.GeoTransform{}, fmt.Errorf("unsupported grid format %q (want .asc or .json)", filepath.Ext(path))
	}
}

func cmdBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	color := fs.String("color", "", "Color strategy: palette, gradient, texture, none")
	zonesPath := fs.String("zones", "", "Zone grid for palette coloring (.asc or .json)")
	auxPath := fs.String("aux", "", "Auxiliary grid for gradient coloring (defaults to elevation)")
	texPath := fs.String("texture", "", "Texture image for texture coloring")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: terramesh build <grid> [options]")
		os.Exit(1)
	}

	cfg, err := config.Load(flags.ConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	flags.Apply(fs, cfg)
	if *color != "" {
		cfg.Color.Strategy = *color
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	gridPath := fs.Arg(0)
	grid, mask, geo, err := loadGrid(gridPath)
	if err != nil {
		logger.Fatal("failed to load grid", zap.String("path", gridPath), zap.Error(err))
	}

	valid := mask.ValidCount()
	logger.Info("grid loaded",
		zap.String("path", gridPath),
		zap.Int("width", grid.Width),
		zap.Int("height", grid.Height),
		zap.Int("valid_samples", valid),
		zap.Int("nodata_samples", grid.Width*grid.Height-valid),
	)
	if min, max, err := grid.ValidRange(mask); err == nil {
		logger.Info("elevation range", zap.Float64("min", min), zap.Float64("max", max))
	}

	colors, err := buildColorer(cfg, grid, *zonesPath, *auxPath, *texPath)
	if err != nil {
		logger.Fatal("failed to set up coloring", zap.Error(err))
	}

	opts, err := cfg.Model.BuildOptions(geo)
	if err != nil {
		logger.Fatal("invalid model settings", zap.Error(err))
	}

	mesh, err := mesher.Build(grid, mask, colors, opts)
	if err != nil {
		logger.Fatal("mesh generation failed", zap.Error(err))
	}

	bmin, bmax := mesh.Bounds()
	logger.Info("mesh built",
		zap.String("mode", opts.Mode.String()),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("faces", len(mesh.Faces)),
		zap.String("bounds_min", fmt.Sprintf("%.4f %.4f %.4f", bmin.X, bmin.Y, bmin.Z)),
		zap.String("bounds_max", fmt.Sprintf("%.4f %.4f %.4f", bmax.X, bmax.Y, bmax.Z)),
	)

	if cfg.Output.OBJ != "" {
		if err := writeOBJOutput(cfg, mesh, gridPath); err != nil {
			logger.Fatal("failed to write OBJ", zap.Error(err))
		}
		logger.Info("wrote OBJ", zap.String("path", cfg.Output.OBJ))
	}
	if cfg.Output.STL != "" {
		if err := writeSTLOutput(cfg, mesh); err != nil {
			logger.Fatal("failed to write STL", zap.Error(err))
		}
		logger.Info("wrote STL", zap.String("path", cfg.Output.STL))
	}
}

// buildColorer picks the cell colorer for the configured strategy.
func buildColorer(cfg *config.Config, elev *mesher.Grid, zonesPath, auxPath, texPath string) (mesher.CellColorer, error) {
	switch cfg.Color.Strategy {
	case "palette":
		if zonesPath == "" {
			return nil, fmt.Errorf("palette coloring needs a zone grid (-zones)")
		}
		zones, _, _, err := loadGrid(zonesPath)
		if err != nil {
			return nil, err
		}
		return mesher.NewPaletteColorer(zones, cfg.Color.MesherPalette()), nil
	case "gradient":
		aux := elev
		if auxPath != "" {
			var err error
			aux, _, _, err = loadGrid(auxPath)
			if err != nil {
				return nil, err
			}
		}
		return mesher.NewGradientColorer(aux), nil
	case "texture":
		if texPath == "" {
			return nil, fmt.Errorf("texture coloring needs an image (-texture)")
		}
		img, err := gridio.LoadTexture(texPath)
		if err != nil {
			return nil, err
		}
		return mesher.NewTextureColorer(img, elev.Width, elev.Height), nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown color strategy %q", cfg.Color.Strategy)
	}
}

func writeOBJOutput(cfg *config.Config, mesh *meshio.Mesh, source string) error {
	opts := &meshio.OBJOptions{
		Comments: []string{
			"Generated by terramesh",
			"Source: " + filepath.Base(source),
		},
	}

	if cfg.Output.MTL {
		mtlPath := strings.TrimSuffix(cfg.Output.OBJ, filepath.Ext(cfg.Output.OBJ)) + ".mtl"
		opts.MTLLib = filepath.Base(mtlPath)
		opts.Material = "terrain"

		mf, err := os.Create(mtlPath)
		if err != nil {
			return err
		}
		if err := meshio.WriteMTL(mf, opts.Material); err != nil {
			mf.Close()
			return err
		}
		if err := mf.Close(); err != nil {
			return err
		}
	}

	f, err := os.Create(cfg.Output.OBJ)
	if err != nil {
		return err
	}
	if err := meshio.WriteOBJ(f, mesh, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeSTLOutput(cfg *config.Config, mesh *meshio.Mesh) error {
	header := cfg.Output.STLHeader
	if header == "" {
		header = meshio.DefaultSTLHeader
	}

	f, err := os.Create(cfg.Output.STL)
	if err != nil {
		return err
	}
	if err := meshio.WriteSTL(f, mesh, header); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func cmdInspect(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: terramesh inspect <file.obj|file.stl>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		model, err := meshio.ReadOBJ(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		bmin, bmax := model.Mesh.Bounds()
		fmt.Printf("File:       %s\n", path)
		fmt.Printf("Vertices:   %d (%d with colors)\n", len(model.Mesh.Vertices), model.ColoredVertices)
		fmt.Printf("Faces:      %d\n", len(model.Mesh.Faces))
		fmt.Printf("TexCoords:  %d\n", len(model.TexCoords))
		fmt.Printf("Bounds min: %.4f %.4f %.4f\n", bmin.X, bmin.Y, bmin.Z)
		fmt.Printf("Bounds max: %.4f %.4f %.4f\n", bmax.X, bmax.Y, bmax.Z)
	case ".stl":
		tris, err := meshio.ReadSTL(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("File:      %s\n", path)
		fmt.Printf("Triangles: %d\n", len(tris))
		if len(tris) > 0 {
			min := tris[0].Vertices[0]
			max := min
			for _, t := range tris {
				for _, v := range t.Vertices {
					if v.X < min.X {
						min.X = v.X
					}
					if v.Y < min.Y {
						min.Y = v.Y
					}
					if v.Z < min.Z {
						min.Z = v.Z
					}
					if v.X > max.X {
						max.X = v.X
					}
					if v.Y > max.Y {
						max.Y = v.Y
					}
					if v.Z > max.Z {
						max.Z = v.Z
					}
				}
			}
			fmt.Printf("Bounds min: %.4f %.4f %.4f\n", min.X, min.Y, min.Z)
			fmt.Printf("Bounds max: %.4f %.4f %.4f\n", max.X, max.Y, max.Z)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unsupported model format %q\n", filepath.Ext(path))
		os.Exit(1)
	}
}

func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: terramesh validate <file.obj>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	stats, err := meshio.ValidateOBJ(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Vertices:  %d (%d with colors)\n", stats.Vertices, stats.ColoredVertices)
	fmt.Printf("TexCoords: %d\n", stats.TexCoords)
	fmt.Printf("Normals:   %d\n", stats.Normals)
	fmt.Printf("Faces:     %d\n", stats.Faces)

	problems := stats.Problems()
	if len(problems) == 0 {
		fmt.Println("OK")
		return
	}
	fmt.Println()
	for _, p := range problems {
		fmt.Printf("Problem: %s\n", p)
	}
	os.Exit(1)
}

func cmdRecolor(args []string) {
	fs := flag.NewFlagSet("recolor", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 3 {
		fmt.Fprintln(os.Stderr, "Usage: terramesh recolor <in.obj> <texture> <out.obj>")
		os.Exit(1)
	}
	inPath, texPath, outPath := fs.Arg(0), fs.Arg(1), fs.Arg(2)

	in, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	model, err := meshio.ReadOBJ(in)
	in.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading OBJ: %v\n", err)
		os.Exit(1)
	}

	if len(model.TexCoords) == 0 {
		fmt.Fprintln(os.Stderr, "Input OBJ has no texture coordinates")
		os.Exit(1)
	}

	img, err := gridio.LoadTexture(texPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading texture: %v\n", err)
		os.Exit(1)
	}

	mesher.ApplyTextureColors(&model.Mesh, model.FaceUVs, model.TexCoords, img)

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts := &meshio.OBJOptions{
		Comments: []string{"Recolored by terramesh", "Source: " + filepath.Base(inPath)},
	}
	if err := meshio.WriteOBJ(out, &model.Mesh, opts); err != nil {
		out.Close()
		fmt.Fprintf(os.Stderr, "Error writing OBJ: %v\n", err)
		os.Exit(1)
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Recolored %d vertices across %d faces -> %s\n",
		len(model.Mesh.Vertices), len(model.Mesh.Faces), outPath)
}

func cmdInitConfig(args []string) {
	fs := flag.NewFlagSet("init-config", flag.ExitOnError)
	fs.Parse(args)

	cfg := config.Default()
	if fs.NArg() > 0 {
		path := fs.Arg(0)
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
		return
	}

	if err := cfg.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
}
