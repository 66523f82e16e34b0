package mesher

import (
	"fmt"

	"github.com/demfold/terramesh/pkg/meshio"
)

// BuildOptions configure one mesh build.
type BuildOptions struct {
	// Mode selects the cell-to-position mapping.
	Mode CoordMode
	// ZScale is the vertical exaggeration factor. It is a pure
	// multiplier: zero and negative values are accepted.
	ZScale float64
	// Center shifts georeferenced output so the coordinate extents
	// are centered on the origin. Ignored in normalized modes.
	Center bool
	// Geo is the affine transform for CoordGeoreferenced.
	Geo GeoTransform
	// Downsample keeps every Nth row and column before processing.
	// Values below 2 leave the grid untouched.
	Downsample int
	// Solid extrudes the surface into a closed solid with a flat
	// base at z = -BaseThickness.
	Solid         bool
	BaseThickness float64
}

// Build converts a heightfield plus validity mask into an indexed
// triangle mesh. The colorer supplies per-cell vertex colors; nil
// paints everything gray. Fatal input errors are returned before any
// geometry is produced; holes in the mask are normal control flow and
// simply produce no faces.
func Build(grid *Grid, mask *Mask, colors CellColorer, opts BuildOptions) (*meshio.Mesh, error) {
	if grid.Width != mask.Width || grid.Height != mask.Height {
		return nil, fmt.Errorf("%w: mask is %dx%d, grid is %dx%d",
			ErrDimensionMismatch, mask.Width, mask.Height, grid.Width, grid.Height)
	}
	if colors == nil {
		colors = grayColorer{}
	}
	if sized, ok := colors.(gridSized); ok {
		w, h := sized.GridSize()
		if w != grid.Width || h != grid.Height {
			return nil, fmt.Errorf("%w: color source is %dx%d, grid is %dx%d",
				ErrDimensionMismatch, w, h, grid.Width, grid.Height)
		}
	}

	if opts.Downsample > 1 {
		grid = grid.Downsample(opts.Downsample)
		mask = mask.Downsample(opts.Downsample)
		colors = strideColorer{inner: colors, stride: opts.Downsample}
	}
	if grid.Width < 2 || grid.Height < 2 {
		return nil, fmt.Errorf("%w: %dx%d", ErrGridTooSmall, grid.Width, grid.Height)
	}

	t, err := newTransform(grid, mask, opts)
	if err != nil {
		return nil, err
	}

	mesh := &meshio.Mesh{}
	vmap := emitVertices(grid, mask, t, colors, mesh)
	mesh.Faces = tessellate(vmap, grid.Height, grid.Width, mesh.Faces)

	if opts.Solid {
		extrudeSolid(mesh, vmap, grid.Height, grid.Width, opts.BaseThickness)
	}

	return mesh, nil
}
