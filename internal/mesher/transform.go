package mesher

import (
	pmath "github.com/demfold/terramesh/pkg/math"
)

// CoordMode selects how grid cells map to X/Y positions.
type CoordMode int

const (
	// CoordNormalizedCell maps (col/width)*2-1. Kept alongside
	// CoordNormalizedEdge because both denominators are in use by
	// existing output; unifying them would silently move geometry.
	CoordNormalizedCell CoordMode = iota
	// CoordNormalizedEdge maps (col/(width-1))*2-1, so border
	// vertices land exactly on -1 and 1.
	CoordNormalizedEdge
	// CoordGeoreferenced applies the affine image-to-world transform
	// and keeps elevations in raw linear units.
	CoordGeoreferenced
)

// String returns the mode name as used in config files.
func (m CoordMode) String() string {
	switch m {
	case CoordNormalizedCell:
		return "normalized-cell"
	case CoordNormalizedEdge:
		return "normalized-edge"
	case CoordGeoreferenced:
		return "georeferenced"
	default:
		return "unknown"
	}
}

// GeoTransform is the six-value affine image-to-world transform:
// originX, pixelWidth, rotX, originY, rotY, pixelHeight. The rotation
// terms are carried for interface compatibility but not applied.
type GeoTransform struct {
	OriginX     float64
	PixelWidth  float64
	RotX        float64
	OriginY     float64
	RotY        float64
	PixelHeight float64
}

// Apply maps a (row, col) cell to world X/Y.
func (gt GeoTransform) Apply(row, col float64) (x, y float64) {
	return gt.OriginX + col*gt.PixelWidth, gt.OriginY + row*gt.PixelHeight
}

// transform maps grid cells to 3D positions for one build. Elevation
// statistics are computed once up front.
type transform struct {
	mode    CoordMode
	width   int
	height  int
	zScale  float64
	minElev float64
	// elevRange is max-min over valid samples; zero means a flat
	// grid, which normalizes to 0 rather than dividing by zero.
	elevRange float64
	geo       GeoTransform
	centerX   float64
	centerY   float64
	centerZ   float64
}

func newTransform(g *Grid, mask *Mask, opts BuildOptions) (*transform, error) {
	min, max, err := g.ValidRange(mask)
	if err != nil {
		return nil, err
	}

	t := &transform{
		mode:      opts.Mode,
		width:     g.Width,
		height:    g.Height,
		zScale:    opts.ZScale,
		minElev:   min,
		elevRange: max - min,
		geo:       opts.Geo,
	}

	if opts.Mode == CoordGeoreferenced && opts.Center {
		x0, y0 := opts.Geo.Apply(0, 0)
		x1, y1 := opts.Geo.Apply(float64(g.Height-1), float64(g.Width-1))
		t.centerX = (x0 + x1) / 2
		t.centerY = (y0 + y1) / 2
		t.centerZ = (min + max) / 2
	}

	return t, nil
}

// normalized maps an elevation linearly into [0, 1] over the valid
// range. A degenerate range maps everything to 0.
func (t *transform) normalized(elev float64) float64 {
	if t.elevRange == 0 {
		return 0
	}
	return (elev - t.minElev) / t.elevRange
}

// position returns the 3D position of the sample at (row, col).
func (t *transform) position(row, col int, elev float64) pmath.Vec3 {
	switch t.mode {
	case CoordNormalizedCell:
		return pmath.Vec3{
			X: float32((float64(col)/float64(t.width))*2 - 1),
			Y: float32((float64(row)/float64(t.height))*2 - 1),
			Z: float32(t.normalized(elev) * t.zScale),
		}
	case CoordNormalizedEdge:
		return pmath.Vec3{
			X: float32((float64(col)/float64(t.width-1))*2 - 1),
			Y: float32((float64(row)/float64(t.height-1))*2 - 1),
			Z: float32(t.normalized(elev) * t.zScale),
		}
	default: // CoordGeoreferenced
		x, y := t.geo.Apply(float64(row), float64(col))
		return pmath.Vec3{
			X: float32(x - t.centerX),
			Y: float32(y - t.centerY),
			Z: float32((elev - t.centerZ) * t.zScale),
		}
	}
}
