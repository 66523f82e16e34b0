package mesher

// RGB is an 8-bit color triple.
type RGB [3]uint8

// rgbGray is the sentinel color for cells without a defined color.
var rgbGray = RGB{128, 128, 128}

// CellColorer yields the color of a grid cell. One strategy is fixed
// for an entire build.
type CellColorer interface {
	CellColor(row, col int) RGB
}

// gridSized is implemented by colorers tied to grid dimensions so the
// build can reject shape disagreements up front.
type gridSized interface {
	GridSize() (width, height int)
}

// Palette maps integer zone ids to colors.
type Palette map[int]RGB

// DefaultPalette returns the stock zone classification palette.
func DefaultPalette() Palette {
	return Palette{
		0: {255, 140, 0}, // orange
		1: {255, 255, 0}, // yellow
		2: {0, 200, 0},   // green
		3: {255, 165, 0}, // light orange
		4: {200, 200, 0}, // yellow-green
	}
}

// PaletteColorer colors cells by zone id lookup. Unmapped zone ids
// resolve to gray.
type PaletteColorer struct {
	zones   *Grid
	palette Palette
}

// NewPaletteColorer builds a palette colorer over a zone-id grid. A nil
// palette uses DefaultPalette.
func NewPaletteColorer(zones *Grid, palette Palette) *PaletteColorer {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &PaletteColorer{zones: zones, palette: palette}
}

// CellColor returns the palette color of the cell's zone id.
func (p *PaletteColorer) CellColor(row, col int) RGB {
	if c, ok := p.palette[int(p.zones.At(row, col))]; ok {
		return c
	}
	return rgbGray
}

// GridSize returns the zone grid dimensions.
func (p *PaletteColorer) GridSize() (int, int) {
	return p.zones.Width, p.zones.Height
}

// GradientColorer maps auxiliary values onto a red-to-green ramp: the
// minimum value is red (255,0,0), the maximum is green (0,255,0).
type GradientColorer struct {
	aux  *Grid
	min  float64
	span float64
}

// NewGradientColorer builds a gradient colorer over an auxiliary grid.
// The value range is fixed at construction; a degenerate range maps
// every cell to the low end of the ramp.
func NewGradientColorer(aux *Grid) *GradientColorer {
	min, max := aux.Range()
	return &GradientColorer{aux: aux, min: min, span: max - min}
}

// CellColor returns the ramp color for the cell's value.
func (g *GradientColorer) CellColor(row, col int) RGB {
	t := 0.0
	if g.span > 0 {
		t = (g.aux.At(row, col) - g.min) / g.span
	}
	return RGB{uint8((1 - t) * 255), uint8(t * 255), 0}
}

// GridSize returns the auxiliary grid dimensions.
func (g *GradientColorer) GridSize() (int, int) {
	return g.aux.Width, g.aux.Height
}

// ColorGrid is a precomputed per-cell color array. Cells never written
// keep the gray sentinel.
type ColorGrid struct {
	Width  int
	Height int
	Colors []RGB
}

// NewColorGrid returns a color grid filled with the gray sentinel.
func NewColorGrid(width, height int) *ColorGrid {
	colors := make([]RGB, width*height)
	for i := range colors {
		colors[i] = rgbGray
	}
	return &ColorGrid{Width: width, Height: height, Colors: colors}
}

// BakeColors evaluates a colorer over a full grid once.
func BakeColors(c CellColorer, width, height int) *ColorGrid {
	cg := NewColorGrid(width, height)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			cg.Colors[row*width+col] = c.CellColor(row, col)
		}
	}
	return cg
}

// CellColor returns the stored color at (row, col).
func (c *ColorGrid) CellColor(row, col int) RGB {
	return c.Colors[row*c.Width+col]
}

// GridSize returns the color grid dimensions.
func (c *ColorGrid) GridSize() (int, int) {
	return c.Width, c.Height
}

// grayColorer is the fallback when no color source is supplied.
type grayColorer struct{}

func (grayColorer) CellColor(row, col int) RGB { return rgbGray }

// strideColorer adapts a colorer to a downsampled grid by mapping
// cells back to the original grid coordinates.
type strideColorer struct {
	inner  CellColorer
	stride int
}

func (s strideColorer) CellColor(row, col int) RGB {
	return s.inner.CellColor(row*s.stride, col*s.stride)
}
