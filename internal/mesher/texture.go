package mesher

import (
	"image"

	"github.com/demfold/terramesh/pkg/meshio"
	pmath "github.com/demfold/terramesh/pkg/math"
)

// ApplyTextureColors recolors mesh vertices by sampling a texture at
// each face corner's UV coordinate. faceUVs holds per-corner indices
// into texCoords, parallel to m.Faces, with -1 for corners without a
// coordinate. A vertex referenced by several textured corners gets
// the per-channel arithmetic mean of every sample, truncated to an
// integer; a vertex touched by no textured face falls back to gray.
func ApplyTextureColors(m *meshio.Mesh, faceUVs [][3]int32, texCoords []pmath.Vec2, img image.Image) {
	sums := make([][3]int, len(m.Vertices))
	counts := make([]int, len(m.Vertices))

	for fi, face := range m.Faces {
		if fi >= len(faceUVs) {
			break
		}
		for k, vi := range face {
			ti := faceUVs[fi][k]
			if ti < 0 || int(ti) >= len(texCoords) {
				continue
			}
			c := sampleTexture(img, texCoords[ti])
			sums[vi][0] += int(c[0])
			sums[vi][1] += int(c[1])
			sums[vi][2] += int(c[2])
			counts[vi]++
		}
	}

	for vi := range m.Vertices {
		c := rgbGray
		if n := counts[vi]; n > 0 {
			// Integer division truncates the mean, matching the
			// colors already baked into existing output.
			c = RGB{
				uint8(sums[vi][0] / n),
				uint8(sums[vi][1] / n),
				uint8(sums[vi][2] / n),
			}
		}
		m.Vertices[vi].Color = pmath.Vec3{
			X: float32(c[0]) / 255,
			Y: float32(c[1]) / 255,
			Z: float32(c[2]) / 255,
		}
	}
}

// TextureColorer colors cells by sampling a texture draped over the
// whole grid: cell (row, col) maps to UV (col/(width-1),
// 1-row/(height-1)), so the image's top-left pixel lands on the
// grid's first cell.
type TextureColorer struct {
	img    image.Image
	width  int
	height int
}

// NewTextureColorer drapes img over a width x height grid.
func NewTextureColorer(img image.Image, width, height int) *TextureColorer {
	return &TextureColorer{img: img, width: width, height: height}
}

// CellColor samples the texture at the cell's normalized position.
func (t *TextureColorer) CellColor(row, col int) RGB {
	uv := pmath.Vec2{
		X: float32(col) / float32(t.width-1),
		Y: 1 - float32(row)/float32(t.height-1),
	}
	return sampleTexture(t.img, uv)
}

// GridSize returns the grid dimensions the texture is draped over.
func (t *TextureColorer) GridSize() (int, int) {
	return t.width, t.height
}

// sampleTexture samples the image at a UV coordinate. U and V are
// clamped to [0, 1]; V is flipped so v=0 is the bottom row.
func sampleTexture(img image.Image, uv pmath.Vec2) RGB {
	uv = uv.Clamp01()
	b := img.Bounds()
	w := b.Dx()
	h := b.Dy()

	x := b.Min.X + int(float64(uv.X)*float64(w-1))
	y := b.Min.Y + int(float64(1-uv.Y)*float64(h-1))

	r, g, bl, _ := img.At(x, y).RGBA()
	return RGB{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8)}
}
