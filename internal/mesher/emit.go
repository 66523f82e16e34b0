package mesher

import (
	pmath "github.com/demfold/terramesh/pkg/math"
	"github.com/demfold/terramesh/pkg/meshio"
)

// absent marks a grid cell with no emitted vertex.
const absent int32 = -1

// vertexIndexMap records the mesh index assigned to each grid cell.
// It is built in one ordered pass and read-only afterwards.
type vertexIndexMap struct {
	width int
	idx   []int32
}

func newVertexIndexMap(width, height int) *vertexIndexMap {
	idx := make([]int32, width*height)
	for i := range idx {
		idx[i] = absent
	}
	return &vertexIndexMap{width: width, idx: idx}
}

func (m *vertexIndexMap) at(row, col int) int32 {
	return m.idx[row*m.width+col]
}

func (m *vertexIndexMap) set(row, col int, i int32) {
	m.idx[row*m.width+col] = i
}

// emitVertices walks valid cells in row-major order, appending one
// vertex per valid cell and recording its index. Emission order
// defines the final vertex numbering, so the pass must stay strictly
// ordered.
func emitVertices(g *Grid, mask *Mask, t *transform, colors CellColorer, mesh *meshio.Mesh) *vertexIndexMap {
	vmap := newVertexIndexMap(g.Width, g.Height)

	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if !mask.At(row, col) {
				continue
			}
			c := colors.CellColor(row, col)
			mesh.Vertices = append(mesh.Vertices, meshio.Vertex{
				Position: t.position(row, col, g.At(row, col)),
				Color: pmath.Vec3{
					X: float32(c[0]) / 255,
					Y: float32(c[1]) / 255,
					Z: float32(c[2]) / 255,
				},
			})
			vmap.set(row, col, int32(len(mesh.Vertices)-1))
		}
	}

	return vmap
}
