package mesher

import (
	"github.com/demfold/terramesh/pkg/meshio"
)

// extrudeSolid turns the top surface into a closed solid: a mirrored
// bottom copy of every top vertex at z = -baseThickness, bottom faces
// with reversed winding, and side walls along every boundary edge of
// the tessellated region. Wall winding keeps normals pointing away
// from the solid.
func extrudeSolid(mesh *meshio.Mesh, top *vertexIndexMap, height, width int, baseThickness float64) {
	bottom := newVertexIndexMap(width, height)

	// Mirror every top vertex downward, keeping its color.
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			ti := top.at(row, col)
			if ti == absent {
				continue
			}
			v := mesh.Vertices[ti]
			v.Position.Z = float32(-baseThickness)
			mesh.Vertices = append(mesh.Vertices, v)
			bottom.set(row, col, int32(len(mesh.Vertices)-1))
		}
	}

	quad := func(row, col int) bool {
		if row < 0 || col < 0 || row >= height-1 || col >= width-1 {
			return false
		}
		return top.at(row, col) != absent &&
			top.at(row, col+1) != absent &&
			top.at(row+1, col+1) != absent &&
			top.at(row+1, col) != absent
	}

	// wall connects top and bottom vertex pairs along a boundary edge
	// from (rA,cA) to (rB,cB), ordered so the normals face outward.
	wall := func(rA, cA, rB, cB int) {
		tA := top.at(rA, cA)
		tB := top.at(rB, cB)
		bA := bottom.at(rA, cA)
		bB := bottom.at(rB, cB)
		mesh.Faces = append(mesh.Faces,
			[3]int32{tA, bA, bB},
			[3]int32{tA, bB, tB},
		)
	}

	for row := 0; row < height-1; row++ {
		for col := 0; col < width-1; col++ {
			if !quad(row, col) {
				continue
			}

			// Bottom faces mirror the top tessellation with the 2nd
			// and 3rd indices swapped so normals point downward.
			b1 := bottom.at(row, col)
			b2 := bottom.at(row, col+1)
			b3 := bottom.at(row+1, col+1)
			b4 := bottom.at(row+1, col)
			mesh.Faces = append(mesh.Faces,
				[3]int32{b1, b3, b2},
				[3]int32{b1, b4, b3},
			)

			// A quad side without an emitted neighbor quad is a
			// boundary edge (grid border or hole) and gets a wall.
			if !quad(row-1, col) {
				wall(row, col, row, col+1)
			}
			if !quad(row+1, col) {
				wall(row+1, col+1, row+1, col)
			}
			if !quad(row, col-1) {
				wall(row+1, col, row, col)
			}
			if !quad(row, col+1) {
				wall(row, col+1, row+1, col+1)
			}
		}
	}
}
