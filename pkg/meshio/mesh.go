// Package meshio provides readers and writers for triangle mesh file
// formats: OBJ text meshes with per-vertex colors and binary STL.
package meshio

import (
	pmath "github.com/demfold/terramesh/pkg/math"
)

// Vertex is a mesh vertex with position and color.
// Color channels are in the 0..1 range.
type Vertex struct {
	Position pmath.Vec3
	Color    pmath.Vec3
}

// Mesh is an indexed triangle mesh. Faces hold 0-based vertex indices;
// each serializer applies its own index convention on output.
type Mesh struct {
	Vertices []Vertex
	Faces    [][3]int32
}

// Bounds returns the axis-aligned bounding box of the mesh vertices.
// A mesh with no vertices returns two zero vectors.
func (m *Mesh) Bounds() (min, max pmath.Vec3) {
	if len(m.Vertices) == 0 {
		return pmath.Vec3{}, pmath.Vec3{}
	}
	min = m.Vertices[0].Position
	max = min
	for _, v := range m.Vertices[1:] {
		min = min.Min(v.Position)
		max = max.Max(v.Position)
	}
	return min, max
}

// FaceNormal computes the unit normal of face i as the normalized cross
// product of its edge vectors. A degenerate (near-zero-area) face yields
// the zero vector.
func (m *Mesh) FaceNormal(i int) pmath.Vec3 {
	f := m.Faces[i]
	v1 := m.Vertices[f[0]].Position
	v2 := m.Vertices[f[1]].Position
	v3 := m.Vertices[f[2]].Position
	return v2.Sub(v1).Cross(v3.Sub(v1)).Normalize()
}

// checkFaces verifies that every face references an existing vertex.
func (m *Mesh) checkFaces() error {
	n := int32(len(m.Vertices))
	for i, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return &FaceIndexError{Face: i, Index: idx, VertexCount: n}
			}
		}
	}
	return nil
}
