package meshio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	pmath "github.com/demfold/terramesh/pkg/math"
)

// STL format errors.
var (
	ErrTruncatedSTL = errors.New("truncated STL data")
)

// stlHeaderSize is the fixed binary STL header length in bytes.
const stlHeaderSize = 80

// DefaultSTLHeader is written when no header text is supplied. The
// header is free-form and never machine-read.
const DefaultSTLHeader = "Binary STL - Terrain Model"

// stlTriangle is the 50-byte little-endian record stored per face:
// face normal, three vertex positions and a trailing attribute field
// that is always zero.
type stlTriangle struct {
	Normal    [3]float32
	Vertices  [3][3]float32
	Attribute uint16
}

// STLTriangle is one triangle read back from a binary STL file.
type STLTriangle struct {
	Normal   pmath.Vec3
	Vertices [3]pmath.Vec3
}

// WriteSTL writes the mesh as a binary STL file: an 80-byte header, a
// little-endian uint32 triangle count, then one 50-byte record per
// face. STL carries no color. Face normals are computed from vertex
// positions; degenerate faces get a zero normal.
func WriteSTL(w io.Writer, m *Mesh, header string) error {
	if err := m.checkFaces(); err != nil {
		return err
	}

	if header == "" {
		header = DefaultSTLHeader
	}
	var hdr [stlHeaderSize]byte
	for i := range hdr {
		hdr[i] = ' '
	}
	copy(hdr[:], header)
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("writing STL header: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(m.Faces))); err != nil {
		return fmt.Errorf("writing STL face count: %w", err)
	}

	for i, f := range m.Faces {
		n := m.FaceNormal(i)
		tri := stlTriangle{
			Normal: [3]float32{n.X, n.Y, n.Z},
		}
		for j, idx := range f {
			p := m.Vertices[idx].Position
			tri.Vertices[j] = [3]float32{p.X, p.Y, p.Z}
		}
		if err := binary.Write(w, binary.LittleEndian, &tri); err != nil {
			return fmt.Errorf("writing STL triangle %d: %w", i, err)
		}
	}

	return nil
}

// ReadSTL parses a binary STL file and returns its triangles. The
// declared triangle count must match the data that follows.
func ReadSTL(r io.Reader) ([]STLTriangle, error) {
	var hdr [stlHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: reading header", ErrTruncatedSTL)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: reading triangle count", ErrTruncatedSTL)
	}

	tris := make([]STLTriangle, 0, count)
	for i := uint32(0); i < count; i++ {
		var raw stlTriangle
		if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
			return nil, fmt.Errorf("%w: reading triangle %d of %d", ErrTruncatedSTL, i, count)
		}
		tri := STLTriangle{
			Normal: pmath.Vec3{X: raw.Normal[0], Y: raw.Normal[1], Z: raw.Normal[2]},
		}
		for j, v := range raw.Vertices {
			tri.Vertices[j] = pmath.Vec3{X: v[0], Y: v[1], Z: v[2]}
		}
		tris = append(tris, tri)
	}

	return tris, nil
}
