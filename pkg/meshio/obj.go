package meshio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	pmath "github.com/demfold/terramesh/pkg/math"
)

// OBJ format errors.
var (
	ErrMalformedVertex = errors.New("malformed vertex line")
	ErrMalformedFace   = errors.New("malformed face line")
)

// FaceIndexError reports a face referencing a vertex that does not exist.
type FaceIndexError struct {
	Face        int
	Index       int32
	VertexCount int32
}

func (e *FaceIndexError) Error() string {
	return fmt.Sprintf("face %d references vertex %d (have %d vertices)", e.Face, e.Index, e.VertexCount)
}

// OBJOptions controls optional parts of the OBJ output.
type OBJOptions struct {
	// Comments are written as '#' lines at the top of the file.
	Comments []string
	// MTLLib, when non-empty, emits mtllib/usemtl references. The
	// material carries no geometric meaning; some viewers want one.
	MTLLib   string
	Material string
}

// WriteOBJ writes the mesh as a Wavefront OBJ file with per-vertex
// colors: one "v x y z r g b" line per vertex in emission order
// (positions at 6 decimals, colors at 3), then one "f i1 i2 i3" line
// per face using 1-based indices.
func WriteOBJ(w io.Writer, m *Mesh, opts *OBJOptions) error {
	if err := m.checkFaces(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	if opts != nil {
		for _, c := range opts.Comments {
			fmt.Fprintf(bw, "# %s\n", c)
		}
		if len(opts.Comments) > 0 {
			fmt.Fprintln(bw)
		}
		if opts.MTLLib != "" {
			mat := opts.Material
			if mat == "" {
				mat = "terrain"
			}
			fmt.Fprintf(bw, "mtllib %s\n", opts.MTLLib)
			fmt.Fprintf(bw, "usemtl %s\n\n", mat)
		}
	}

	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %.6f %.6f %.6f %.3f %.3f %.3f\n",
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Color.X, v.Color.Y, v.Color.Z)
	}
	for _, f := range m.Faces {
		fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1)
	}

	return bw.Flush()
}

// WriteMTL writes a minimal companion material file for an OBJ that
// references material via usemtl.
func WriteMTL(w io.Writer, material string) error {
	if material == "" {
		material = "terrain"
	}
	_, err := fmt.Fprintf(w, "# Material file\nnewmtl %s\nKa 1.0 1.0 1.0\nKd 1.0 1.0 1.0\nKs 0.0 0.0 0.0\nd 1.0\nillum 1\n", material)
	return err
}

// OBJModel is the result of parsing an OBJ file.
type OBJModel struct {
	Mesh Mesh
	// TexCoords holds vt entries in file order.
	TexCoords []pmath.Vec2
	// FaceUVs holds 0-based texture coordinate indices parallel to
	// Mesh.Faces; -1 marks a corner without a texture coordinate.
	FaceUVs [][3]int32
	// ColoredVertices counts vertices that carried r g b components.
	ColoredVertices int
}

// ReadOBJ parses an OBJ file. Comment lines starting with '#' and
// unknown directives are ignored. Faces may use plain indices or the
// v/vt/vn syntax; faces with more than three corners are fanned into
// triangles. Negative (relative) indices are resolved against the
// vertices seen so far.
func ReadOBJ(r io.Reader) (*OBJModel, error) {
	model := &OBJModel{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, colored, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			model.Mesh.Vertices = append(model.Mesh.Vertices, v)
			if colored {
				model.ColoredVertices++
			}
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: %w: want at least 2 components", lineNo, ErrMalformedVertex)
			}
			u, err1 := strconv.ParseFloat(fields[1], 32)
			vv, err2 := strconv.ParseFloat(fields[2], 32)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrMalformedVertex)
			}
			model.TexCoords = append(model.TexCoords, pmath.Vec2{X: float32(u), Y: float32(vv)})
		case "f":
			if err := parseFace(model, fields[1:]); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	if err := model.Mesh.checkFaces(); err != nil {
		return nil, err
	}
	return model, nil
}

// parseVertex parses the fields after "v": x y z with optional r g b.
func parseVertex(fields []string) (Vertex, bool, error) {
	if len(fields) != 3 && len(fields) < 6 {
		return Vertex{}, false, fmt.Errorf("%w: want 3 or 6 components, have %d", ErrMalformedVertex, len(fields))
	}
	var comps [6]float32
	n := 3
	if len(fields) >= 6 {
		n = 6
	}
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return Vertex{}, false, fmt.Errorf("%w: %q", ErrMalformedVertex, fields[i])
		}
		comps[i] = float32(f)
	}
	v := Vertex{Position: pmath.Vec3{X: comps[0], Y: comps[1], Z: comps[2]}}
	if n == 6 {
		v.Color = pmath.Vec3{X: comps[3], Y: comps[4], Z: comps[5]}
		return v, true, nil
	}
	return v, false, nil
}

// parseFace parses the fields after "f" and appends the resulting
// triangles (fan order) to the model.
func parseFace(model *OBJModel, fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("%w: want at least 3 corners, have %d", ErrMalformedFace, len(fields))
	}

	verts := make([]int32, len(fields))
	uvs := make([]int32, len(fields))
	for i, f := range fields {
		vi, ti, err := parseFaceCorner(f, len(model.Mesh.Vertices), len(model.TexCoords))
		if err != nil {
			return err
		}
		verts[i] = vi
		uvs[i] = ti
	}

	for i := 1; i+1 < len(verts); i++ {
		model.Mesh.Faces = append(model.Mesh.Faces, [3]int32{verts[0], verts[i], verts[i+1]})
		model.FaceUVs = append(model.FaceUVs, [3]int32{uvs[0], uvs[i], uvs[i+1]})
	}
	return nil
}

// parseFaceCorner parses one "v", "v/vt", "v//vn" or "v/vt/vn" corner,
// returning 0-based vertex and texcoord indices (-1 when no texcoord).
func parseFaceCorner(s string, nVerts, nTex int) (int32, int32, error) {
	parts := strings.Split(s, "/")

	vi, err := strconv.Atoi(parts[0])
	if err != nil || vi == 0 {
		return 0, 0, fmt.Errorf("%w: vertex index %q", ErrMalformedFace, parts[0])
	}
	if vi < 0 {
		vi = nVerts + vi + 1
	}

	ti := -1
	if len(parts) > 1 && parts[1] != "" {
		t, err := strconv.Atoi(parts[1])
		if err != nil || t == 0 {
			return 0, 0, fmt.Errorf("%w: texcoord index %q", ErrMalformedFace, parts[1])
		}
		if t < 0 {
			t = nTex + t + 1
		}
		ti = t - 1
	}

	return int32(vi - 1), int32(ti), nil
}
