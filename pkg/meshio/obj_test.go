package meshio

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	pmath "github.com/demfold/terramesh/pkg/math"
)

func testMesh() *Mesh {
	return &Mesh{
		Vertices: []Vertex{
			{Position: pmath.Vec3{X: -1, Y: -1, Z: 0}, Color: pmath.Vec3{X: 1, Y: 0, Z: 0}},
			{Position: pmath.Vec3{X: 1, Y: -1, Z: 0.5}, Color: pmath.Vec3{X: 0, Y: 1, Z: 0}},
			{Position: pmath.Vec3{X: 1, Y: 1, Z: 1}, Color: pmath.Vec3{X: 0, Y: 0, Z: 1}},
			{Position: pmath.Vec3{X: -1, Y: 1, Z: 0.25}, Color: pmath.Vec3{X: 0.5, Y: 0.5, Z: 0.5}},
		},
		Faces: [][3]int32{{0, 1, 2}, {0, 2, 3}},
	}
}

func TestWriteOBJ_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, testMesh(), nil); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	want := "v -1.000000 -1.000000 0.000000 1.000 0.000 0.000\n" +
		"v 1.000000 -1.000000 0.500000 0.000 1.000 0.000\n" +
		"v 1.000000 1.000000 1.000000 0.000 0.000 1.000\n" +
		"v -1.000000 1.000000 0.250000 0.500 0.500 0.500\n" +
		"f 1 2 3\n" +
		"f 1 3 4\n"

	if buf.String() != want {
		t.Errorf("unexpected OBJ output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteOBJ_CommentsAndMaterial(t *testing.T) {
	var buf bytes.Buffer
	opts := &OBJOptions{
		Comments: []string{"Terrain Model", "Size: 2 x 2"},
		MTLLib:   "terrain.mtl",
	}
	if err := WriteOBJ(&buf, testMesh(), opts); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"# Terrain Model\n", "# Size: 2 x 2\n", "mtllib terrain.mtl\n", "usemtl terrain\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestWriteOBJ_BadFaceIndex(t *testing.T) {
	m := testMesh()
	m.Faces = append(m.Faces, [3]int32{0, 1, 9})

	err := WriteOBJ(&bytes.Buffer{}, m, nil)
	var fie *FaceIndexError
	if !errors.As(err, &fie) {
		t.Fatalf("expected FaceIndexError, got %v", err)
	}
	if fie.Index != 9 {
		t.Errorf("expected offending index 9, got %d", fie.Index)
	}
}

func TestReadOBJ_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	src := testMesh()
	if err := WriteOBJ(&buf, src, &OBJOptions{Comments: []string{"round trip"}}); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	model, err := ReadOBJ(&buf)
	if err != nil {
		t.Fatalf("ReadOBJ failed: %v", err)
	}

	if len(model.Mesh.Vertices) != len(src.Vertices) {
		t.Fatalf("expected %d vertices, got %d", len(src.Vertices), len(model.Mesh.Vertices))
	}
	if model.ColoredVertices != len(src.Vertices) {
		t.Errorf("expected all vertices colored, got %d", model.ColoredVertices)
	}
	if len(model.Mesh.Faces) != len(src.Faces) {
		t.Fatalf("expected %d faces, got %d", len(src.Faces), len(model.Mesh.Faces))
	}
	for i, v := range model.Mesh.Vertices {
		if v.Position != src.Vertices[i].Position {
			t.Errorf("vertex %d: expected %v, got %v", i, src.Vertices[i].Position, v.Position)
		}
	}
	for i, f := range model.Mesh.Faces {
		if f != src.Faces[i] {
			t.Errorf("face %d: expected %v, got %v", i, src.Faces[i], f)
		}
	}
}

func TestReadOBJ_TexturedFaces(t *testing.T) {
	input := `# textured quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1 2/2 3/3 4/4
`
	model, err := ReadOBJ(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadOBJ failed: %v", err)
	}

	// Quad fans into two triangles.
	if len(model.Mesh.Faces) != 2 {
		t.Fatalf("expected 2 faces, got %d", len(model.Mesh.Faces))
	}
	if model.Mesh.Faces[0] != [3]int32{0, 1, 2} || model.Mesh.Faces[1] != [3]int32{0, 2, 3} {
		t.Errorf("unexpected fan: %v", model.Mesh.Faces)
	}
	if len(model.TexCoords) != 4 {
		t.Fatalf("expected 4 texcoords, got %d", len(model.TexCoords))
	}
	if model.FaceUVs[0] != [3]int32{0, 1, 2} || model.FaceUVs[1] != [3]int32{0, 2, 3} {
		t.Errorf("unexpected face UVs: %v", model.FaceUVs)
	}
	if model.ColoredVertices != 0 {
		t.Errorf("expected no colored vertices, got %d", model.ColoredVertices)
	}
}

func TestReadOBJ_NegativeIndices(t *testing.T) {
	input := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	model, err := ReadOBJ(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadOBJ failed: %v", err)
	}
	if model.Mesh.Faces[0] != [3]int32{0, 1, 2} {
		t.Errorf("expected resolved face (0,1,2), got %v", model.Mesh.Faces[0])
	}
}

func TestReadOBJ_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"short vertex", "v 1 2\n", ErrMalformedVertex},
		{"bad float", "v a b c\n", ErrMalformedVertex},
		{"short face", "v 0 0 0\nf 1 1\n", ErrMalformedFace},
		{"zero index", "v 0 0 0\nf 0 1 1\n", ErrMalformedFace},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadOBJ(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestReadOBJ_DanglingFaceIndex(t *testing.T) {
	input := "v 0 0 0\nv 1 0 0\nf 1 2 3\n"
	_, err := ReadOBJ(strings.NewReader(input))
	var fie *FaceIndexError
	if !errors.As(err, &fie) {
		t.Fatalf("expected FaceIndexError, got %v", err)
	}
}

func TestWriteMTL(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMTL(&buf, "terrain"); err != nil {
		t.Fatalf("WriteMTL failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"newmtl terrain", "Kd 1.0 1.0 1.0", "illum 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("MTL output missing %q", want)
		}
	}
}
