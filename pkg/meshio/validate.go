package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// OBJStats summarizes the contents of an OBJ file for validation.
type OBJStats struct {
	Vertices        int
	ColoredVertices int
	TexCoords       int
	Normals         int
	Faces           int

	// NegativeIndexFaces counts faces using relative (negative)
	// indices, which some tools cannot read.
	NegativeIndexFaces int
	// MaxVertexIndex is the highest 1-based vertex index referenced
	// by any face.
	MaxVertexIndex int
}

// Problems returns human-readable issues found in the file, or nil
// when the file looks usable.
func (s *OBJStats) Problems() []string {
	var out []string
	if s.Vertices == 0 {
		out = append(out, "no vertices")
	}
	if s.Faces == 0 {
		out = append(out, "no faces")
	}
	if s.NegativeIndexFaces > 0 {
		out = append(out, fmt.Sprintf("%d faces use negative indices", s.NegativeIndexFaces))
	}
	if s.MaxVertexIndex > s.Vertices {
		out = append(out, fmt.Sprintf("faces reference vertex %d but only %d vertices exist", s.MaxVertexIndex, s.Vertices))
	}
	if s.ColoredVertices > 0 && s.ColoredVertices < s.Vertices {
		out = append(out, fmt.Sprintf("only %d of %d vertices carry color", s.ColoredVertices, s.Vertices))
	}
	return out
}

// ValidateOBJ scans an OBJ file and collects statistics without
// building geometry. It only fails on I/O errors; structural issues
// are reported via OBJStats.Problems.
func ValidateOBJ(r io.Reader) (*OBJStats, error) {
	stats := &OBJStats{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			stats.Vertices++
			if len(fields) >= 7 {
				stats.ColoredVertices++
			}
		case "vt":
			stats.TexCoords++
		case "vn":
			stats.Normals++
		case "f":
			stats.Faces++
			negative := false
			for _, corner := range fields[1:] {
				idxStr := corner
				if i := strings.IndexByte(corner, '/'); i >= 0 {
					idxStr = corner[:i]
				}
				idx, err := strconv.Atoi(idxStr)
				if err != nil {
					continue
				}
				if idx < 0 {
					negative = true
				} else if idx > stats.MaxVertexIndex {
					stats.MaxVertexIndex = idx
				}
			}
			if negative {
				stats.NegativeIndexFaces++
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning OBJ: %w", err)
	}

	return stats, nil
}
