package gridio

import (
	"strings"
	"testing"
)

const sampleASC = `ncols 3
nrows 2
xllcorner 100.0
yllcorner 200.0
cellsize 10.0
NODATA_value -9999
1.5 2.5 -9999
4.0 5.0 6.0
`

func TestReadASCIIGrid(t *testing.T) {
	asc, err := ReadASCIIGrid(strings.NewReader(sampleASC))
	if err != nil {
		t.Fatalf("ReadASCIIGrid failed: %v", err)
	}

	if asc.Grid.Width != 3 || asc.Grid.Height != 2 {
		t.Fatalf("expected 3x2 grid, got %dx%d", asc.Grid.Width, asc.Grid.Height)
	}
	if asc.Grid.At(0, 0) != 1.5 || asc.Grid.At(1, 2) != 6.0 {
		t.Errorf("unexpected samples: %v", asc.Grid.Values)
	}

	if !asc.HasNoData || asc.NoData != -9999 {
		t.Errorf("expected nodata -9999, got %v (has=%v)", asc.NoData, asc.HasNoData)
	}
	if asc.Mask.At(0, 2) {
		t.Error("nodata cell should be invalid")
	}
	if !asc.Mask.At(0, 0) || !asc.Mask.At(1, 2) {
		t.Error("data cells should be valid")
	}
	if asc.Mask.ValidCount() != 5 {
		t.Errorf("expected 5 valid cells, got %d", asc.Mask.ValidCount())
	}

	// Row 0 of the file is the northern edge: originY sits one grid
	// height above yllcorner and rows step south.
	if asc.Geo.OriginX != 100 || asc.Geo.OriginY != 220 {
		t.Errorf("unexpected origin: (%f, %f)", asc.Geo.OriginX, asc.Geo.OriginY)
	}
	if asc.Geo.PixelWidth != 10 || asc.Geo.PixelHeight != -10 {
		t.Errorf("unexpected pixel size: (%f, %f)", asc.Geo.PixelWidth, asc.Geo.PixelHeight)
	}
}

func TestReadASCIIGrid_NoNodata(t *testing.T) {
	input := "ncols 2\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n3 4\n"
	asc, err := ReadASCIIGrid(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadASCIIGrid failed: %v", err)
	}
	if asc.HasNoData {
		t.Error("expected no nodata value")
	}
	if asc.Mask.ValidCount() != 4 {
		t.Errorf("expected full mask, got %d valid", asc.Mask.ValidCount())
	}
}

func TestReadASCIIGrid_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing ncols", "nrows 2\ncellsize 1\n1 2\n"},
		{"missing cellsize", "ncols 2\nnrows 1\n1 2\n"},
		{"short data", "ncols 2\nnrows 2\ncellsize 1\n1 2 3\n"},
		{"bad sample", "ncols 1\nnrows 1\ncellsize 1\nabc\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadASCIIGrid(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReadJSONGrid(t *testing.T) {
	input := `[[1.0, 2.0, null], [3.5, null, 4.5]]`
	grid, mask, err := ReadJSONGrid(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSONGrid failed: %v", err)
	}

	if grid.Width != 3 || grid.Height != 2 {
		t.Fatalf("expected 3x2, got %dx%d", grid.Width, grid.Height)
	}
	if grid.At(1, 0) != 3.5 {
		t.Errorf("expected 3.5 at (1,0), got %f", grid.At(1, 0))
	}
	if mask.At(0, 2) || mask.At(1, 1) {
		t.Error("null samples should be invalid")
	}
	if mask.ValidCount() != 4 {
		t.Errorf("expected 4 valid cells, got %d", mask.ValidCount())
	}
}

func TestReadJSONGrid_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "nope"},
		{"empty", "[]"},
		{"ragged", "[[1,2],[3]]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ReadJSONGrid(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
