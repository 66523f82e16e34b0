package gridio

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/demfold/terramesh/internal/mesher"
)

// ReadJSONGrid reads a grid as a JSON 2D array of numbers, outer
// dimension rows. null entries mark invalid samples.
func ReadJSONGrid(r io.Reader) (*mesher.Grid, *mesher.Mask, error) {
	var object [][]*float64
	dec := json.NewDecoder(r)
	if err := dec.Decode(&object); err != nil {
		return nil, nil, errors.Wrap(err, "read json grid")
	}

	height := len(object)
	if height == 0 {
		return nil, nil, errors.New("read json grid: empty array")
	}
	width := len(object[0])

	values := make([]float64, 0, height*width)
	bits := make([]bool, 0, height*width)
	for _, row := range object {
		if len(row) != width {
			return nil, nil, errors.New("read json grid: ragged rows")
		}
		for _, v := range row {
			if v == nil {
				values = append(values, 0)
				bits = append(bits, false)
				continue
			}
			values = append(values, *v)
			bits = append(bits, true)
		}
	}

	grid, err := mesher.NewGrid(width, height, values)
	if err != nil {
		return nil, nil, errors.Wrap(err, "read json grid")
	}
	mask, err := mesher.NewMask(width, height, bits)
	if err != nil {
		return nil, nil, errors.Wrap(err, "read json grid")
	}
	return grid, mask, nil
}

// LoadJSONGrid reads a JSON grid from disk.
func LoadJSONGrid(path string) (*mesher.Grid, *mesher.Mask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "load json grid")
	}
	defer f.Close()
	return ReadJSONGrid(f)
}
