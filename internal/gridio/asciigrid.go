// Package gridio loads heightfield grids, zone grids and texture
// images from disk for the mesher.
package gridio

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/demfold/terramesh/internal/mesher"
)

// ASCIIGrid is a parsed ESRI ASCII raster: the sample grid, the
// validity mask derived from the nodata value, and the affine
// transform reconstructed from the header.
type ASCIIGrid struct {
	Grid      *mesher.Grid
	Mask      *mesher.Mask
	Geo       mesher.GeoTransform
	NoData    float64
	HasNoData bool
}

// ReadASCIIGrid parses an ESRI ASCII grid (.asc). The header carries
// ncols, nrows, xllcorner, yllcorner, cellsize and an optional
// NODATA_value; sample rows follow north to south.
func ReadASCIIGrid(r io.Reader) (*ASCIIGrid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	header := map[string]float64{}
	var values []float64

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		// Header lines are "key value" pairs with a non-numeric key.
		if len(fields) == 2 && values == nil {
			if _, err := strconv.ParseFloat(fields[0], 64); err != nil {
				v, err := strconv.ParseFloat(fields[1], 64)
				if err != nil {
					return nil, errors.Wrapf(err, "read ascii grid: header %q", fields[0])
				}
				header[strings.ToLower(fields[0])] = v
				continue
			}
		}

		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "read ascii grid: sample %q", f)
			}
			values = append(values, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read ascii grid")
	}

	ncols, ok := header["ncols"]
	if !ok {
		return nil, errors.New("read ascii grid: missing ncols")
	}
	nrows, ok := header["nrows"]
	if !ok {
		return nil, errors.New("read ascii grid: missing nrows")
	}
	cellsize, ok := header["cellsize"]
	if !ok {
		return nil, errors.New("read ascii grid: missing cellsize")
	}

	width := int(ncols)
	height := int(nrows)
	if len(values) != width*height {
		return nil, errors.Errorf("read ascii grid: %d samples for %dx%d grid", len(values), width, height)
	}

	grid, err := mesher.NewGrid(width, height, values)
	if err != nil {
		return nil, errors.Wrap(err, "read ascii grid")
	}

	out := &ASCIIGrid{
		Grid: grid,
		Geo: mesher.GeoTransform{
			OriginX:     header["xllcorner"],
			PixelWidth:  cellsize,
			OriginY:     header["yllcorner"] + nrows*cellsize,
			PixelHeight: -cellsize,
		},
	}

	if nodata, ok := header["nodata_value"]; ok {
		out.NoData = nodata
		out.HasNoData = true
		bits := make([]bool, len(values))
		for i, v := range values {
			bits[i] = v != nodata
		}
		out.Mask, _ = mesher.NewMask(width, height, bits)
	} else {
		out.Mask = mesher.FullMask(width, height)
	}

	return out, nil
}

// LoadASCIIGrid reads an ESRI ASCII grid from disk.
func LoadASCIIGrid(path string) (*ASCIIGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "load ascii grid")
	}
	defer f.Close()
	return ReadASCIIGrid(f)
}
