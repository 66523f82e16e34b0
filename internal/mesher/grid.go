// Package mesher converts heightfield grids into triangulated 3D
// surface meshes, optionally extruded into closed printable solids.
package mesher

import (
	"errors"
	"fmt"
)

// Input errors.
var (
	ErrEmptyGrid         = errors.New("grid has no valid samples")
	ErrDimensionMismatch = errors.New("grid dimensions mismatch")
	ErrGridTooSmall      = errors.New("grid must be at least 2x2")
)

// Grid is a dense 2D array of samples, row-major. It is treated as
// immutable once constructed.
type Grid struct {
	Width  int
	Height int
	Values []float64
}

// NewGrid wraps row-major sample values in a Grid.
func NewGrid(width, height int, values []float64) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrGridTooSmall, width, height)
	}
	if len(values) != width*height {
		return nil, fmt.Errorf("%w: %d values for %dx%d grid", ErrDimensionMismatch, len(values), width, height)
	}
	return &Grid{Width: width, Height: height, Values: values}, nil
}

// At returns the sample at (row, col).
func (g *Grid) At(row, col int) float64 {
	return g.Values[row*g.Width+col]
}

// Range returns the minimum and maximum over all samples.
func (g *Grid) Range() (min, max float64) {
	min = g.Values[0]
	max = g.Values[0]
	for _, v := range g.Values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// ValidRange returns the minimum and maximum over samples marked valid
// by the mask. It fails with ErrEmptyGrid when no sample is valid.
func (g *Grid) ValidRange(mask *Mask) (min, max float64, err error) {
	found := false
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if !mask.At(row, col) {
				continue
			}
			v := g.At(row, col)
			if !found {
				min, max = v, v
				found = true
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	if !found {
		return 0, 0, ErrEmptyGrid
	}
	return min, max, nil
}

// Downsample returns a new grid keeping every stride-th row and column.
// A stride of 1 returns the grid unchanged.
func (g *Grid) Downsample(stride int) *Grid {
	if stride <= 1 {
		return g
	}
	w := (g.Width + stride - 1) / stride
	h := (g.Height + stride - 1) / stride
	values := make([]float64, 0, w*h)
	for row := 0; row < g.Height; row += stride {
		for col := 0; col < g.Width; col += stride {
			values = append(values, g.At(row, col))
		}
	}
	return &Grid{Width: w, Height: h, Values: values}
}

// Mask marks which grid samples carry real data.
type Mask struct {
	Width  int
	Height int
	Bits   []bool
}

// NewMask wraps row-major validity bits in a Mask.
func NewMask(width, height int, bits []bool) (*Mask, error) {
	if len(bits) != width*height {
		return nil, fmt.Errorf("%w: %d bits for %dx%d mask", ErrDimensionMismatch, len(bits), width, height)
	}
	return &Mask{Width: width, Height: height, Bits: bits}, nil
}

// FullMask returns a mask with every sample valid.
func FullMask(width, height int) *Mask {
	bits := make([]bool, width*height)
	for i := range bits {
		bits[i] = true
	}
	return &Mask{Width: width, Height: height, Bits: bits}
}

// At reports whether the sample at (row, col) is valid.
func (m *Mask) At(row, col int) bool {
	return m.Bits[row*m.Width+col]
}

// Set marks the validity of the sample at (row, col).
func (m *Mask) Set(row, col int, valid bool) {
	m.Bits[row*m.Width+col] = valid
}

// ValidCount returns the number of valid samples.
func (m *Mask) ValidCount() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// Downsample returns a new mask keeping every stride-th row and column.
func (m *Mask) Downsample(stride int) *Mask {
	if stride <= 1 {
		return m
	}
	w := (m.Width + stride - 1) / stride
	h := (m.Height + stride - 1) / stride
	bits := make([]bool, 0, w*h)
	for row := 0; row < m.Height; row += stride {
		for col := 0; col < m.Width; col += stride {
			bits = append(bits, m.At(row, col))
		}
	}
	return &Mask{Width: w, Height: h, Bits: bits}
}
