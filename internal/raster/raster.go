package raster

import (
	"errors"
	"math"
)

// Sentinel errors returned by the analysis packages. All are detected
// eagerly, before any output is allocated.
var (
	// ErrShapeMismatch indicates two grids that must share a shape do not.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrUnknownMethod indicates an unrecognized water index formula name.
	ErrUnknownMethod = errors.New("unknown method")

	// ErrMissingBand indicates a band required by the chosen formula was
	// not supplied.
	ErrMissingBand = errors.New("missing band")

	// ErrInsufficientInput indicates fewer masks than a series comparison
	// needs.
	ErrInsufficientInput = errors.New("insufficient input")

	// ErrInvalidParameter indicates a scalar parameter outside its valid
	// range, such as a non-positive pixel size.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Change classification labels. Exactly one applies per cell; the four label
// sets partition every pair of same-shaped masks.
const (
	ClassStableNonWater uint8 = 0
	ClassStableWater    uint8 = 1
	ClassWaterLoss      uint8 = 2
	ClassWaterGain      uint8 = 3
)

// Band is a 2-D grid of reflectance values. Bands are caller-owned and never
// mutated by any operation in this module.
type Band [][]float64

// Rows returns the number of rows in the band.
func (b Band) Rows() int { return len(b) }

// Cols returns the number of columns in the band, 0 for an empty band.
func (b Band) Cols() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// SameShape reports whether b and o have identical dimensions.
func (b Band) SameShape(o Band) bool {
	return b.Rows() == o.Rows() && b.Cols() == o.Cols()
}

// Validate checks that every row has the same length. Grids decoded from
// JSON can be ragged; all analysis entry points assume rectangular input.
func (b Band) Validate() error {
	for _, row := range b {
		if len(row) != b.Cols() {
			return ErrShapeMismatch
		}
	}
	return nil
}

// WaterMask is a binary 2-D grid where 1 marks water and 0 marks non-water.
// Any non-zero cell is interpreted as water.
type WaterMask [][]uint8

// Rows returns the number of rows in the mask.
func (m WaterMask) Rows() int { return len(m) }

// Cols returns the number of columns in the mask, 0 for an empty mask.
func (m WaterMask) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// SameShape reports whether m and o have identical dimensions.
func (m WaterMask) SameShape(o WaterMask) bool {
	return m.Rows() == o.Rows() && m.Cols() == o.Cols()
}

// Validate checks that every row has the same length.
func (m WaterMask) Validate() error {
	for _, row := range m {
		if len(row) != m.Cols() {
			return ErrShapeMismatch
		}
	}
	return nil
}

// WaterPixels returns the count of non-zero cells.
func (m WaterMask) WaterPixels() int {
	count := 0
	for _, row := range m {
		for _, v := range row {
			if v != 0 {
				count++
			}
		}
	}
	return count
}

// NewWaterMask allocates a zeroed mask with the given dimensions.
func NewWaterMask(rows, cols int) WaterMask {
	m := make(WaterMask, rows)
	for r := range m {
		m[r] = make([]uint8, cols)
	}
	return m
}

// ChangeMap is a 2-D grid of change classification labels (the Class*
// constants above).
type ChangeMap [][]uint8

// Rows returns the number of rows in the change map.
func (c ChangeMap) Rows() int { return len(c) }

// Cols returns the number of columns in the change map, 0 when empty.
func (c ChangeMap) Cols() int {
	if len(c) == 0 {
		return 0
	}
	return len(c[0])
}

// NewChangeMap allocates a change map with every cell set to
// ClassStableNonWater.
func NewChangeMap(rows, cols int) ChangeMap {
	c := make(ChangeMap, rows)
	for r := range c {
		c[r] = make([]uint8, cols)
	}
	return c
}

// WaterIndex is a normalized difference index with explicit per-cell
// validity. Values holds NaN at undefined cells for export convenience, but
// Defined is authoritative: thresholding and statistics consult it instead
// of testing for NaN.
type WaterIndex struct {
	Values  [][]float64
	Defined [][]bool
}

// NewWaterIndex allocates an index where every cell is undefined.
func NewWaterIndex(rows, cols int) *WaterIndex {
	idx := &WaterIndex{
		Values:  make([][]float64, rows),
		Defined: make([][]bool, rows),
	}
	for r := 0; r < rows; r++ {
		idx.Values[r] = make([]float64, cols)
		idx.Defined[r] = make([]bool, cols)
		for c := 0; c < cols; c++ {
			idx.Values[r][c] = math.NaN()
		}
	}
	return idx
}

// Rows returns the number of rows in the index.
func (w *WaterIndex) Rows() int { return len(w.Values) }

// Cols returns the number of columns in the index, 0 when empty.
func (w *WaterIndex) Cols() int {
	if len(w.Values) == 0 {
		return 0
	}
	return len(w.Values[0])
}

// Set assigns a defined value to a cell.
func (w *WaterIndex) Set(r, c int, v float64) {
	w.Values[r][c] = v
	w.Defined[r][c] = true
}

// At returns the value at a cell and whether it is defined. The value is NaN
// whenever the cell is undefined.
func (w *WaterIndex) At(r, c int) (float64, bool) {
	return w.Values[r][c], w.Defined[r][c]
}

// DefinedCount returns the number of defined cells.
func (w *WaterIndex) DefinedCount() int {
	count := 0
	for _, row := range w.Defined {
		for _, d := range row {
			if d {
				count++
			}
		}
	}
	return count
}

// DefinedValues collects the values of all defined cells in row-major order.
// The returned slice is freshly allocated.
func (w *WaterIndex) DefinedValues() []float64 {
	vals := make([]float64, 0, w.Rows()*w.Cols())
	for r, row := range w.Defined {
		for c, d := range row {
			if d {
				vals = append(vals, w.Values[r][c])
			}
		}
	}
	return vals
}
