package indices

import (
	"fmt"
	"math"
	"strings"

	"github.com/ironsheep/water-tools-mcp/internal/raster"
)

// ThresholdSelector derives a threshold from the defined values of a water
// index. Implementations receive the values in row-major order and must not
// retain the slice.
type ThresholdSelector interface {
	SelectThreshold(values []float64) (float64, error)
}

// ThresholdOptions controls how ThresholdMask converts an index to a mask.
type ThresholdOptions struct {
	// Threshold is the manual cut. Cells with a defined index value
	// strictly greater than it are classified as water. Zero is the
	// conventional default for NDWI and MNDWI.
	Threshold float64

	// Auto requests automatic threshold selection from the index
	// histogram. Requires Selector; without one the call falls back
	// to Threshold with a warning.
	Auto bool

	// Selector performs automatic threshold selection when Auto is set.
	Selector ThresholdSelector
}

// ThresholdResult contains a binary water mask and how it was derived.
type ThresholdResult struct {
	Mask raster.WaterMask `json:"-"`

	// Threshold is the cut actually applied, which differs from the
	// requested one when automatic selection ran.
	Threshold float64 `json:"threshold"`

	// AutoApplied reports whether the threshold came from the selector.
	AutoApplied bool `json:"auto_applied"`

	// Warning is set when automatic selection was requested but
	// unavailable or failed; the mask is still valid, built with the
	// manual threshold.
	Warning string `json:"warning,omitempty"`

	WaterPixels int `json:"water_pixels"`
}

// ExtentOptions selects the index formula and thresholding behavior for
// ComputeExtent.
type ExtentOptions struct {
	// Method names the index formula: "ndwi" or "mndwi"
	// (case-insensitive).
	Method string

	Threshold float64
	Auto      bool
	Selector  ThresholdSelector
}

// ExtentResult pairs a computed water index with its thresholded mask.
type ExtentResult struct {
	Index     *raster.WaterIndex
	Threshold *ThresholdResult
}

// ComputeIndex computes the normalized difference (a-b)/(a+b) element-wise.
// Cells where a+b is exactly zero are undefined in the result; the
// computation never faults on them. Returns raster.ErrShapeMismatch when the
// bands differ in shape or either is ragged.
func ComputeIndex(a, b raster.Band) (*raster.WaterIndex, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("band is not rectangular: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("band is not rectangular: %w", err)
	}
	if !a.SameShape(b) {
		return nil, fmt.Errorf("%w: bands are %dx%d and %dx%d",
			raster.ErrShapeMismatch, a.Rows(), a.Cols(), b.Rows(), b.Cols())
	}

	idx := raster.NewWaterIndex(a.Rows(), a.Cols())
	for r := range a {
		for c := range a[r] {
			sum := a[r][c] + b[r][c]
			if sum == 0 {
				continue // stays undefined
			}
			idx.Set(r, c, (a[r][c]-b[r][c])/sum)
		}
	}
	return idx, nil
}

// NDWI computes the Normalized Difference Water Index from the green and
// near-infrared bands. Positive values typically indicate water.
func NDWI(green, nir raster.Band) (*raster.WaterIndex, error) {
	return ComputeIndex(green, nir)
}

// MNDWI computes the Modified NDWI from the green and short-wave infrared
// bands. It suppresses built-up land noise better than NDWI.
func MNDWI(green, swir raster.Band) (*raster.WaterIndex, error) {
	return ComputeIndex(green, swir)
}

// ThresholdMask converts a water index to a binary mask. A cell is water (1)
// exactly when it is defined and its value is strictly greater than the
// threshold; undefined cells are always non-water. The call never fails: if
// automatic selection is requested but cannot run, the manual threshold is
// used and the result carries a warning.
func ThresholdMask(idx *raster.WaterIndex, opts ThresholdOptions) *ThresholdResult {
	res := &ThresholdResult{Threshold: opts.Threshold}

	if opts.Auto {
		switch {
		case opts.Selector == nil:
			res.Warning = "automatic threshold selection unavailable, using manual threshold"
		default:
			t, err := opts.Selector.SelectThreshold(idx.DefinedValues())
			if err != nil {
				res.Warning = fmt.Sprintf("automatic threshold selection failed (%v), using manual threshold", err)
			} else {
				res.Threshold = t
				res.AutoApplied = true
			}
		}
	}

	mask := raster.NewWaterMask(idx.Rows(), idx.Cols())
	for r := 0; r < idx.Rows(); r++ {
		for c := 0; c < idx.Cols(); c++ {
			if v, ok := idx.At(r, c); ok && v > res.Threshold {
				mask[r][c] = 1
				res.WaterPixels++
			}
		}
	}
	res.Mask = mask
	return res
}

// ComputeExtent calculates a water index and mask using the method named in
// opts. The nir band is required for "ndwi" and the swir band for "mndwi";
// an absent band yields raster.ErrMissingBand and any other method name
// yields raster.ErrUnknownMethod.
func ComputeExtent(green, nir, swir raster.Band, opts ExtentOptions) (*ExtentResult, error) {
	var idx *raster.WaterIndex
	var err error

	switch strings.ToLower(opts.Method) {
	case "ndwi":
		if nir == nil {
			return nil, fmt.Errorf("%w: NIR band is required for NDWI", raster.ErrMissingBand)
		}
		idx, err = NDWI(green, nir)
	case "mndwi":
		if swir == nil {
			return nil, fmt.Errorf("%w: SWIR band is required for MNDWI", raster.ErrMissingBand)
		}
		idx, err = MNDWI(green, swir)
	default:
		return nil, fmt.Errorf("%w: %q (use 'ndwi' or 'mndwi')", raster.ErrUnknownMethod, opts.Method)
	}
	if err != nil {
		return nil, err
	}

	return &ExtentResult{
		Index: idx,
		Threshold: ThresholdMask(idx, ThresholdOptions{
			Threshold: opts.Threshold,
			Auto:      opts.Auto,
			Selector:  opts.Selector,
		}),
	}, nil
}

// ChangeIntensity returns the element-wise difference b-a between two water
// indices from different dates. Positive values indicate an increase in
// water likelihood. Cells undefined in either input are NaN in the result.
func ChangeIntensity(a, b *raster.WaterIndex) ([][]float64, error) {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return nil, fmt.Errorf("%w: indices are %dx%d and %dx%d",
			raster.ErrShapeMismatch, a.Rows(), a.Cols(), b.Rows(), b.Cols())
	}

	diff := make([][]float64, a.Rows())
	for r := 0; r < a.Rows(); r++ {
		diff[r] = make([]float64, a.Cols())
		for c := 0; c < a.Cols(); c++ {
			va, oka := a.At(r, c)
			vb, okb := b.At(r, c)
			if !oka || !okb {
				diff[r][c] = math.NaN()
				continue
			}
			diff[r][c] = vb - va
		}
	}
	return diff, nil
}
