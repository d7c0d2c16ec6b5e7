// Package otsu provides automatic threshold selection using Otsu's method.
//
// The selector implements indices.ThresholdSelector. Index values are
// rescaled to a fixed 256-bin histogram, the bins maximizing the
// between-class variance are found (ties averaged, so the cut lands in the
// middle of an empty gap between clusters), and the cut is rescaled back to
// the native value range. The selector errors on inputs it cannot threshold
// (empty or flat data); callers treat that as "unavailable" and fall back
// to a manual threshold.
package otsu

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

const bins = 256

// Selection errors. Both indicate input the method cannot split, not a
// fault; thresholding falls back to the manual cut when they occur.
var (
	ErrNoValues = errors.New("no defined values to threshold")
	ErrFlatData = errors.New("values have no spread")
)

// Selector chooses thresholds with Otsu's method. The zero value is ready
// to use.
type Selector struct{}

// NewSelector returns a ready-to-use Otsu selector.
func NewSelector() *Selector {
	return &Selector{}
}

// SelectThreshold returns the value that best separates the input into two
// classes by maximizing between-class variance over a 256-bin histogram.
func (s *Selector) SelectThreshold(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoValues
	}

	lo := floats.Min(values)
	hi := floats.Max(values)
	if lo == hi {
		return 0, ErrFlatData
	}

	var hist [bins]int
	scale := float64(bins-1) / (hi - lo)
	for _, v := range values {
		bin := int((v - lo) * scale)
		if bin >= bins {
			bin = bins - 1
		}
		hist[bin]++
	}

	// Classic Otsu sweep: track the cut with maximal between-class
	// variance w_bg * w_fg * (mu_bg - mu_fg)^2. Well-separated clusters
	// produce a plateau of tied maxima across the empty bins between
	// them; averaging the tied bins places the cut mid-gap instead of at
	// the edge of the lower cluster.
	total := float64(len(values))
	var sumAll float64
	for i, n := range hist {
		sumAll += float64(i) * float64(n)
	}

	var (
		weightBg, sumBg float64
		bestVariance    = -1.0
		bestBinSum      int
		bestBinCount    int
	)
	for t := 0; t < bins-1; t++ {
		weightBg += float64(hist[t])
		if weightBg == 0 {
			continue
		}
		weightFg := total - weightBg
		if weightFg == 0 {
			break
		}
		sumBg += float64(t) * float64(hist[t])

		meanBg := sumBg / weightBg
		meanFg := (sumAll - sumBg) / weightFg
		diff := meanBg - meanFg
		variance := weightBg * weightFg * diff * diff
		switch {
		case variance > bestVariance:
			bestVariance = variance
			bestBinSum = t
			bestBinCount = 1
		case variance == bestVariance:
			bestBinSum += t
			bestBinCount++
		}
	}

	bestBin := float64(bestBinSum) / float64(bestBinCount)
	return bestBin/float64(bins-1)*(hi-lo) + lo, nil
}
