package change

import (
	"fmt"

	"github.com/ironsheep/water-tools-mcp/internal/raster"
)

// PairChange is the change classification between two consecutive dates of
// a series, tagged with the labels of both.
type PairChange struct {
	FromLabel string           `json:"from_date"`
	ToLabel   string           `json:"to_date"`
	Map       raster.ChangeMap `json:"-"`
	Stats     ChangeStatistics `json:"statistics"`
}

// SeriesResult is the multi-date comparison output. Labels and Areas are
// parallel to the input mask order; Changes holds one entry per consecutive
// pair. MaxExtent and MinExtent are the cell-wise OR and AND envelope of all
// input masks, with their own area statistics.
type SeriesResult struct {
	Labels  []string         `json:"dates"`
	Areas   []AreaStatistics `json:"areas"`
	Changes []PairChange     `json:"changes"`

	MaxExtent raster.WaterMask `json:"-"`
	MinExtent raster.WaterMask `json:"-"`

	MaxExtentArea AreaStatistics `json:"max_extent_area"`
	MinExtentArea AreaStatistics `json:"min_extent_area"`
}

// CompareSeries compares water extent across an ordered sequence of masks.
// At least two masks are required (raster.ErrInsufficientInput), all must be
// rectangular and share one shape (raster.ErrShapeMismatch), and labels,
// when supplied, must
// match the mask count one-to-one (raster.ErrInvalidParameter). With no
// labels, positional ones ("Date_1", "Date_2", ...) are synthesized.
func CompareSeries(masks []raster.WaterMask, labels []string, pixelSize float64) (*SeriesResult, error) {
	if len(masks) < 2 {
		return nil, fmt.Errorf("%w: at least 2 masks are required, got %d",
			raster.ErrInsufficientInput, len(masks))
	}
	if err := validatePixelSize(pixelSize); err != nil {
		return nil, err
	}
	for i, m := range masks {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("mask %d is not rectangular: %w", i, err)
		}
		if !m.SameShape(masks[0]) {
			return nil, fmt.Errorf("%w: mask %d is %dx%d, expected %dx%d",
				raster.ErrShapeMismatch, i, m.Rows(), m.Cols(), masks[0].Rows(), masks[0].Cols())
		}
	}
	if labels == nil {
		labels = make([]string, len(masks))
		for i := range labels {
			labels[i] = fmt.Sprintf("Date_%d", i+1)
		}
	} else if len(labels) != len(masks) {
		return nil, fmt.Errorf("%w: %d labels for %d masks",
			raster.ErrInvalidParameter, len(labels), len(masks))
	}

	res := &SeriesResult{
		Labels:  labels,
		Areas:   make([]AreaStatistics, 0, len(masks)),
		Changes: make([]PairChange, 0, len(masks)-1),
	}

	for _, m := range masks {
		area, err := ComputeArea(m, pixelSize)
		if err != nil {
			return nil, err
		}
		res.Areas = append(res.Areas, *area)
	}

	for i := 0; i < len(masks)-1; i++ {
		cr, err := DetectChange(masks[i], masks[i+1])
		if err != nil {
			return nil, err
		}
		res.Changes = append(res.Changes, PairChange{
			FromLabel: labels[i],
			ToLabel:   labels[i+1],
			Map:       cr.Map,
			Stats:     cr.Stats,
		})
	}

	res.MaxExtent, res.MinExtent = extentEnvelope(masks)

	maxArea, err := ComputeArea(res.MaxExtent, pixelSize)
	if err != nil {
		return nil, err
	}
	minArea, err := ComputeArea(res.MinExtent, pixelSize)
	if err != nil {
		return nil, err
	}
	res.MaxExtentArea = *maxArea
	res.MinExtentArea = *minArea

	return res, nil
}

// extentEnvelope reduces a mask sequence to its cell-wise OR (max extent)
// and AND (min extent). Both reductions are associative and commutative, so
// input order does not matter.
func extentEnvelope(masks []raster.WaterMask) (maxExtent, minExtent raster.WaterMask) {
	rows, cols := masks[0].Rows(), masks[0].Cols()
	maxExtent = raster.NewWaterMask(rows, cols)
	minExtent = raster.NewWaterMask(rows, cols)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			anyWater := false
			allWater := true
			for _, m := range masks {
				if m[r][c] != 0 {
					anyWater = true
				} else {
					allWater = false
				}
			}
			if anyWater {
				maxExtent[r][c] = 1
			}
			if allWater {
				minExtent[r][c] = 1
			}
		}
	}
	return maxExtent, minExtent
}
