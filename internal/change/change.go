package change

import (
	"fmt"

	"github.com/ironsheep/water-tools-mcp/internal/raster"
)

// ChangeStatistics summarizes a change map by exact per-class pixel counts
// and their share of the total cell count. Net change is gain minus loss.
type ChangeStatistics struct {
	StableWaterPixels    int `json:"stable_water_pixels"`
	StableNonWaterPixels int `json:"stable_non_water_pixels"`
	WaterLossPixels      int `json:"water_loss_pixels"`
	WaterGainPixels      int `json:"water_gain_pixels"`

	StableWaterPercent    float64 `json:"stable_water_percent"`
	StableNonWaterPercent float64 `json:"stable_non_water_percent"`
	WaterLossPercent      float64 `json:"water_loss_percent"`
	WaterGainPercent      float64 `json:"water_gain_percent"`

	NetChangePixels  int     `json:"net_change_pixels"`
	NetChangePercent float64 `json:"net_change_percent"`
}

// ChangeResult pairs a per-cell change classification with its statistics.
type ChangeResult struct {
	Map   raster.ChangeMap `json:"-"`
	Stats ChangeStatistics `json:"statistics"`
}

// DetectChange classifies the water-state transition of every cell between
// two dates. Any non-zero mask cell counts as water. The four classes are
// mutually exclusive and exhaustive, so the per-class counts always sum to
// the total cell count. Returns raster.ErrShapeMismatch when the masks
// differ in shape or either is ragged.
func DetectChange(a, b raster.WaterMask) (*ChangeResult, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("mask is not rectangular: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("mask is not rectangular: %w", err)
	}
	if !a.SameShape(b) {
		return nil, fmt.Errorf("%w: masks are %dx%d and %dx%d",
			raster.ErrShapeMismatch, a.Rows(), a.Cols(), b.Rows(), b.Cols())
	}

	cm := raster.NewChangeMap(a.Rows(), a.Cols())
	var stable, stableNon, loss, gain int
	for r := range a {
		for c := range a[r] {
			wasWater := a[r][c] != 0
			isWater := b[r][c] != 0
			switch {
			case wasWater && isWater:
				cm[r][c] = raster.ClassStableWater
				stable++
			case !wasWater && !isWater:
				cm[r][c] = raster.ClassStableNonWater
				stableNon++
			case wasWater && !isWater:
				cm[r][c] = raster.ClassWaterLoss
				loss++
			default:
				cm[r][c] = raster.ClassWaterGain
				gain++
			}
		}
	}

	net := gain - loss
	stats := ChangeStatistics{
		StableWaterPixels:    stable,
		StableNonWaterPixels: stableNon,
		WaterLossPixels:      loss,
		WaterGainPixels:      gain,
		NetChangePixels:      net,
	}
	// Percentages stay zero for an empty grid.
	if total := float64(a.Rows() * a.Cols()); total > 0 {
		stats.StableWaterPercent = float64(stable) / total * 100
		stats.StableNonWaterPercent = float64(stableNon) / total * 100
		stats.WaterLossPercent = float64(loss) / total * 100
		stats.WaterGainPercent = float64(gain) / total * 100
		stats.NetChangePercent = float64(net) / total * 100
	}
	return &ChangeResult{Map: cm, Stats: stats}, nil
}
