package change

import (
	"fmt"
	"math"

	"github.com/ironsheep/water-tools-mcp/internal/raster"
)

// AreaStatistics is the physical water surface area derived from a mask and
// a pixel linear size. When pixel size is in meters, WaterAreaM2 is square
// meters and WaterAreaKm2 the same value scaled by 1e-6.
type AreaStatistics struct {
	WaterPixels  int     `json:"water_pixels"`
	WaterAreaM2  float64 `json:"water_area_m2"`
	WaterAreaKm2 float64 `json:"water_area_km2"`
}

// ComputeArea counts the water pixels of a mask and converts them to
// physical area. pixelSize is the linear size of one pixel (30.0 for
// Landsat); it must be a positive finite number or the call fails with
// raster.ErrInvalidParameter.
func ComputeArea(mask raster.WaterMask, pixelSize float64) (*AreaStatistics, error) {
	if err := validatePixelSize(pixelSize); err != nil {
		return nil, err
	}

	pixels := mask.WaterPixels()
	areaM2 := float64(pixels) * pixelSize * pixelSize
	return &AreaStatistics{
		WaterPixels:  pixels,
		WaterAreaM2:  areaM2,
		WaterAreaKm2: areaM2 / 1e6,
	}, nil
}

func validatePixelSize(pixelSize float64) error {
	if pixelSize <= 0 || math.IsNaN(pixelSize) || math.IsInf(pixelSize, 0) {
		return fmt.Errorf("%w: pixel size must be a positive finite number, got %v",
			raster.ErrInvalidParameter, pixelSize)
	}
	return nil
}
