package scene

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/imgio"

	"github.com/ironsheep/water-tools-mcp/internal/raster"
)

// BandFromImage converts an image to a single-band reflectance grid by
// taking the luminance of each pixel, scaled to [0, 1]. Grayscale exports of
// individual sensor bands round-trip exactly through this.
func BandFromImage(img image.Image) raster.Band {
	bounds := img.Bounds()
	rows := bounds.Dy()
	cols := bounds.Dx()

	b := make(raster.Band, rows)
	for r := 0; r < rows; r++ {
		b[r] = make([]float64, cols)
		for c := 0; c < cols; c++ {
			red, green, blue, _ := img.At(bounds.Min.X+c, bounds.Min.Y+r).RGBA()
			// ITU-R BT.601 luminance on 8-bit channels
			lum := 0.299*float64(red>>8) + 0.587*float64(green>>8) + 0.114*float64(blue>>8)
			b[r][c] = lum / 255.0
		}
	}
	return b
}

// LoadBand reads an image file and interprets it as a reflectance band.
// When smoothRadius is positive, a gaussian blur with that radius is applied
// first to suppress speckle before thresholding.
func LoadBand(path string, smoothRadius float64) (raster.Band, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open band image: %w", err)
	}
	if smoothRadius > 0 {
		img = blur.Gaussian(img, smoothRadius)
	}
	return BandFromImage(img), nil
}
