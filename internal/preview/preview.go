// Package preview encodes analysis grids as small base64 PNG images for MCP
// tool responses. These are data previews of classification grids, not
// report figures: one pixel per cell, fixed class palettes, downscaled only
// when the grid exceeds the preview cap.
package preview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/water-tools-mcp/internal/raster"
)

// maxDim caps the preview edge length; larger grids are downscaled with
// nearest-neighbor so class boundaries stay crisp.
const maxDim = 512

// Image is a rendered grid preview.
type Image struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Class palette, matching the conventions of the change-map legend: neutral
// gray for stable land, lake blue for stable water, red for loss, teal for
// gain.
var (
	colStableNonWater = mustHex("#f0f0f0")
	colStableWater    = mustHex("#0077be")
	colWaterLoss      = mustHex("#ff6b6b")
	colWaterGain      = mustHex("#4ecdc4")

	// Index colormap endpoints: dry land red through white to water blue.
	colIndexLow  = mustHex("#d73027")
	colIndexMid  = mustHex("#ffffbf")
	colIndexHigh = mustHex("#4575b4")

	colUndefined = mustHex("#808080")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("bad palette color %q: %v", s, err))
	}
	return c
}

// Mask renders a water mask: water in lake blue, everything else in light
// gray.
func Mask(m raster.WaterMask) (*Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, m.Cols(), m.Rows()))
	for r := range m {
		for c, v := range m[r] {
			if v != 0 {
				img.Set(c, r, toRGBA(colStableWater))
			} else {
				img.Set(c, r, toRGBA(colStableNonWater))
			}
		}
	}
	return encode(img)
}

// ChangeMap renders a 4-class change map with the fixed class palette.
func ChangeMap(cm raster.ChangeMap) (*Image, error) {
	palette := map[uint8]colorful.Color{
		raster.ClassStableNonWater: colStableNonWater,
		raster.ClassStableWater:    colStableWater,
		raster.ClassWaterLoss:      colWaterLoss,
		raster.ClassWaterGain:      colWaterGain,
	}

	img := image.NewRGBA(image.Rect(0, 0, cm.Cols(), cm.Rows()))
	for r := range cm {
		for c, v := range cm[r] {
			img.Set(c, r, toRGBA(palette[v]))
		}
	}
	return encode(img)
}

// Index renders a water index through a diverging red-to-blue colormap over
// [-1, 1]; undefined cells are mid-gray.
func Index(idx *raster.WaterIndex) (*Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, idx.Cols(), idx.Rows()))
	for r := 0; r < idx.Rows(); r++ {
		for c := 0; c < idx.Cols(); c++ {
			v, ok := idx.At(r, c)
			if !ok {
				img.Set(c, r, toRGBA(colUndefined))
				continue
			}
			img.Set(c, r, toRGBA(indexColor(v)))
		}
	}
	return encode(img)
}

// indexColor maps an index value in [-1, 1] to the diverging colormap,
// blending in Lab space for perceptual uniformity. Out-of-range values are
// clamped.
func indexColor(v float64) colorful.Color {
	if v < -1 {
		v = -1
	} else if v > 1 {
		v = 1
	}
	if v < 0 {
		return colIndexLow.BlendLab(colIndexMid, v+1).Clamped()
	}
	return colIndexMid.BlendLab(colIndexHigh, v).Clamped()
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// encode downscales when needed and produces the base64 PNG result.
func encode(img image.Image) (*Image, error) {
	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.NearestNeighbor)
		bounds = img.Bounds()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &Image{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
