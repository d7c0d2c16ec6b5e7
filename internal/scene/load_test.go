package scene

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestBandFromImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(0, 0, color.Gray{Y: 0})
	img.SetGray(1, 0, color.Gray{Y: 128})
	img.SetGray(2, 0, color.Gray{Y: 255})
	img.SetGray(0, 1, color.Gray{Y: 64})

	b := BandFromImage(img)

	if b.Rows() != 2 || b.Cols() != 3 {
		t.Fatalf("band shape: got %dx%d, want 2x3", b.Rows(), b.Cols())
	}

	// Gray pixels have equal channels, so luminance is the gray value.
	tests := []struct {
		r, c int
		want float64
	}{
		{0, 0, 0.0},
		{0, 1, 128.0 / 255.0},
		{0, 2, 1.0},
		{1, 0, 64.0 / 255.0},
	}
	for _, tt := range tests {
		if got := b[tt.r][tt.c]; math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("cell (%d,%d): got %v, want %v", tt.r, tt.c, got, tt.want)
		}
	}
}

func TestBandFromImage_OffsetBounds(t *testing.T) {
	img := image.NewGray(image.Rect(5, 10, 8, 12))
	img.SetGray(5, 10, color.Gray{Y: 255})

	b := BandFromImage(img)
	if b.Rows() != 2 || b.Cols() != 3 {
		t.Fatalf("band shape: got %dx%d, want 2x3", b.Rows(), b.Cols())
	}
	if b[0][0] != 1.0 {
		t.Errorf("top-left cell: got %v, want 1.0", b[0][0])
	}
}

func TestLoadBand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "band.png")

	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 60)})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	f.Close()

	b, err := LoadBand(path, 0)
	if err != nil {
		t.Fatalf("LoadBand failed: %v", err)
	}
	if b.Rows() != 4 || b.Cols() != 4 {
		t.Fatalf("band shape: got %dx%d, want 4x4", b.Rows(), b.Cols())
	}
	if math.Abs(b[0][3]-180.0/255.0) > 1e-9 {
		t.Errorf("cell (0,3): got %v, want %v", b[0][3], 180.0/255.0)
	}
}

func TestLoadBand_Smoothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "speckle.png")

	// A single bright pixel on black; blurring spreads it out.
	img := image.NewGray(image.Rect(0, 0, 9, 9))
	img.SetGray(4, 4, color.Gray{Y: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	f.Close()

	sharp, err := LoadBand(path, 0)
	if err != nil {
		t.Fatalf("LoadBand failed: %v", err)
	}
	smooth, err := LoadBand(path, 2.0)
	if err != nil {
		t.Fatalf("LoadBand failed: %v", err)
	}

	if smooth[4][4] >= sharp[4][4] {
		t.Errorf("blur should dim the bright pixel: %v vs %v", smooth[4][4], sharp[4][4])
	}
	if smooth[4][5] <= sharp[4][5] {
		t.Errorf("blur should brighten the neighbor: %v vs %v", smooth[4][5], sharp[4][5])
	}
}

func TestLoadBand_MissingFile(t *testing.T) {
	if _, err := LoadBand("/nonexistent/band.png", 0); err == nil {
		t.Error("loading a missing file should fail")
	}
}
