package raster

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBandShape(t *testing.T) {
	tests := []struct {
		name     string
		band     Band
		wantRows int
		wantCols int
	}{
		{"empty", Band{}, 0, 0},
		{"single cell", Band{{1.0}}, 1, 1},
		{"rectangular", Band{{1, 2, 3}, {4, 5, 6}}, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.band.Rows(); got != tt.wantRows {
				t.Errorf("Rows: got %d, want %d", got, tt.wantRows)
			}
			if got := tt.band.Cols(); got != tt.wantCols {
				t.Errorf("Cols: got %d, want %d", got, tt.wantCols)
			}
		})
	}
}

func TestBandSameShape(t *testing.T) {
	a := Band{{1, 2}, {3, 4}}
	b := Band{{5, 6}, {7, 8}}
	c := Band{{1, 2, 3}}

	if !a.SameShape(b) {
		t.Error("2x2 bands should have the same shape")
	}
	if a.SameShape(c) {
		t.Error("2x2 and 1x3 bands should not have the same shape")
	}
}

func TestBandValidate(t *testing.T) {
	if err := (Band{{1, 2}, {3, 4}}).Validate(); err != nil {
		t.Errorf("rectangular band should validate, got %v", err)
	}
	if err := (Band{{1, 2}, {3}}).Validate(); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("ragged band: got %v, want ErrShapeMismatch", err)
	}
}

func TestWaterMaskWaterPixels(t *testing.T) {
	tests := []struct {
		name string
		mask WaterMask
		want int
	}{
		{"empty", WaterMask{}, 0},
		{"all zero", NewWaterMask(3, 3), 0},
		{"mixed", WaterMask{{1, 0, 1}, {0, 1, 0}}, 3},
		{"non-binary values count as water", WaterMask{{2, 0}, {0, 255}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mask.WaterPixels(); got != tt.want {
				t.Errorf("WaterPixels: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewWaterMask(t *testing.T) {
	m := NewWaterMask(2, 3)
	want := WaterMask{{0, 0, 0}, {0, 0, 0}}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("NewWaterMask mismatch (-want +got):\n%s", diff)
	}
}

func TestWaterIndexUndefinedByDefault(t *testing.T) {
	idx := NewWaterIndex(2, 2)

	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			v, ok := idx.At(r, c)
			if ok {
				t.Errorf("cell (%d,%d) should be undefined", r, c)
			}
			if !math.IsNaN(v) {
				t.Errorf("undefined cell (%d,%d) should carry NaN, got %v", r, c, v)
			}
		}
	}
	if got := idx.DefinedCount(); got != 0 {
		t.Errorf("DefinedCount: got %d, want 0", got)
	}
}

func TestWaterIndexSetAt(t *testing.T) {
	idx := NewWaterIndex(2, 2)
	idx.Set(0, 1, 0.5)
	idx.Set(1, 0, -0.25)

	v, ok := idx.At(0, 1)
	if !ok || v != 0.5 {
		t.Errorf("At(0,1): got (%v, %v), want (0.5, true)", v, ok)
	}
	if got := idx.DefinedCount(); got != 2 {
		t.Errorf("DefinedCount: got %d, want 2", got)
	}
}

func TestWaterIndexDefinedValues(t *testing.T) {
	idx := NewWaterIndex(2, 2)
	idx.Set(0, 0, 0.1)
	idx.Set(1, 1, 0.4)

	got := idx.DefinedValues()
	want := []float64{0.1, 0.4}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DefinedValues mismatch (-want +got):\n%s", diff)
	}
}

func TestChangeClassConstants(t *testing.T) {
	// The numeric labels are part of the output contract.
	if ClassStableNonWater != 0 || ClassStableWater != 1 || ClassWaterLoss != 2 || ClassWaterGain != 3 {
		t.Errorf("change class constants changed: %d %d %d %d",
			ClassStableNonWater, ClassStableWater, ClassWaterLoss, ClassWaterGain)
	}
}
