package model

import (
	"math"
	"testing"
)

func TestEstimatePalletsBasic(t *testing.T) {
	shapes := []Shape{
		{Label: "A", Width: 6, Height: 4},
		{Label: "B", Width: 4, Height: 6},
		{Label: "C", Width: 5, Height: 5},
	}
	est := EstimatePallets(shapes, 10, 10, 0)

	if est.ShapeArea != 73 {
		t.Errorf("expected shape area 73, got %d", est.ShapeArea)
	}
	if math.Abs(est.PalletsNeededExact-0.73) > 1e-9 {
		t.Errorf("expected 0.73 pallets, got %f", est.PalletsNeededExact)
	}
	if est.PalletsNeededMin != 1 {
		t.Errorf("expected 1 pallet, got %d", est.PalletsNeededMin)
	}
}

func TestEstimatePalletsIncludesPadding(t *testing.T) {
	shapes := []Shape{{Width: 4, Height: 4}, {Width: 4, Height: 4}}
	est := EstimatePallets(shapes, 5, 5, 1)

	// Each footprint is 5x5, exactly one pallet each
	if est.ShapeArea != 50 {
		t.Errorf("expected padded area 50, got %d", est.ShapeArea)
	}
	if est.PalletsNeededMin != 2 {
		t.Errorf("expected 2 pallets, got %d", est.PalletsNeededMin)
	}
}

func TestEstimatePalletsZeroPalletArea(t *testing.T) {
	est := EstimatePallets([]Shape{{Width: 1, Height: 1}}, 0, 10, 0)
	if est.PalletsNeededMin != 0 || est.PalletArea != 0 {
		t.Errorf("expected empty estimate, got %+v", est)
	}
	if est.ShapeArea != 1 {
		t.Errorf("expected shape area to be reported, got %d", est.ShapeArea)
	}
}
