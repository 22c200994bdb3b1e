package model

import "math"

// PalletEstimate is an area-based lower bound on how many pallets a shape list needs.
type PalletEstimate struct {
	ShapeArea          int     `json:"shape_area"`          // Sum of padded footprints
	PalletArea         int     `json:"pallet_area"`         // Area of one pallet
	PalletsNeededExact float64 `json:"pallets_needed_exact"` // Fractional pallet count
	PalletsNeededMin   int     `json:"pallets_needed_min"`   // Ceiling of the exact count
}

// EstimatePallets computes the minimum number of pallets the shapes could
// occupy if packing were perfect. Real packings use at least this many.
func EstimatePallets(shapes []Shape, width, height, padding int) PalletEstimate {
	total := 0
	for _, s := range shapes {
		total += (s.Width + padding) * (s.Height + padding)
	}

	palletArea := width * height
	if palletArea <= 0 {
		return PalletEstimate{ShapeArea: total}
	}

	exact := float64(total) / float64(palletArea)
	return PalletEstimate{
		ShapeArea:          total,
		PalletArea:         palletArea,
		PalletsNeededExact: exact,
		PalletsNeededMin:   int(math.Ceil(exact)),
	}
}
