package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions marks a non-positive pallet or shape dimension or a
	// negative padding.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrShapeTooLarge marks a shape that fits the pallet in neither orientation.
	ErrShapeTooLarge = errors.New("shape does not fit on pallet")
)

// MaxPalletCells bounds width*height so the occupancy grid stays addressable
// and small enough to allocate.
const MaxPalletCells = 1 << 24

// ValidatePallet checks the pallet dimensions and padding.
func ValidatePallet(width, height, padding int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("pallet %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	if width > MaxPalletCells/height {
		return fmt.Errorf("pallet %dx%d exceeds %d cells: %w", width, height, MaxPalletCells, ErrInvalidDimensions)
	}
	if padding < 0 {
		return fmt.Errorf("padding %d: %w", padding, ErrInvalidDimensions)
	}
	return nil
}

// FitsPallet reports whether the shape, grown by padding, fits a width x height
// pallet in at least one orientation.
func FitsPallet(s Shape, width, height, padding int) bool {
	w, h := s.Width+padding, s.Height+padding
	return (w <= width && h <= height) || (h <= width && w <= height)
}

// ValidateInput rejects malformed input before it reaches the packers. Every
// offending shape is reported; the returned error wraps ErrInvalidDimensions
// and/or ErrShapeTooLarge.
func ValidateInput(width, height, padding int, shapes []Shape) error {
	if err := ValidatePallet(width, height, padding); err != nil {
		return err
	}
	var errs []error
	for i, s := range shapes {
		switch {
		case s.Width <= 0 || s.Height <= 0:
			errs = append(errs, fmt.Errorf("shape %d (%s) %dx%d: %w", i, s.Label, s.Width, s.Height, ErrInvalidDimensions))
		case !FitsPallet(s, width, height, padding):
			errs = append(errs, fmt.Errorf("shape %d (%s) %dx%d on %dx%d pallet: %w", i, s.Label, s.Width, s.Height, width, height, ErrShapeTooLarge))
		}
	}
	return errors.Join(errs...)
}

// ValidateSettings checks pallet settings and the shapes they will be used with.
func ValidateSettings(s PackSettings, shapes []Shape) error {
	switch s.Algorithm {
	case AlgorithmGreedy, AlgorithmGenetic:
	default:
		return fmt.Errorf("unknown algorithm %q", s.Algorithm)
	}
	switch s.Waste {
	case WasteFootprint, WasteNeighborhood, "":
	default:
		return fmt.Errorf("unknown waste metric %q", s.Waste)
	}
	return ValidateInput(s.PalletWidth, s.PalletHeight, s.Padding, shapes)
}
