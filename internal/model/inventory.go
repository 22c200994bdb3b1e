package model

import (
	"strings"

	"github.com/google/uuid"
)

// PalletPreset is a named, reusable pallet size.
type PalletPreset struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Padding int    `json:"padding"`
}

// NewPalletPreset creates a new PalletPreset with a generated ID.
func NewPalletPreset(name string, width, height, padding int) PalletPreset {
	return PalletPreset{
		ID:      uuid.New().String()[:8],
		Name:    name,
		Width:   width,
		Height:  height,
		Padding: padding,
	}
}

// ApplyToSettings copies the preset's pallet size and padding into s.
func (pp PalletPreset) ApplyToSettings(s *PackSettings) {
	s.PalletWidth = pp.Width
	s.PalletHeight = pp.Height
	s.Padding = pp.Padding
}

// Inventory holds the user's saved pallet presets.
type Inventory struct {
	Pallets []PalletPreset `json:"pallets"`
}

// DefaultInventory returns an inventory populated with common pallet sizes
// in centimeters.
func DefaultInventory() Inventory {
	return Inventory{
		Pallets: []PalletPreset{
			NewPalletPreset("EUR 120x80", 120, 80, 0),
			NewPalletPreset("EUR 120x100", 120, 100, 0),
			NewPalletPreset("EUR half 80x60", 80, 60, 0),
			NewPalletPreset("US 122x102 (48x40in)", 122, 102, 0),
			NewPalletPreset("Square 100x100", 100, 100, 0),
		},
	}
}

// FindPalletByID returns a pointer to the preset with the given ID, or nil.
func (inv *Inventory) FindPalletByID(id string) *PalletPreset {
	for i := range inv.Pallets {
		if inv.Pallets[i].ID == id {
			return &inv.Pallets[i]
		}
	}
	return nil
}

// FindPalletByName returns the first preset whose name matches,
// ignoring case, or nil.
func (inv *Inventory) FindPalletByName(name string) *PalletPreset {
	for i := range inv.Pallets {
		if strings.EqualFold(inv.Pallets[i].Name, name) {
			return &inv.Pallets[i]
		}
	}
	return nil
}

// PalletNames returns the preset names in order.
func (inv *Inventory) PalletNames() []string {
	names := make([]string, len(inv.Pallets))
	for i, p := range inv.Pallets {
		names[i] = p.Name
	}
	return names
}
