package model

import (
	"testing"
)

func TestDefaultInventoryHasPallets(t *testing.T) {
	inv := DefaultInventory()
	if len(inv.Pallets) == 0 {
		t.Fatal("expected default pallet presets")
	}
	for _, p := range inv.Pallets {
		if p.Width <= 0 || p.Height <= 0 {
			t.Errorf("preset %s has invalid size %dx%d", p.Name, p.Width, p.Height)
		}
		if p.ID == "" {
			t.Errorf("preset %s has no ID", p.Name)
		}
	}
}

func TestFindPalletByNameIgnoresCase(t *testing.T) {
	inv := DefaultInventory()
	p := inv.FindPalletByName("eur 120x80")
	if p == nil {
		t.Fatal("expected to find EUR 120x80")
	}
	if p.Width != 120 || p.Height != 80 {
		t.Errorf("unexpected size %dx%d", p.Width, p.Height)
	}
	if inv.FindPalletByName("nope") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestFindPalletByID(t *testing.T) {
	inv := DefaultInventory()
	id := inv.Pallets[1].ID
	p := inv.FindPalletByID(id)
	if p == nil || p.Name != inv.Pallets[1].Name {
		t.Fatalf("expected preset %s, got %+v", inv.Pallets[1].Name, p)
	}
	if inv.FindPalletByID("missing") != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestPalletPresetApplyToSettings(t *testing.T) {
	s := DefaultSettings()
	NewPalletPreset("Custom", 30, 20, 1).ApplyToSettings(&s)
	if s.PalletWidth != 30 || s.PalletHeight != 20 || s.Padding != 1 {
		t.Errorf("preset not applied: %+v", s)
	}
}

func TestPalletNames(t *testing.T) {
	inv := Inventory{Pallets: []PalletPreset{{Name: "A"}, {Name: "B"}}}
	names := inv.PalletNames()
	if len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Errorf("unexpected names %v", names)
	}
}
