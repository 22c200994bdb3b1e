package project

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/piwi3910/palletpack/internal/model"
)

// DefaultInventoryPath returns ~/.palletpack/inventory.json.
func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "inventory.json")
}

// SaveInventory writes the pallet presets to the specified JSON file.
func SaveInventory(path string, inv model.Inventory) error {
	return writeJSON(path, inv)
}

// LoadInventory reads the pallet presets from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	var inv model.Inventory
	if err := readJSON(path, &inv); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			inv = model.DefaultInventory()
			return inv, SaveInventory(path, inv)
		}
		return model.Inventory{}, err
	}
	return inv, nil
}

// ImportInventory merges presets from a JSON file into existing. Presets
// whose ID or name is already present are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	var imported model.Inventory
	if err := readJSON(path, &imported); err != nil {
		return existing, fmt.Errorf("import inventory: %w", err)
	}
	for _, p := range imported.Pallets {
		if existing.FindPalletByID(p.ID) != nil || existing.FindPalletByName(p.Name) != nil {
			continue
		}
		existing.Pallets = append(existing.Pallets, p)
	}
	return existing, nil
}

// ExportInventory writes the presets to an arbitrary path for sharing.
func ExportInventory(path string, inv model.Inventory) error {
	return SaveInventory(path, inv)
}
