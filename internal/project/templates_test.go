package project

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/palletpack/internal/model"
)

func TestSaveAndLoadTemplates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")

	store := model.NewTemplateStore()
	store.Put(model.NewShapeTemplate("Crates", "standard crates", []model.ShapeRequest{
		{Label: "Crate", Width: 40, Height: 30, Quantity: 6},
		{Label: "Box", Width: 20, Height: 20, Quantity: 2},
	}, model.DefaultSettings()))
	store.Put(model.NewShapeTemplate("Empty", "", nil, model.DefaultSettings()))

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates failed: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates failed: %v", err)
	}
	if len(loaded.Templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(loaded.Templates))
	}
	crates := loaded.FindByName("Crates")
	if crates == nil {
		t.Fatal("expected Crates template")
	}
	if len(crates.Shapes) != 2 || crates.Shapes[0].Quantity != 6 {
		t.Errorf("unexpected shapes %+v", crates.Shapes)
	}
	if crates.Settings.PalletWidth != model.DefaultSettings().PalletWidth {
		t.Errorf("expected settings to round-trip")
	}
}

func TestLoadTemplates_NotFound(t *testing.T) {
	store, err := LoadTemplates(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if store.Templates == nil || len(store.Templates) != 0 {
		t.Errorf("expected empty store, got %+v", store)
	}
}
