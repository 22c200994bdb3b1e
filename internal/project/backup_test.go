package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/palletpack/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultPadding = 3
	inv := model.DefaultInventory()
	templates := model.NewTemplateStore()
	templates.Put(model.NewShapeTemplate("Boxes", "", []model.ShapeRequest{{Label: "A", Width: 2, Height: 3, Quantity: 4}}, model.DefaultSettings()))

	if err := ExportAllData(path, cfg, inv, templates); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", backup.Version)
	}
	if backup.Config.DefaultPadding != 3 {
		t.Errorf("expected padding 3, got %d", backup.Config.DefaultPadding)
	}
	if len(backup.Inventory.Pallets) != len(inv.Pallets) {
		t.Errorf("expected %d presets, got %d", len(inv.Pallets), len(backup.Inventory.Pallets))
	}
	if len(backup.Templates.Templates) != 1 || backup.Templates.Templates[0].Shapes[0].Quantity != 4 {
		t.Errorf("template not restored: %+v", backup.Templates)
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	if _, err := ImportAllData(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"config": {}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Error("expected error for missing version")
	}
}

func TestExportAllDataCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "backup.json")
	if err := ExportAllData(path, model.DefaultAppConfig(), model.Inventory{}, model.NewTemplateStore()); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected backup file to exist: %v", err)
	}
}

func TestImportAllDataNilSlices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.json")
	if err := os.WriteFile(path, []byte(`{"version": "1.0.0"}`), 0644); err != nil {
		t.Fatal(err)
	}
	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentProjects == nil {
		t.Error("expected non-nil recent projects")
	}
	if backup.Templates.Templates == nil {
		t.Error("expected non-nil templates")
	}
}
