package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/palletpack/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultPalletWidth = 120
	cfg.DefaultPalletHeight = 80
	cfg.DefaultAlgorithm = model.AlgorithmGenetic
	cfg.RecentProjects = []string{"/tmp/a.palletpack", "/tmp/b.palletpack"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultPalletWidth != 120 || loaded.DefaultPalletHeight != 80 {
		t.Errorf("expected 120x80 pallet, got %dx%d", loaded.DefaultPalletWidth, loaded.DefaultPalletHeight)
	}
	if loaded.DefaultAlgorithm != model.AlgorithmGenetic {
		t.Errorf("expected genetic algorithm, got %s", loaded.DefaultAlgorithm)
	}
	if len(loaded.RecentProjects) != 2 {
		t.Errorf("expected 2 recent projects, got %d", len(loaded.RecentProjects))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultPalletWidth != defaults.DefaultPalletWidth {
		t.Errorf("expected default width %d, got %d", defaults.DefaultPalletWidth, cfg.DefaultPalletWidth)
	}
	if cfg.ServerAddr != ":8080" {
		t.Errorf("expected server addr :8080, got %s", cfg.ServerAddr)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"default_padding": 2}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.DefaultPadding != 2 {
		t.Errorf("expected padding 2, got %d", cfg.DefaultPadding)
	}
	if cfg.DefaultGenetic.PopulationSize != model.DefaultGeneticSettings().PopulationSize {
		t.Errorf("expected default population size, got %d", cfg.DefaultGenetic.PopulationSize)
	}
	if cfg.RecentProjects == nil {
		t.Error("expected non-nil recent projects")
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("expected config.json, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ".palletpack" {
		t.Errorf("expected .palletpack directory, got %s", filepath.Dir(path))
	}
}
