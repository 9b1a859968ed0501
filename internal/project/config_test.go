package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/almare/zerocut/internal/model"
)

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultConfig()
	cfg.Ease = 22.0
	cfg.OffcutThreshold = 12.5
	cfg.FacingWidths = [3]float64{11, 13, 15}

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Ease != 22.0 {
		t.Errorf("expected Ease=22.0, got %f", loaded.Ease)
	}
	if loaded.OffcutThreshold != 12.5 {
		t.Errorf("expected OffcutThreshold=12.5, got %f", loaded.OffcutThreshold)
	}
	if loaded.FacingWidths != [3]float64{11, 13, 15} {
		t.Errorf("expected custom facing widths, got %v", loaded.FacingWidths)
	}
	if len(loaded.BoltCatalog) != len(cfg.BoltCatalog) {
		t.Errorf("expected %d catalog entries, got %d", len(cfg.BoltCatalog), len(loaded.BoltCatalog))
	}
}

func TestSaveConfigCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "config.json")

	if err := SaveConfig(path, model.DefaultConfig()); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file was not created: %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultConfig()
	if cfg.Ease != defaults.Ease {
		t.Errorf("expected default ease %f, got %f", defaults.Ease, cfg.Ease)
	}
	if len(cfg.BoltCatalog) != len(defaults.BoltCatalog) {
		t.Errorf("expected default catalog, got %v", cfg.BoltCatalog)
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoadConfigRepairsNilCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte(`{"ease": 20}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Ease != 20 {
		t.Errorf("expected ease 20, got %f", cfg.Ease)
	}
	if len(cfg.BoltCatalog) == 0 {
		t.Error("expected bolt catalog to fall back to defaults")
	}
}
