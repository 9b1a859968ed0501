package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/almare/zerocut/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.zerocut/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".zerocut")
}

// DefaultConfigPath returns the default path for the tailoring config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveConfig persists a PatternConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveConfig(path string, config model.PatternConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadConfig reads a PatternConfig from the given path.
// If the file does not exist, it returns DefaultConfig with no error.
func LoadConfig(path string) (model.PatternConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultConfig(), nil
		}
		return model.PatternConfig{}, err
	}
	var config model.PatternConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return model.PatternConfig{}, err
	}
	// Ensure the bolt catalog is never nil so lookups can fall back safely.
	if config.BoltCatalog == nil {
		config.BoltCatalog = model.DefaultConfig().BoltCatalog
	}
	return config, nil
}
