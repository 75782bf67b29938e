package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Backend saveBackendConfig `json:"backend"`
	UI      UIConfig          `json:"ui"`
	Keymap  KeymapConfig      `json:"keymap"`
	Metrics MetricsConfig     `json:"metrics"`
}

type saveBackendConfig struct {
	BaseURL string `json:"baseUrl,omitempty"`
	Timeout string `json:"timeout,omitempty"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Backend: saveBackendConfig{
			BaseURL: cfg.Backend.BaseURL,
			Timeout: cfg.Backend.Timeout.String(),
		},
		UI:      cfg.UI,
		Keymap:  cfg.Keymap,
		Metrics: cfg.Metrics,
	}
}

// Save writes the config to ~/.config/ragdeck/config.json
func Save(cfg *Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to a specific path.
func SaveTo(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	sc := toSaveConfig(cfg)
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
