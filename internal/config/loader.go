package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/ragdeck"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary. Durations travel as
// strings ("15s") for readability.
type rawConfig struct {
	Backend rawBackendConfig `json:"backend"`
	UI      rawUIConfig      `json:"ui"`
	Keymap  KeymapConfig     `json:"keymap"`
	Metrics rawMetricsConfig `json:"metrics"`
}

type rawBackendConfig struct {
	BaseURL string `json:"baseUrl"`
	Timeout string `json:"timeout"`
}

type rawUIConfig struct {
	ShowFooter *bool `json:"showFooter"`
	ShowClock  *bool `json:"showClock"`
}

type rawMetricsConfig struct {
	Enabled *bool  `json:"enabled"`
	DBPath  string `json:"dbPath"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/ragdeck/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil // Return defaults on error
		}
		path = filepath.Join(home, configDir, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	mergeConfig(cfg, &raw)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the defaults.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Backend
	if raw.Backend.BaseURL != "" {
		cfg.Backend.BaseURL = strings.TrimRight(raw.Backend.BaseURL, "/")
	}
	if raw.Backend.Timeout != "" {
		if d, err := time.ParseDuration(raw.Backend.Timeout); err == nil {
			cfg.Backend.Timeout = d
		}
	}

	// UI
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
	if raw.UI.ShowClock != nil {
		cfg.UI.ShowClock = *raw.UI.ShowClock
	}

	// Keymap
	if raw.Keymap.Overrides != nil {
		for k, v := range raw.Keymap.Overrides {
			cfg.Keymap.Overrides[k] = v
		}
	}

	// Metrics
	if raw.Metrics.Enabled != nil {
		cfg.Metrics.Enabled = *raw.Metrics.Enabled
	}
	if raw.Metrics.DBPath != "" {
		cfg.Metrics.DBPath = ExpandPath(raw.Metrics.DBPath)
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}

// Dir returns the ragdeck config directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir)
}
