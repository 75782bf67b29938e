package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Backend BackendConfig `json:"backend"`
	UI      UIConfig      `json:"ui"`
	Keymap  KeymapConfig  `json:"keymap"`
	Metrics MetricsConfig `json:"metrics"`
}

// BackendConfig points at the RAG Explorer backend API.
type BackendConfig struct {
	BaseURL string        `json:"baseUrl"`
	Timeout time.Duration `json:"timeout"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter bool `json:"showFooter"`
	ShowClock  bool `json:"showClock"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// MetricsConfig configures the local usage metrics collector.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	DBPath  string `json:"dbPath"` // relative paths resolve under the config dir
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 15 * time.Second,
		},
		UI: UIConfig{
			ShowFooter: true,
			ShowClock:  true,
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		Metrics: MetricsConfig{
			Enabled: true,
			DBPath:  "metrics.db",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = 15 * time.Second
	}
	return nil
}
