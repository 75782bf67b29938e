package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadFrom missing file: %v", err)
	}

	if cfg.Backend.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q, want default", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s default", cfg.Backend.Timeout)
	}
	if !cfg.UI.ShowFooter {
		t.Error("ShowFooter default should be true")
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled default should be true")
	}
}

func TestLoadFromInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{bad"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom invalid JSON should return error")
	}
}

func TestLoadFromMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"backend": {"baseUrl": "https://rag.example.com/", "timeout": "30s"},
		"ui": {"showFooter": false},
		"keymap": {"overrides": {"x": "cycle-theme"}},
		"metrics": {"enabled": false}
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Backend.BaseURL != "https://rag.example.com" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Backend.Timeout)
	}
	if cfg.UI.ShowFooter {
		t.Error("ShowFooter should be overridden to false")
	}
	if !cfg.UI.ShowClock {
		t.Error("ShowClock should keep its default when absent")
	}
	if cfg.Keymap.Overrides["x"] != "cycle-theme" {
		t.Errorf("keymap override = %q, want cycle-theme", cfg.Keymap.Overrides["x"])
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be overridden to false")
	}
	if cfg.Metrics.DBPath != "metrics.db" {
		t.Errorf("Metrics.DBPath = %q, want default kept", cfg.Metrics.DBPath)
	}
}

func TestLoadFromBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"backend": {"timeout": "soon"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Backend.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want default kept for unparseable duration", cfg.Backend.Timeout)
	}
}

func TestLoadFromExpandsDBPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"metrics": {"dbPath": "~/ragdeck/usage.db"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	want := filepath.Join(home, "ragdeck", "usage.db")
	if cfg.Metrics.DBPath != want {
		t.Errorf("DBPath = %q, want %q", cfg.Metrics.DBPath, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"tilde prefix", "~/data/m.db", filepath.Join(home, "data", "m.db")},
		{"absolute untouched", "/var/lib/m.db", "/var/lib/m.db"},
		{"relative untouched", "m.db", "m.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.path); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestValidateFixesNonPositiveTimeout(t *testing.T) {
	cfg := Default()
	cfg.Backend.Timeout = -time.Second
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Backend.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want reset to 15s", cfg.Backend.Timeout)
	}
}
