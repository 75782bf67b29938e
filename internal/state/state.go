package state

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/ragdeck/ragdeck/internal/theme"
)

const stateFile = "state.json"

// fileState is the on-disk layout. Theme holds one of the literal strings
// "light", "dark" or "system"; absence or an unrecognized value is
// normalized on read, never treated as an error.
type fileState struct {
	Theme      string `json:"theme,omitempty"`
	ActivePage string `json:"activePage,omitempty"`
}

// Store persists small UI preferences to state.json in the config
// directory. Every failure mode is absorbed: an unreadable or corrupt file
// behaves like an absent one, and a failed write keeps the in-memory value
// so the session stays consistent.
type Store struct {
	path   string
	logger *slog.Logger

	mu   sync.RWMutex
	data fileState
}

// Open loads state from dir. It never fails; any read problem yields
// defaults.
func Open(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		path:   filepath.Join(dir, stateFile),
		logger: logger,
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Debug("state unreadable, using defaults", "path", s.path, "err", err)
		}
		return s
	}
	if err := json.Unmarshal(data, &s.data); err != nil {
		logger.Debug("state corrupt, using defaults", "path", s.path, "err", err)
		s.data = fileState{}
	}
	return s
}

// DefaultDir returns the ragdeck config directory, or "" when the home
// directory cannot be determined.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ragdeck")
}

// ThemePreference returns the persisted theme preference, normalized to
// system when missing or malformed.
func (s *Store) ThemePreference() theme.Preference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return theme.NormalizePreference(theme.Preference(s.data.Theme))
}

// SetThemePreference persists a theme preference synchronously. A failed
// write is logged and otherwise absorbed; the in-memory value stands.
func (s *Store) SetThemePreference(p theme.Preference) {
	s.mu.Lock()
	s.data.Theme = string(p)
	s.mu.Unlock()
	s.save()
}

// ActivePage returns the persisted active page ID, or "" when unset.
func (s *Store) ActivePage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.ActivePage
}

// SetActivePage persists the active page ID.
func (s *Store) SetActivePage(id string) {
	s.mu.Lock()
	s.data.ActivePage = id
	s.mu.Unlock()
	s.save()
}

func (s *Store) save() {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.data, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		s.logger.Debug("state marshal failed", "err", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		s.logger.Debug("state dir create failed", "path", s.path, "err", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.logger.Debug("state write failed", "path", s.path, "err", err)
	}
}

// ThemePrefs adapts the store to the theme engine's persistence interface.
type ThemePrefs struct {
	s *Store
}

// ThemePrefs returns a view of the store restricted to the theme key.
func (s *Store) ThemePrefs() ThemePrefs {
	return ThemePrefs{s: s}
}

func (t ThemePrefs) Get() theme.Preference {
	return t.s.ThemePreference()
}

func (t ThemePrefs) Set(p theme.Preference) {
	t.s.SetThemePreference(p)
}
