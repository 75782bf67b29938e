package ambient

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/ragdeck/ragdeck/internal/theme"
)

// envOverride forces the detected appearance, mainly for CI and screenshot
// runs where the terminal cannot be probed.
const envOverride = "RAGDECK_THEME_BG"

// Terminal reports the terminal's background appearance. Terminals expose
// no change stream, so Recheck re-runs detection; the app calls it on focus
// and on a periodic tick, and subscribers hear about it only when the
// answer actually changes.
type Terminal struct {
	source

	mu   sync.Mutex
	last theme.Ambient
}

// NewTerminal snapshots the current appearance and returns a ready watcher.
func NewTerminal() *Terminal {
	return &Terminal{last: detect()}
}

// Current returns the appearance from the most recent detection.
func (t *Terminal) Current() theme.Ambient {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

// Recheck re-runs detection and notifies subscribers if the appearance
// changed since the last check.
func (t *Terminal) Recheck() {
	a := detect()
	t.mu.Lock()
	changed := a != t.last
	t.last = a
	t.mu.Unlock()
	if changed {
		t.notify(a)
	}
}

// Close drops all subscribers.
func (t *Terminal) Close() {
	t.clear()
}

// detect probes the environment for a light or dark background. Order:
// explicit env override, the COLORFGBG convention, then a terminal query
// via lipgloss. When nothing answers, light is assumed.
func detect() theme.Ambient {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(envOverride))) {
	case "light":
		return theme.AmbientLight
	case "dark":
		return theme.AmbientDark
	}

	if a, ok := fromColorFgBg(os.Getenv("COLORFGBG")); ok {
		return a
	}

	if lipgloss.HasDarkBackground() {
		return theme.AmbientDark
	}
	return theme.AmbientLight
}

// fromColorFgBg parses the COLORFGBG convention, usually "fg;bg" but
// sometimes with more segments. The last segment is the background color
// number; low numbers are dark palette entries.
func fromColorFgBg(v string) (theme.Ambient, bool) {
	if v == "" {
		return "", false
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return "", false
	}
	if bg < 7 {
		return theme.AmbientDark, true
	}
	return theme.AmbientLight, true
}
