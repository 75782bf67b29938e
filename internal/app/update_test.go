package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ragdeck/ragdeck/internal/ambient"
	"github.com/ragdeck/ragdeck/internal/api"
	"github.com/ragdeck/ragdeck/internal/config"
	"github.com/ragdeck/ragdeck/internal/keymap"
	"github.com/ragdeck/ragdeck/internal/metrics"
	"github.com/ragdeck/ragdeck/internal/state"
	"github.com/ragdeck/ragdeck/internal/styles"
	"github.com/ragdeck/ragdeck/internal/theme"
)

func newTestModel(t *testing.T, terminal *ambient.Terminal) *Model {
	t.Helper()

	store := state.Open(t.TempDir(), nil)
	themes := theme.New(store.ThemePrefs(), terminal, styles.Applier{})
	t.Cleanup(themes.Close)

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)

	collector := metrics.Open("", nil)
	t.Cleanup(func() { _ = collector.Close() })

	return New(Options{
		Config:    config.Default(),
		Keymap:    km,
		Themes:    themes,
		Terminal:  terminal,
		Store:     store,
		Collector: collector,
		Client:    api.NewClient("http://127.0.0.1:1", time.Second),
	})
}

// Watcher subscribers run synchronously inside Recheck, and one of them
// sends back into the program. Update must therefore hand detection off
// to a command instead of running it inline, or the event loop blocks on
// its own Send.
func TestFocusRecheckNotifiesOffUpdateLoop(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("RAGDECK_THEME_BG", "light")

	terminal := ambient.NewTerminal()
	defer terminal.Close()
	m := newTestModel(t, terminal)

	notified := make(chan theme.Ambient, 1)
	unsub := terminal.Subscribe(func(a theme.Ambient) { notified <- a })
	defer unsub()

	t.Setenv("RAGDECK_THEME_BG", "dark")
	_, cmd := m.Update(tea.FocusMsg{})

	select {
	case <-notified:
		t.Fatal("subscriber fired from inside Update")
	default:
	}

	if cmd == nil {
		t.Fatal("Update returned no command to run detection")
	}
	cmd()

	select {
	case a := <-notified:
		if a != theme.AmbientDark {
			t.Errorf("notified with %q, want dark", a)
		}
	default:
		t.Fatal("running the command did not deliver the change")
	}
}

func TestIsControlKey(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want bool
	}{
		// Keys that stay routable while typing
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, true},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, true},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, true},
		{"shift+tab", tea.KeyMsg{Type: tea.KeyShiftTab}, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, true},

		// Printable keys that a focused input should consume
		{"rune q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, false},
		{"rune slash", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}}, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, false},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isControlKey(tt.key)
			if got != tt.want {
				t.Errorf("isControlKey(%s) = %v, want %v", tt.key.String(), got, tt.want)
			}
		})
	}
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name    string
		content string
		n       int
		want    string
	}{
		{"short passes through", "hello", 10, "hello"},
		{"exact length kept", "hello", 5, "hello"},
		{"trims whitespace", "  hello  ", 10, "hello"},
		{"ascii truncated", "hello world", 5, "hello…"},
		{"multibyte stays on rune boundary", "héllo", 3, "hé…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snippet(tt.content, tt.n)
			if got != tt.want {
				t.Errorf("snippet(%q, %d) = %q, want %q", tt.content, tt.n, got, tt.want)
			}
		})
	}
}

func TestIndent(t *testing.T) {
	got := indent("a\nb", 2)
	want := "  a\n  b"
	if got != want {
		t.Errorf("indent = %q, want %q", got, want)
	}
}
