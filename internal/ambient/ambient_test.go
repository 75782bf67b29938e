package ambient

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ragdeck/ragdeck/internal/theme"
)

func TestFromColorFgBg(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  theme.Ambient
		ok    bool
	}{
		{"dark background", "15;0", theme.AmbientDark, true},
		{"light background", "0;15", theme.AmbientLight, true},
		{"three segments uses last", "15;default;0", theme.AmbientDark, true},
		{"boundary 7 is light", "15;7", theme.AmbientLight, true},
		{"boundary 6 is dark", "15;6", theme.AmbientDark, true},
		{"empty", "", "", false},
		{"non-numeric", "15;default", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fromColorFgBg(tt.value)
			if ok != tt.ok {
				t.Fatalf("fromColorFgBg(%q) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("fromColorFgBg(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestDetectEnvOverride(t *testing.T) {
	t.Setenv("COLORFGBG", "")

	t.Setenv(envOverride, "dark")
	if got := detect(); got != theme.AmbientDark {
		t.Errorf("detect() = %q, want dark", got)
	}

	t.Setenv(envOverride, "LIGHT")
	if got := detect(); got != theme.AmbientLight {
		t.Errorf("detect() = %q, want light", got)
	}
}

func TestDetectColorFgBg(t *testing.T) {
	t.Setenv(envOverride, "")
	t.Setenv("COLORFGBG", "15;0")

	if got := detect(); got != theme.AmbientDark {
		t.Errorf("detect() = %q, want dark from COLORFGBG", got)
	}
}

func TestTerminalRecheckNotifiesOnChange(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv(envOverride, "light")

	w := NewTerminal()
	defer w.Close()

	if got := w.Current(); got != theme.AmbientLight {
		t.Fatalf("Current() = %q, want light", got)
	}

	var fired []theme.Ambient
	unsub := w.Subscribe(func(a theme.Ambient) { fired = append(fired, a) })
	defer unsub()

	// No change: no notification.
	w.Recheck()
	if len(fired) != 0 {
		t.Fatalf("notified %d times without a change", len(fired))
	}

	t.Setenv(envOverride, "dark")
	w.Recheck()
	if len(fired) != 1 || fired[0] != theme.AmbientDark {
		t.Fatalf("fired = %v, want one dark notification", fired)
	}
	if got := w.Current(); got != theme.AmbientDark {
		t.Errorf("Current() = %q, want dark", got)
	}
}

func TestUnsubscribeIdempotent(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv(envOverride, "light")

	w := NewTerminal()
	defer w.Close()

	calls := 0
	unsub := w.Subscribe(func(theme.Ambient) { calls++ })

	unsub()
	unsub() // second call is a no-op

	t.Setenv(envOverride, "dark")
	w.Recheck()
	if calls != 0 {
		t.Errorf("unsubscribed callback fired %d times", calls)
	}
}

func TestUnsubscribeAfterClose(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv(envOverride, "light")

	w := NewTerminal()
	unsub := w.Subscribe(func(theme.Ambient) {})
	w.Close()
	unsub() // must not panic after teardown
}

func TestSubscriberCanUnsubscribeInCallback(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv(envOverride, "light")

	w := NewTerminal()
	defer w.Close()

	calls := 0
	var unsub func()
	unsub = w.Subscribe(func(theme.Ambient) {
		calls++
		unsub()
	})

	t.Setenv(envOverride, "dark")
	w.Recheck()
	t.Setenv(envOverride, "light")
	w.Recheck()

	if calls != 1 {
		t.Errorf("calls = %d, want 1 after self-unsubscribe", calls)
	}
}

func TestReadHint(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, HintFile)

	if _, ok := readHint(path); ok {
		t.Error("readHint on missing file reported ok")
	}

	tests := []struct {
		name    string
		content string
		want    theme.Ambient
		ok      bool
	}{
		{"dark", "dark\n", theme.AmbientDark, true},
		{"light with whitespace", "  light  \n", theme.AmbientLight, true},
		{"first line wins", "dark\nlight\n", theme.AmbientDark, true},
		{"mixed case", "Dark\n", theme.AmbientDark, true},
		{"junk", "solarized\n", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			got, ok := readHint(path)
			if ok != tt.ok {
				t.Fatalf("readHint ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("readHint = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFileWatcherDeliversChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, HintFile)
	if err := os.WriteFile(path, []byte("light\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewFile(path, nil)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	defer w.Close()

	if got := w.Current(); got != theme.AmbientLight {
		t.Fatalf("Current() = %q, want light", got)
	}

	got := make(chan theme.Ambient, 1)
	unsub := w.Subscribe(func(a theme.Ambient) {
		select {
		case got <- a:
		default:
		}
	})
	defer unsub()

	if err := os.WriteFile(path, []byte("dark\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case a := <-got:
		if a != theme.AmbientDark {
			t.Errorf("notified with %q, want dark", a)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no notification within 2s")
	}
}

func TestFileWatcherCloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, HintFile)

	w, err := NewFile(path, nil)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	w.Close()
	w.Close() // must not panic
}
