package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ragdeck/ragdeck/internal/ambient"
	"github.com/ragdeck/ragdeck/internal/api"
	"github.com/ragdeck/ragdeck/internal/app"
	"github.com/ragdeck/ragdeck/internal/config"
	"github.com/ragdeck/ragdeck/internal/keymap"
	"github.com/ragdeck/ragdeck/internal/metrics"
	"github.com/ragdeck/ragdeck/internal/msg"
	"github.com/ragdeck/ragdeck/internal/state"
	"github.com/ragdeck/ragdeck/internal/styles"
	"github.com/ragdeck/ragdeck/internal/theme"
)

// Version is set at build time via ldflags
var Version = ""

var (
	configPath   = flag.String("config", "", "path to config file")
	debugFlag    = flag.Bool("debug", false, "enable debug logging")
	versionFlag  = flag.Bool("version", false, "print version and exit")
	shortVersion = flag.Bool("v", false, "print version and exit (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *shortVersion {
		fmt.Printf("ragdeck version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *debugFlag {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Persistent UI state is best-effort; a broken state file never blocks
	// startup.
	store := state.Open(state.DefaultDir(), logger)

	// Prefer an explicit appearance hint file when the user has one,
	// otherwise fall back to terminal background detection.
	watcher, terminal := newAppearanceWatcher(logger)
	defer closeWatcher(watcher)

	themes := theme.New(store.ThemePrefs(), watcher, styles.Applier{})
	defer themes.Close()

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	for key, cmdID := range cfg.Keymap.Overrides {
		km.SetUserOverride(key, cmdID)
	}

	collector := metrics.Open(metricsPath(cfg), logger)
	defer func() {
		if err := collector.Close(); err != nil {
			logger.Warn("metrics close failed", "err", err)
		}
	}()

	client := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	model := app.New(app.Options{
		Config:    cfg,
		Keymap:    km,
		Themes:    themes,
		Terminal:  terminal,
		Store:     store,
		Collector: collector,
		Client:    client,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())

	// Ambient changes can arrive off the Bubble Tea loop; nudge the
	// program so the new styles are painted.
	unsub := watcher.Subscribe(func(theme.Ambient) {
		p.Send(msg.AmbientChangedMsg{})
	})
	defer unsub()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// newAppearanceWatcher picks the ambient source. The *Terminal return is
// nil when the hint file drives appearance; the app uses it to skip
// focus-triggered rechecks.
func newAppearanceWatcher(logger *slog.Logger) (theme.Watcher, *ambient.Terminal) {
	if dir := config.Dir(); dir != "" {
		hint := filepath.Join(dir, ambient.HintFile)
		if _, err := os.Stat(hint); err == nil {
			if f, err := ambient.NewFile(hint, logger); err == nil {
				logger.Debug("using appearance hint file", "path", hint)
				return f, nil
			}
			logger.Warn("appearance hint file unusable, using terminal detection", "path", hint)
		}
	}
	t := ambient.NewTerminal()
	return t, t
}

func closeWatcher(w theme.Watcher) {
	switch w := w.(type) {
	case *ambient.File:
		w.Close()
	case *ambient.Terminal:
		w.Close()
	}
}

// metricsPath resolves the metrics database location, or returns ""
// when collection is disabled so the collector stays in memory.
func metricsPath(cfg *config.Config) string {
	if !cfg.Metrics.Enabled {
		return ""
	}
	path := cfg.Metrics.DBPath
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	dir := config.Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, path)
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	if revision != "" {
		ver := "devel+" + revision
		if len(ver) > 20 {
			ver = ver[:20]
		}
		if dirty {
			ver += "+dirty"
		}
		return ver
	}

	return "devel"
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ragdeck [options]\n\n")
		fmt.Fprintf(os.Stderr, "A TUI dashboard for a RAG document backend.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}
