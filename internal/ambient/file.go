package ambient

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/ragdeck/ragdeck/internal/theme"
)

// HintFile is the appearance hint file name inside the config directory.
// Desktop theme switchers (or a shell hook) write "light" or "dark" into it
// to push appearance changes into running ragdeck sessions.
const HintFile = "appearance"

// File watches an appearance hint file and notifies subscribers when its
// content changes. The first line of the file names the appearance;
// anything unrecognized leaves the last known signal in place.
type File struct {
	source

	path   string
	logger *slog.Logger
	w      *fsnotify.Watcher
	done   chan struct{}

	mu     sync.Mutex
	last   theme.Ambient
	closed bool
}

// NewFile starts watching path. The file's current content seeds the
// signal; a missing or unreadable file seeds light.
func NewFile(path string, logger *slog.Logger) (*File, error) {
	if logger == nil {
		logger = slog.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory, not the file: editors and theme switchers tend
	// to replace the file, which drops a direct watch.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	f := &File{
		path:   path,
		logger: logger,
		w:      w,
		done:   make(chan struct{}),
		last:   theme.AmbientLight,
	}
	if a, ok := readHint(path); ok {
		f.last = a
	}

	go f.loop()
	return f, nil
}

// Current returns the last signal read from the hint file.
func (f *File) Current() theme.Ambient {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// Close stops the watcher and drops all subscribers. Idempotent.
func (f *File) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	f.mu.Unlock()

	close(f.done)
	f.w.Close()
	f.clear()
}

func (f *File) loop() {
	for {
		select {
		case <-f.done:
			return
		case ev, ok := <-f.w.Events:
			if !ok {
				return
			}
			if ev.Name != f.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			f.reload()
		case err, ok := <-f.w.Errors:
			if !ok {
				return
			}
			f.logger.Debug("appearance watch error", "err", err)
		}
	}
}

func (f *File) reload() {
	a, ok := readHint(f.path)
	if !ok {
		return
	}
	f.mu.Lock()
	changed := !f.closed && a != f.last
	f.last = a
	f.mu.Unlock()
	if changed {
		f.notify(a)
	}
}

// readHint parses the first line of the hint file.
func readHint(path string) (theme.Ambient, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	switch strings.ToLower(strings.TrimSpace(string(line))) {
	case "light":
		return theme.AmbientLight, true
	case "dark":
		return theme.AmbientDark, true
	}
	return "", false
}
