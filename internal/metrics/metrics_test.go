package metrics

import (
	"path/filepath"
	"testing"
)

func TestMemoryOnlyCollector(t *testing.T) {
	c := Open("", nil)
	defer c.Close()

	c.Inc(EventThemeSwitch)
	c.Inc(EventThemeSwitch)
	c.Inc(EventPageView)

	snap := c.Snapshot()
	if snap[EventThemeSwitch] != 2 {
		t.Errorf("theme_switch = %d, want 2", snap[EventThemeSwitch])
	}
	if snap[EventPageView] != 1 {
		t.Errorf("page_view = %d, want 1", snap[EventPageView])
	}

	if err := c.Flush(); err != nil {
		t.Errorf("Flush on memory-only collector: %v", err)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	c := Open("", nil)
	defer c.Close()

	c.Inc(EventAPIRequest)
	snap := c.Snapshot()
	snap[EventAPIRequest] = 100

	if got := c.Snapshot()[EventAPIRequest]; got != 1 {
		t.Errorf("counter = %d after mutating a snapshot, want 1", got)
	}
}

func TestFlushPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.db")

	c := Open(path, nil)
	c.Inc(EventThemeSwitch)
	c.Inc(EventThemeSwitch)
	c.Inc(EventAPIRequest)
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := Open(path, nil)
	defer reopened.Close()

	snap := reopened.Snapshot()
	if snap[EventThemeSwitch] != 2 {
		t.Errorf("theme_switch after reopen = %d, want 2", snap[EventThemeSwitch])
	}
	if snap[EventAPIRequest] != 1 {
		t.Errorf("api_request after reopen = %d, want 1", snap[EventAPIRequest])
	}
}

func TestFlushAccumulates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.db")

	c := Open(path, nil)
	c.Inc(EventPageView)
	if err := c.Flush(); err != nil {
		t.Fatalf("first Flush: %v", err)
	}
	c.Inc(EventPageView)
	if err := c.Flush(); err != nil {
		t.Fatalf("second Flush: %v", err)
	}
	c.Close()

	reopened := Open(path, nil)
	defer reopened.Close()
	if got := reopened.Snapshot()[EventPageView]; got != 2 {
		t.Errorf("page_view = %d, want 2 accumulated across flushes", got)
	}
}

func TestOpenBadPathDegradesToMemory(t *testing.T) {
	// A directory path cannot be opened as a database file.
	c := Open(t.TempDir(), nil)
	defer c.Close()

	c.Inc(EventAPIError)
	if got := c.Snapshot()[EventAPIError]; got != 1 {
		t.Errorf("api_error = %d, want 1 counted in memory", got)
	}
}
