// Package metrics counts local usage events (theme switches, API calls,
// page views) and periodically flushes them to a small SQLite database so
// counts survive restarts. Everything degrades: without a database the
// collector keeps counting in memory.
package metrics

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Well-known event names.
const (
	EventThemeSwitch = "theme_switch"
	EventAPIRequest  = "api_request"
	EventAPIError    = "api_error"
	EventPageView    = "page_view"
)

// Collector accumulates named counters.
type Collector struct {
	logger *slog.Logger

	mu      sync.Mutex
	counts  map[string]int64
	pending map[string]int64 // counted since the last flush
	db      *sql.DB
}

// Open creates a collector backed by the SQLite database at dbPath. An
// empty path or an open/schema failure yields a memory-only collector,
// never an error.
func Open(dbPath string, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Collector{
		logger:  logger,
		counts:  make(map[string]int64),
		pending: make(map[string]int64),
	}
	if dbPath == "" {
		return c
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		logger.Warn("metrics db open failed, counting in memory only", "path", dbPath, "err", err)
		return c
	}
	if err := initSchema(db); err != nil {
		logger.Warn("metrics schema init failed, counting in memory only", "path", dbPath, "err", err)
		db.Close()
		return c
	}

	c.db = db
	c.loadCounts()
	return c
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS counters (
			name  TEXT PRIMARY KEY,
			count INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return fmt.Errorf("create counters table: %w", err)
	}
	return nil
}

func (c *Collector) loadCounts() {
	rows, err := c.db.Query(`SELECT name, count FROM counters`)
	if err != nil {
		c.logger.Debug("metrics load failed", "err", err)
		return
	}
	defer rows.Close()

	c.mu.Lock()
	defer c.mu.Unlock()
	for rows.Next() {
		var name string
		var count int64
		if err := rows.Scan(&name, &count); err != nil {
			continue
		}
		c.counts[name] = count
	}
}

// Inc adds one to the named counter.
func (c *Collector) Inc(name string) {
	c.mu.Lock()
	c.counts[name]++
	c.pending[name]++
	c.mu.Unlock()
}

// Snapshot returns a copy of all counters.
func (c *Collector) Snapshot() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// Flush writes counts accumulated since the last flush to the database.
// Memory-only collectors flush to nowhere and report nil.
func (c *Collector) Flush() error {
	c.mu.Lock()
	pending := c.pending
	c.pending = make(map[string]int64)
	c.mu.Unlock()

	if c.db == nil || len(pending) == 0 {
		return nil
	}

	tx, err := c.db.Begin()
	if err != nil {
		c.requeue(pending)
		return fmt.Errorf("begin metrics flush: %w", err)
	}
	for name, delta := range pending {
		if _, err := tx.Exec(`
			INSERT INTO counters (name, count) VALUES (?, ?)
			ON CONFLICT(name) DO UPDATE SET count = count + excluded.count
		`, name, delta); err != nil {
			tx.Rollback()
			c.requeue(pending)
			return fmt.Errorf("flush counter %s: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		c.requeue(pending)
		return fmt.Errorf("commit metrics flush: %w", err)
	}
	return nil
}

// requeue folds a failed flush back into pending so no count is lost.
func (c *Collector) requeue(pending map[string]int64) {
	c.mu.Lock()
	for name, delta := range pending {
		c.pending[name] += delta
	}
	c.mu.Unlock()
}

// Close flushes and releases the database.
func (c *Collector) Close() error {
	err := c.Flush()
	if c.db != nil {
		if cerr := c.db.Close(); err == nil {
			err = cerr
		}
		c.db = nil
	}
	return err
}
