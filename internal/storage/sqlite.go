package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/launchrank/internal/frecency"
	"github.com/dshills/launchrank/pkg/types"
)

// ErrClosed is returned by operations on a closed history
var ErrClosed = errors.New("history database closed")

// SQLiteHistory persists launch history in a SQLite database
type SQLiteHistory struct {
	db   *sql.DB
	path string
}

var _ frecency.Backend = (*SQLiteHistory)(nil)

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// A single connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}

// NewSQLiteHistory opens (creating if needed) the history database at
// dbPath and applies pending migrations
func NewSQLiteHistory(dbPath string) (*SQLiteHistory, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create history dir: %w", err)
		}
	}

	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteHistory{db: db, path: dbPath}, nil
}

// Location returns the database path
func (h *SQLiteHistory) Location() string {
	return h.path
}

// Close closes the database connection
func (h *SQLiteHistory) Close() error {
	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}

// Load reads every history row. An empty table is an empty mapping, not
// ErrNoHistory, since the schema itself was created on open.
func (h *SQLiteHistory) Load(ctx context.Context) (map[string]types.FrecencyEntry, error) {
	if h.db == nil {
		return nil, ErrClosed
	}

	rows, err := h.db.QueryContext(ctx, "SELECT item_id, frequency, last_accessed FROM launch_history")
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make(map[string]types.FrecencyEntry)
	for rows.Next() {
		var (
			id             string
			freq, accessed int64
		)
		if err := rows.Scan(&id, &freq, &accessed); err != nil {
			return nil, fmt.Errorf("%w: %v", frecency.ErrCorruptHistory, err)
		}
		if freq < 0 || freq > int64(^uint32(0)) || accessed < 0 {
			return nil, fmt.Errorf("%w: row %q out of range", frecency.ErrCorruptHistory, id)
		}
		entries[id] = types.FrecencyEntry{Frequency: uint32(freq), LastAccessed: uint64(accessed)}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return entries, nil
}

// Save replaces the stored mapping with entries in one transaction
func (h *SQLiteHistory) Save(ctx context.Context, entries map[string]types.FrecencyEntry) error {
	if h.db == nil {
		return ErrClosed
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stale, err := staleIDs(ctx, tx, entries)
	if err != nil {
		return err
	}
	for _, id := range stale {
		if _, err := tx.ExecContext(ctx, "DELETE FROM launch_history WHERE item_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete history row %q: %w", id, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO launch_history (item_id, frequency, last_accessed)
		VALUES (?, ?, ?)
		ON CONFLICT(item_id) DO UPDATE SET
			frequency = excluded.frequency,
			last_accessed = excluded.last_accessed
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for id, e := range entries {
		// SQLite integers are signed; clamp rather than wrap
		accessed := int64(e.LastAccessed)
		if e.LastAccessed > uint64(1<<63-1) {
			accessed = 1<<63 - 1
		}
		if _, err := stmt.ExecContext(ctx, id, int64(e.Frequency), accessed); err != nil {
			return fmt.Errorf("failed to upsert history row %q: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history: %w", err)
	}
	return nil
}

// staleIDs lists stored ids missing from entries
func staleIDs(ctx context.Context, tx *sql.Tx, entries map[string]types.FrecencyEntry) ([]string, error) {
	rows, err := tx.QueryContext(ctx, "SELECT item_id FROM launch_history")
	if err != nil {
		return nil, fmt.Errorf("failed to list history ids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stale []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan history id: %w", err)
		}
		if _, ok := entries[id]; !ok {
			stale = append(stale, id)
		}
	}
	return stale, rows.Err()
}
