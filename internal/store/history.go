// Package store persists the history of committed date values in a
// local sqlite database. The TUI appends on every commit; the CLI
// reads and clears the log.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store locates the history database. The zero value resolves the
// default location (ALMANAC_DIR or ~/.almanac).
type Store struct {
	// Dir overrides the database directory (tests/fixtures).
	Dir string
}

// Entry is one committed value.
type Entry struct {
	ID          int64
	CommittedAt time.Time
	Locale      string
	Kind        string
	Value       string
}

func (s Store) dir() (string, error) {
	if d := strings.TrimSpace(s.Dir); d != "" {
		return d, nil
	}
	if d := strings.TrimSpace(os.Getenv("ALMANAC_DIR")); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".almanac"), nil
}

func (s Store) sqlitePath() (string, error) {
	dir, err := s.dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.sqlite"), nil
}

func (s Store) open(ctx context.Context) (*sql.DB, error) {
	path, err := s.sqlitePath()
	if err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Pragmas for multi-process local usage. WAL enables one writer +
	// many readers; busy_timeout avoids "database is locked" flakiness
	// when the TUI and CLI touch the log concurrently.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := s.migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s Store) migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			committed_at_unixms INTEGER NOT NULL,
			locale TEXT NOT NULL,
			kind TEXT NOT NULL,
			value TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_history_committed ON history(committed_at_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// Append records one committed value.
func (s Store) Append(ctx context.Context, localeTag, kind, value string) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	nowMs := time.Now().UTC().UnixMilli()
	_, err = db.ExecContext(ctx,
		`INSERT INTO history(committed_at_unixms, locale, kind, value) VALUES(?, ?, ?, ?)`,
		nowMs, strings.TrimSpace(localeTag), strings.TrimSpace(kind), strings.TrimSpace(value))
	return err
}

// List returns history entries, newest first. A limit of zero returns
// everything.
func (s Store) List(ctx context.Context, limit int) ([]Entry, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, committed_at_unixms, locale, kind, value
	      FROM history
	      ORDER BY committed_at_unixms DESC, id DESC`
	var rows *sql.Rows
	if limit > 0 {
		rows, err = db.QueryContext(ctx, q+` LIMIT ?`, limit)
	} else {
		rows, err = db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var tsMs int64
		if err := rows.Scan(&e.ID, &tsMs, &e.Locale, &e.Kind, &e.Value); err != nil {
			return nil, err
		}
		e.CommittedAt = time.UnixMilli(tsMs).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Entry{}
	}
	return out, nil
}

// Clear deletes all history entries and reports how many were removed.
func (s Store) Clear(ctx context.Context) (int64, error) {
	db, err := s.open(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM history`)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}
