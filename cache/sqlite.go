package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ZaguanLabs/transly"
	"github.com/ZaguanLabs/transly/jsonmap"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS translation_cache (
	position INTEGER NOT NULL,
	key      TEXT PRIMARY KEY,
	value    TEXT NOT NULL
)`

// SQLiteSnapshot stores the cache in a SQLite database. The table keeps the
// saved order in a position column so recency survives a reload.
type SQLiteSnapshot struct {
	path string
}

// NewSQLiteSnapshot creates a snapshot backed by the database file at path.
func NewSQLiteSnapshot(path string) *SQLiteSnapshot {
	return &SQLiteSnapshot{path: path}
}

// Location returns the database path.
func (s *SQLiteSnapshot) Location() string {
	return s.path
}

// Load reads all entries ordered by position. A missing database file is not
// an error; a file that is not a snapshot database is.
func (s *SQLiteSnapshot) Load(ctx context.Context) ([]jsonmap.Pair, bool, error) {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}

	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return nil, false, s.loadErr("opening database", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT key, value FROM translation_cache ORDER BY position`)
	if err != nil {
		return nil, true, s.loadErr("querying entries", err)
	}
	defer rows.Close()

	var entries []jsonmap.Pair
	for rows.Next() {
		var p jsonmap.Pair
		if err := rows.Scan(&p.Key, &p.Value); err != nil {
			return nil, true, s.loadErr("scanning entry", err)
		}
		entries = append(entries, p)
	}
	if err := rows.Err(); err != nil {
		return nil, true, s.loadErr("reading entries", err)
	}

	return entries, true, nil
}

// Save replaces the table contents in a single transaction.
func (s *SQLiteSnapshot) Save(ctx context.Context, entries []jsonmap.Pair) error {
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return s.saveErr("opening database", err)
	}
	defer db.Close()

	if err := s.replace(ctx, db, entries); err != nil {
		return s.saveErr("writing entries", err)
	}
	return nil
}

func (s *SQLiteSnapshot) replace(ctx context.Context, db *sql.DB, entries []jsonmap.Pair) error {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM translation_cache`); err != nil {
		return fmt.Errorf("clearing table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO translation_cache (position, key, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, i, e.Key, e.Value); err != nil {
			return fmt.Errorf("inserting %q: %w", e.Key, err)
		}
	}

	return tx.Commit()
}

// Remove deletes the database file.
func (s *SQLiteSnapshot) Remove(ctx context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &transly.CachePersistenceError{Path: s.path, Op: "remove", Message: "removing database", Cause: err}
	}
	return nil
}

func (s *SQLiteSnapshot) loadErr(msg string, err error) error {
	return &transly.CachePersistenceError{Path: s.path, Op: "load", Message: msg, Cause: err}
}

func (s *SQLiteSnapshot) saveErr(msg string, err error) error {
	return &transly.CachePersistenceError{Path: s.path, Op: "save", Message: msg, Cause: err}
}

// Verify SQLiteSnapshot implements Snapshot
var _ Snapshot = (*SQLiteSnapshot)(nil)
