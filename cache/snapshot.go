package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZaguanLabs/transly"
	"github.com/ZaguanLabs/transly/jsonmap"
)

// Snapshot is a durable copy of the cache contents.
type Snapshot interface {
	// Load returns the saved entries in saved order. found is false when no snapshot exists yet.
	Load(ctx context.Context) (entries []jsonmap.Pair, found bool, err error)

	// Save replaces the snapshot with entries.
	Save(ctx context.Context, entries []jsonmap.Pair) error

	// Remove deletes the snapshot. Removing a missing snapshot is not an error.
	Remove(ctx context.Context) error

	// Location describes where the snapshot lives.
	Location() string
}

// SnapshotFor picks the snapshot backend from the path's extension:
// ".db", ".sqlite" and ".sqlite3" use SQLite, anything else a JSON file.
func SnapshotFor(path string) Snapshot {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteSnapshot(path)
	default:
		return NewFileSnapshot(path)
	}
}

// FileSnapshot stores the cache as a single flat JSON object mapping cache
// keys to translations.
type FileSnapshot struct {
	path string
}

// NewFileSnapshot creates a JSON snapshot at path.
func NewFileSnapshot(path string) *FileSnapshot {
	return &FileSnapshot{path: path}
}

// Location returns the file path.
func (s *FileSnapshot) Location() string {
	return s.path
}

// Load reads the snapshot file. A missing file is not an error; a file that
// exists but is not a flat JSON object of strings is.
func (s *FileSnapshot) Load(ctx context.Context) ([]jsonmap.Pair, bool, error) {
	data, err := os.ReadFile(s.path) // #nosec G304 - cache path is user-configurable
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &transly.CachePersistenceError{Path: s.path, Op: "load", Message: "reading file", Cause: err}
	}

	entries, err := jsonmap.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, true, &transly.CachePersistenceError{Path: s.path, Op: "load", Message: "invalid snapshot", Cause: err}
	}

	return entries, true, nil
}

// Save writes entries to a temporary file in the target directory and renames
// it over the snapshot, so a crash never leaves a half-written snapshot.
func (s *FileSnapshot) Save(ctx context.Context, entries []jsonmap.Pair) error {
	if err := ctx.Err(); err != nil {
		return &transly.CachePersistenceError{Path: s.path, Op: "save", Message: "cancelled", Cause: err}
	}

	if err := writeFileAtomic(s.path, entries); err != nil {
		return &transly.CachePersistenceError{Path: s.path, Op: "save", Message: "writing snapshot", Cause: err}
	}
	return nil
}

// Remove deletes the snapshot file.
func (s *FileSnapshot) Remove(ctx context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &transly.CachePersistenceError{Path: s.path, Op: "remove", Message: "removing snapshot", Cause: err}
	}
	return nil
}

func writeFileAtomic(path string, entries []jsonmap.Pair) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err = jsonmap.Encode(tmp, entries); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Verify FileSnapshot implements Snapshot
var _ Snapshot = (*FileSnapshot)(nil)
