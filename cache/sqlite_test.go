package cache

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZaguanLabs/transly"
	"github.com/ZaguanLabs/transly/jsonmap"
)

// skipWithoutSQLite skips when the driver was built without cgo.
func skipWithoutSQLite(t *testing.T) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err == nil {
		err = db.Ping()
		db.Close()
	}
	if err != nil {
		t.Skipf("sqlite3 driver not available: %v", err)
	}
}

func TestSQLiteSnapshot_RoundTrip(t *testing.T) {
	skipWithoutSQLite(t)
	ctx := context.Background()
	snap := NewSQLiteSnapshot(filepath.Join(t.TempDir(), "cache.db"))

	src := NewLRUCache(10, time.Hour)
	src.Put("a", "1")
	src.Put("b", "2")
	src.Get("a")

	if err := NewPersister(src, snap).Persist(ctx); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	entries, found, err := snap.Load(ctx)
	if err != nil || !found {
		t.Fatalf("Load failed: found=%v err=%v", found, err)
	}
	want := []jsonmap.Pair{{Key: "b", Value: "2"}, {Key: "a", Value: "1"}}
	if len(entries) != len(want) || entries[0] != want[0] || entries[1] != want[1] {
		t.Errorf("Load() = %v, want %v", entries, want)
	}

	// A second save replaces the contents.
	if err := snap.Save(ctx, []jsonmap.Pair{{Key: "c", Value: "3"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	dst := NewLRUCache(10, time.Hour)
	if n, err := Restore(ctx, dst, snap); err != nil || n != 1 {
		t.Fatalf("Restore = %d, %v", n, err)
	}
	if val, ok := dst.Get("c"); !ok || val != "3" {
		t.Errorf("c = %q (ok=%v)", val, ok)
	}
}

func TestSQLiteSnapshot_MissingFile(t *testing.T) {
	snap := NewSQLiteSnapshot(filepath.Join(t.TempDir(), "absent.db"))

	_, found, err := snap.Load(context.Background())
	if err != nil || found {
		t.Errorf("missing database: found=%v err=%v", found, err)
	}
}

func TestSQLiteSnapshot_NotADatabase(t *testing.T) {
	skipWithoutSQLite(t)
	path := filepath.Join(t.TempDir(), "cache.db")
	if err := os.WriteFile(path, []byte("this is not sqlite"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := NewSQLiteSnapshot(path).Load(context.Background())
	var perr *transly.CachePersistenceError
	if !errors.As(err, &perr) || perr.Op != "load" {
		t.Errorf("expected load CachePersistenceError, got %v", err)
	}
}
