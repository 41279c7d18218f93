package cache

import (
	"context"

	"github.com/ZaguanLabs/transly"
)

// Restore seeds store with the entries of snap, in saved order. Entries past
// the store's capacity evict the ones loaded before them.
// It returns the number of entries loaded.
func Restore(ctx context.Context, store Store, snap Snapshot) (int, error) {
	entries, found, err := snap.Load(ctx)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}

	for _, e := range entries {
		if err := store.Put(e.Key, e.Value); err != nil {
			return 0, &transly.CachePersistenceError{
				Path:    snap.Location(),
				Op:      "load",
				Message: "seeding cache",
				Cause:   err,
			}
		}
	}
	return len(entries), nil
}

// Persister saves a store's live entries to a snapshot.
type Persister struct {
	store Snapshotter
	snap  Snapshot
}

// NewPersister ties store to snap.
func NewPersister(store Snapshotter, snap Snapshot) *Persister {
	return &Persister{store: store, snap: snap}
}

// Persist overwrites the snapshot with the store's current live entries.
func (p *Persister) Persist(ctx context.Context) error {
	return p.snap.Save(ctx, p.store.Entries())
}

// Location returns where the snapshot is written.
func (p *Persister) Location() string {
	return p.snap.Location()
}

// Verify Persister implements transly.Persister
var _ transly.Persister = (*Persister)(nil)
