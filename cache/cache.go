// Package cache provides translation caching and cache persistence.
package cache

import "github.com/ZaguanLabs/transly/jsonmap"

// Store is the interface for translation caching.
type Store interface {
	// Get retrieves a cached translation. Returns empty string and false if not found, evicted or expired.
	Get(key string) (string, bool)

	// Put stores a translation in the cache, overwriting any previous value.
	Put(key string, value string) error
}

// Snapshotter is a Store whose live contents can be listed for persistence.
type Snapshotter interface {
	Store

	// Entries returns the live entries, least recently used first.
	Entries() []jsonmap.Pair
}
