package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/ZaguanLabs/transly/jsonmap"
)

// lruEntry holds a cached value with its insertion time.
type lruEntry struct {
	key        string
	value      string
	insertedAt time.Time
}

// LRUCache is a thread-safe in-memory cache bounded by entry count, with
// least-recently-used eviction and lazy TTL expiry.
type LRUCache struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	ll         *list.List // front is most recently used
	items      map[string]*list.Element
	now        func() time.Time
}

// NewLRUCache creates a cache holding at most maxEntries entries that expire
// ttl after insertion. If maxEntries is 0 or negative the cache is unbounded;
// if ttl is 0 or negative entries never expire.
func NewLRUCache(maxEntries int, ttl time.Duration) *LRUCache {
	if ttl < 0 {
		ttl = 0
	}
	return &LRUCache{
		maxEntries: maxEntries,
		ttl:        ttl,
		ll:         list.New(),
		items:      make(map[string]*list.Element),
		now:        time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (c *LRUCache) WithClock(now func() time.Time) *LRUCache {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}

// Get retrieves a value and marks it as most recently used.
// A hit does not extend the entry's lifetime.
func (c *LRUCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return "", false
	}

	e := el.Value.(*lruEntry)
	if c.expired(e, c.now()) {
		c.removeElement(el)
		return "", false
	}

	c.ll.MoveToFront(el)
	return e.value, true
}

// Put inserts or overwrites a value. Inserting a new key into a full cache
// evicts the least recently used entry first.
func (c *LRUCache) Put(key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	if el, ok := c.items[key]; ok {
		e := el.Value.(*lruEntry)
		e.value = value
		e.insertedAt = now
		c.ll.MoveToFront(el)
		return nil
	}

	if c.maxEntries > 0 && c.ll.Len() >= c.maxEntries {
		c.removeElement(c.ll.Back())
	}

	c.items[key] = c.ll.PushFront(&lruEntry{
		key:        key,
		value:      value,
		insertedAt: now,
	})
	return nil
}

// Delete removes a key. It is a no-op for unknown keys.
func (c *LRUCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.removeElement(el)
	}
}

// Len returns the number of entries held (including expired ones not yet reclaimed).
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Clear removes all entries from the cache.
func (c *LRUCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.items = make(map[string]*list.Element)
}

// Entries returns all non-expired entries, least recently used first.
// Replaying them through Put restores the same recency order.
func (c *LRUCache) Entries() []jsonmap.Pair {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	result := make([]jsonmap.Pair, 0, c.ll.Len())

	for el := c.ll.Back(); el != nil; el = el.Prev() {
		e := el.Value.(*lruEntry)
		if c.expired(e, now) {
			continue
		}
		result = append(result, jsonmap.Pair{Key: e.key, Value: e.value})
	}

	return result
}

// MaxEntries returns the capacity (0 means unbounded).
func (c *LRUCache) MaxEntries() int {
	return c.maxEntries
}

// TTL returns the entry lifetime (0 means entries never expire).
func (c *LRUCache) TTL() time.Duration {
	return c.ttl
}

// expired must be called with the lock held.
func (c *LRUCache) expired(e *lruEntry, now time.Time) bool {
	return c.ttl > 0 && now.Sub(e.insertedAt) > c.ttl
}

// removeElement must be called with the lock held.
func (c *LRUCache) removeElement(el *list.Element) {
	c.ll.Remove(el)
	delete(c.items, el.Value.(*lruEntry).key)
}

// Verify LRUCache implements Snapshotter
var _ Snapshotter = (*LRUCache)(nil)
