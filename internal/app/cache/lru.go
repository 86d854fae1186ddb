package cache

import (
	"container/list"
	"context"
	"sync"
)

// lruEntry represents an entry in the LRU cache.
type lruEntry[V any] struct {
	key   string
	value V
}

// LRU is a thread-safe in-process cache bounded by entry count. When the
// ceiling is reached the least recently used entry is evicted. Entries never
// expire by time.
type LRU[V any] struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element // key -> list element
	order   *list.List               // doubly-linked list for LRU ordering
	hits    uint64
	misses  uint64
	evicted uint64
}

// DefaultMaxEntries bounds the cache when no ceiling is configured.
const DefaultMaxEntries = 512

// NewLRU creates an LRU cache holding at most maxSize entries.
func NewLRU[V any](maxSize int) *LRU[V] {
	if maxSize <= 0 {
		maxSize = DefaultMaxEntries
	}
	return &LRU[V]{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		order:   list.New(),
	}
}

// Get retrieves a value by key and marks it as recently used.
func (c *LRU[V]) Get(_ context.Context, key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, exists := c.items[key]
	if !exists {
		c.misses++
		var zero V
		return zero, false
	}

	c.order.MoveToFront(element)
	c.hits++
	return element.Value.(*lruEntry[V]).value, true
}

// Put stores a value with the given key and marks it as recently used.
func (c *LRU[V]) Put(_ context.Context, key string, value V) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if element, exists := c.items[key]; exists {
		element.Value.(*lruEntry[V]).value = value
		c.order.MoveToFront(element)
		return nil
	}

	element := c.order.PushFront(&lruEntry[V]{key: key, value: value})
	c.items[key] = element

	if len(c.items) > c.maxSize {
		c.evictOldest()
	}
	return nil
}

// Purge discards all entries.
func (c *LRU[V]) Purge(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.order.Init()
	return nil
}

// Len reports the current entry count.
func (c *LRU[V]) Len(_ context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns cumulative hit/miss/eviction counters. Purge does not
// reset them.
func (c *LRU[V]) Stats() (hits, misses, evicted uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.evicted
}

func (c *LRU[V]) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	entry := oldest.Value.(*lruEntry[V])
	c.order.Remove(oldest)
	delete(c.items, entry.key)
	c.evicted++
}
