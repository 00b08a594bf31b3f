package cache

import (
	"container/list"
	"sync"
)

// EvictReason tells an eviction callback why an entry left the cache.
type EvictReason int

const (
	// EvictCapacity means the entry was the least recently used one when the cache overflowed.
	EvictCapacity EvictReason = iota
	// EvictRemoved means the entry was removed explicitly.
	EvictRemoved
	// EvictCleared means the whole cache was cleared.
	EvictCleared
)

func (r EvictReason) String() string {
	switch r {
	case EvictCapacity:
		return "capacity"
	case EvictRemoved:
		return "removed"
	case EvictCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// LRUCache is a thread-safe LRU cache. The most recently used entry sits at
// the front; when capacity is exceeded the entry at the back is evicted.
type LRUCache[K comparable, V any] struct {
	capacity int
	items    map[K]*list.Element
	eviction *list.List
	mu       sync.Mutex
	onEvict  func(key K, value V, reason EvictReason)
}

// NewLRUCache creates a new LRU cache with the specified capacity.
// The capacity must be positive, otherwise it panics.
func NewLRUCache[K comparable, V any](capacity int) *LRUCache[K, V] {
	if capacity <= 0 {
		panic("LRU cache capacity must be positive")
	}
	return &LRUCache[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element),
		eviction: list.New(),
	}
}

// SetEvictCallback sets a function called for every entry leaving the cache.
// It runs with the cache lock held and must not call back into the cache.
func (c *LRUCache[K, V]) SetEvictCallback(fn func(key K, value V, reason EvictReason)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// Peek retrieves a value without changing its position.
func (c *LRUCache[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		return elem.Value.(*lruEntry[K, V]).value, true
	}

	var zero V
	return zero, false
}

// Put adds or updates a value and moves it to the front. If the cache grows
// past capacity the entry at the back is evicted with EvictCapacity.
// Returns the previous value and whether it existed.
func (c *LRUCache[K, V]) Put(key K, value V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.eviction.MoveToFront(elem)
		entry := elem.Value.(*lruEntry[K, V])
		old := entry.value
		entry.value = value
		return old, true
	}

	c.items[key] = c.eviction.PushFront(&lruEntry[K, V]{key: key, value: value})

	for c.eviction.Len() > c.capacity {
		c.removeElement(c.eviction.Back(), EvictCapacity)
	}

	var zero V
	return zero, false
}

// Remove deletes key and reports the removed value.
func (c *LRUCache[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		value := elem.Value.(*lruEntry[K, V]).value
		c.removeElement(elem, EvictRemoved)
		return value, true
	}

	var zero V
	return zero, false
}

// Len returns the number of entries.
func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}

// Values returns values ordered from most to least recently used.
func (c *LRUCache[K, V]) Values() []V {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]V, 0, c.eviction.Len())
	for elem := c.eviction.Front(); elem != nil; elem = elem.Next() {
		out = append(out, elem.Value.(*lruEntry[K, V]).value)
	}
	return out
}

// Clear removes all items, oldest first, reporting each with EvictCleared.
func (c *LRUCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for elem := c.eviction.Back(); elem != nil; {
		prev := elem.Prev()
		c.removeElement(elem, EvictCleared)
		elem = prev
	}
}

// Must be called with lock held.
func (c *LRUCache[K, V]) removeElement(elem *list.Element, reason EvictReason) {
	c.eviction.Remove(elem)
	entry := elem.Value.(*lruEntry[K, V])
	delete(c.items, entry.key)

	if c.onEvict != nil {
		c.onEvict(entry.key, entry.value, reason)
	}
}
