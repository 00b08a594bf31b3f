// Package cache provides a generic, thread-safe LRU cache.
//
// Put pushes to the front and overflow evicts from the back, Peek reads
// without reordering and Values lists entries newest first, so the cache
// doubles as a bounded newest-first queue. The eviction callback receives an EvictReason so owners can tell a
// capacity eviction from an explicit removal.
//
//	c := cache.NewLRUCache[string, *entry](5)
//	c.SetEvictCallback(func(id string, e *entry, reason cache.EvictReason) {
//		e.timer.Stop()
//	})
package cache
