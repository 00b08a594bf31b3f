package cache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialkit/pkg/cache"
)

type eviction struct {
	key    string
	value  int
	reason cache.EvictReason
}

func newRecorded(t *testing.T, capacity int) (*cache.LRUCache[string, int], *[]eviction) {
	t.Helper()
	var evicted []eviction
	c := cache.NewLRUCache[string, int](capacity)
	c.SetEvictCallback(func(key string, value int, reason cache.EvictReason) {
		evicted = append(evicted, eviction{key, value, reason})
	})
	return c, &evicted
}

func TestLRUCache_PutEvictsOldest(t *testing.T) {
	t.Parallel()
	c, evicted := newRecorded(t, 3)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	c.Put("d", 4)

	assert.Equal(t, []int{4, 3, 2}, c.Values())
	assert.Equal(t, []eviction{{"a", 1, cache.EvictCapacity}}, *evicted)
	assert.Equal(t, 3, c.Len())
}

func TestLRUCache_PutExistingMovesToFront(t *testing.T) {
	t.Parallel()
	c, evicted := newRecorded(t, 2)

	c.Put("a", 1)
	c.Put("b", 2)
	old, existed := c.Put("a", 10)
	require.True(t, existed)
	assert.Equal(t, 1, old)

	c.Put("c", 3)
	assert.Equal(t, []int{3, 10}, c.Values())
	assert.Equal(t, []eviction{{"b", 2, cache.EvictCapacity}}, *evicted)
}

func TestLRUCache_PeekDoesNotReorder(t *testing.T) {
	t.Parallel()
	c, evicted := newRecorded(t, 2)

	c.Put("a", 1)
	c.Put("b", 2)
	v, ok := c.Peek("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	c.Put("c", 3)
	_, ok = c.Peek("a")
	assert.False(t, ok)
	assert.Equal(t, cache.EvictCapacity, (*evicted)[0].reason)
}

func TestLRUCache_RemoveReportsReason(t *testing.T) {
	t.Parallel()
	c, evicted := newRecorded(t, 3)
	c.Put("a", 1)

	v, ok := c.Remove("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, []eviction{{"a", 1, cache.EvictRemoved}}, *evicted)

	_, ok = c.Remove("a")
	assert.False(t, ok)
	assert.Len(t, *evicted, 1)
}

func TestLRUCache_ClearOldestFirst(t *testing.T) {
	t.Parallel()
	c, evicted := newRecorded(t, 3)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	c.Clear()

	assert.Zero(t, c.Len())
	assert.Empty(t, c.Values())
	assert.Equal(t, []eviction{
		{"a", 1, cache.EvictCleared},
		{"b", 2, cache.EvictCleared},
		{"c", 3, cache.EvictCleared},
	}, *evicted)
}

func TestEvictReason_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "capacity", cache.EvictCapacity.String())
	assert.Equal(t, "removed", cache.EvictRemoved.String())
	assert.Equal(t, "cleared", cache.EvictCleared.String())
	assert.Equal(t, "unknown", cache.EvictReason(42).String())
}

func TestNewLRUCache_InvalidCapacity(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { cache.NewLRUCache[string, int](0) })
}

func TestLRUCache_ConcurrentPutStaysBounded(t *testing.T) {
	t.Parallel()
	c := cache.NewLRUCache[int, int](10)

	var mu sync.Mutex
	evicted := 0
	c.SetEvictCallback(func(int, int, cache.EvictReason) {
		mu.Lock()
		evicted++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Put(i, i)
			c.Peek(i)
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, c.Len())
	assert.Equal(t, 90, evicted)
}
