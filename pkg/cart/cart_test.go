package cart_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialkit/pkg/cart"
	"github.com/dmitrymomot/socialkit/pkg/kvstore"
	"github.com/dmitrymomot/socialkit/pkg/logger"
	"github.com/dmitrymomot/socialkit/pkg/product"
)

var (
	mug  = product.Product{ID: "mug", Name: "Mug", Price: 9.99}
	book = product.Product{ID: "book", Name: "Book", Price: 24.5}
)

func newCart(t *testing.T, opts ...cart.Option) *cart.Cart {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	opts = append([]cart.Option{
		cart.WithClock(func() time.Time { return now }),
		cart.WithLogger(logger.Discard()),
	}, opts...)
	c := cart.New(opts...)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestReduce(t *testing.T) {
	t.Parallel()
	at := time.Unix(1700000000, 0)

	tests := []struct {
		name     string
		actions  []cart.Action
		quantity map[string]int
		subtotal float64
	}{
		{
			name:     "add merges quantity",
			actions:  []cart.Action{cart.Add(mug, 1, at), cart.Add(mug, 2, at)},
			quantity: map[string]int{"mug": 3},
			subtotal: 29.97,
		},
		{
			name:     "non-positive add counts as one",
			actions:  []cart.Action{cart.Add(book, 0, at)},
			quantity: map[string]int{"book": 1},
			subtotal: 24.5,
		},
		{
			name:     "update quantity",
			actions:  []cart.Action{cart.Add(mug, 1, at), cart.Add(book, 1, at), cart.UpdateQuantity("book", 4)},
			quantity: map[string]int{"mug": 1, "book": 4},
			subtotal: 107.99,
		},
		{
			name:     "update to zero removes",
			actions:  []cart.Action{cart.Add(mug, 1, at), cart.UpdateQuantity("mug", 0)},
			quantity: map[string]int{},
		},
		{
			name:     "update unknown is noop",
			actions:  []cart.Action{cart.Add(mug, 1, at), cart.UpdateQuantity("book", 3)},
			quantity: map[string]int{"mug": 1},
			subtotal: 9.99,
		},
		{
			name:     "remove unknown is noop",
			actions:  []cart.Action{cart.Add(mug, 2, at), cart.Remove("book")},
			quantity: map[string]int{"mug": 2},
			subtotal: 19.98,
		},
		{
			name:     "clear",
			actions:  []cart.Action{cart.Add(mug, 2, at), cart.Add(book, 1, at), cart.Clear()},
			quantity: map[string]int{},
		},
		{
			name: "load merges duplicates and drops empty lines",
			actions: []cart.Action{cart.Load([]cart.Item{
				{ID: "a", Product: mug, Quantity: 1},
				{ID: "b", Product: mug, Quantity: 2},
				{ID: "c", Product: book, Quantity: 0},
			})},
			quantity: map[string]int{"mug": 3},
			subtotal: 29.97,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := cart.Empty()
			for _, a := range tt.actions {
				s = cart.Reduce(s, a)
			}

			got := make(map[string]int, len(s.Items))
			total := 0
			for _, it := range s.Items {
				got[it.Product.ID] = it.Quantity
				total += it.Quantity
			}
			assert.Equal(t, tt.quantity, got)
			assert.Equal(t, len(tt.quantity), s.TotalItems)
			assert.Equal(t, total, s.TotalQuantity)
			assert.InDelta(t, tt.subtotal, s.Subtotal, 0.001)
		})
	}
}

func TestReduce_AddKeepsOriginalLine(t *testing.T) {
	t.Parallel()
	first := time.Unix(1700000000, 0)

	s := cart.Reduce(cart.Empty(), cart.Add(mug, 1, first))
	s = cart.Reduce(s, cart.Add(mug, 1, first.Add(time.Hour)))

	require.Len(t, s.Items, 1)
	assert.Equal(t, "mug-1700000000000", s.Items[0].ID)
	assert.True(t, first.Equal(s.Items[0].AddedAt))
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	t.Parallel()
	s := cart.Reduce(cart.Empty(), cart.Add(mug, 1, time.Now()))
	_ = cart.Reduce(s, cart.Add(mug, 5, time.Now()))
	_ = cart.Reduce(s, cart.UpdateQuantity("mug", 9))
	assert.Equal(t, 1, s.Items[0].Quantity)
}

func TestCart_ToggleIsReversible(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newCart(t)
	c.Add(ctx, book, 2)
	before := c.State()

	assert.True(t, c.Toggle(ctx, mug))
	assert.Equal(t, 1, c.Quantity("mug"))
	assert.False(t, c.Toggle(ctx, mug))
	assert.Equal(t, before, c.State())
}

func TestCart_Queries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newCart(t)

	assert.False(t, c.Contains("mug"))
	assert.Equal(t, 0, c.Quantity("mug"))

	c.Add(ctx, mug, 3)
	assert.True(t, c.Contains("mug"))
	assert.Equal(t, "29.97 EUR", c.Subtotal("EUR"))
	assert.Len(t, c.Items(), 1)

	c.Remove(ctx, "mug")
	assert.False(t, c.Contains("mug"))
	assert.Equal(t, "0.00 USD", c.Subtotal(""))
}

func TestCart_ConcurrentAddsMerge(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newCart(t)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add(ctx, mug, 1)
		}()
	}
	wg.Wait()

	s := c.State()
	assert.Equal(t, 1, s.TotalItems)
	assert.Equal(t, 50, s.TotalQuantity)
}

func TestCart_Persistence(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage := kvstore.NewMemoryStorage()

	first := newCart(t, cart.WithStorage(storage))
	first.Add(ctx, mug, 2)
	first.Add(ctx, book, 1)
	first.UpdateQuantity(ctx, "mug", 5)

	second := newCart(t, cart.WithStorage(storage))
	assert.Equal(t, first.State(), second.Hydrate(ctx))
	assert.Equal(t, 5, second.Quantity("mug"))
}

func TestCart_CorruptStorageStartsEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage := kvstore.NewMemoryStorage()
	require.NoError(t, storage.Set(ctx, cart.DefaultStorageKey, []byte(`{"items":`)))

	c := newCart(t, cart.WithStorage(storage))
	assert.Equal(t, cart.Empty(), c.Hydrate(ctx))
}

func TestCart_FileStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage, err := kvstore.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	c := newCart(t, cart.WithStorage(storage), cart.WithStorageKey("basket"))
	c.Add(ctx, book, 1)

	restored := newCart(t, cart.WithStorage(storage), cart.WithStorageKey("basket"))
	assert.True(t, restored.Hydrate(ctx).TotalItems == 1)
}

func TestCart_ToggleAfterClose(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newCart(t)
	c.Add(ctx, book, 1)
	require.NoError(t, c.Close())

	assert.True(t, c.Toggle(ctx, mug))
	assert.False(t, c.Contains("mug"))
	assert.False(t, c.Toggle(ctx, book))
	assert.True(t, c.Contains("book"))
}
