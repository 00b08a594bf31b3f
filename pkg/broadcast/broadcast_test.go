package broadcast_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialkit/pkg/broadcast"
	"github.com/dmitrymomot/socialkit/pkg/logger"
)

func newEmitter[T any]() *broadcast.Emitter[T] {
	return broadcast.NewEmitter[T](broadcast.WithLogger(logger.Discard()))
}

func TestEmitter_Emit(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to every subscriber before returning", func(t *testing.T) {
		e := newEmitter[string]()
		defer e.Close()

		var got []string
		e.On("greet", func(p string) { got = append(got, "a:"+p) })
		e.On("greet", func(p string) { got = append(got, "b:"+p) })
		e.On("other", func(p string) { got = append(got, "x:"+p) })

		n := e.Emit(ctx, "greet", "hi")
		assert.Equal(t, 2, n)
		assert.Equal(t, []string{"a:hi", "b:hi"}, got)
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		e := newEmitter[int]()
		defer e.Close()

		calls := 0
		off := e.On("tick", func(int) { calls++ })
		e.Emit(ctx, "tick", 1)
		off()
		off() // idempotent
		e.Emit(ctx, "tick", 2)

		assert.Equal(t, 1, calls)
		assert.Equal(t, 0, e.Listeners("tick"))
	})

	t.Run("once fires a single time", func(t *testing.T) {
		e := newEmitter[int]()
		defer e.Close()

		calls := 0
		e.Once("tick", func(int) { calls++ })
		e.Emit(ctx, "tick", 1)
		e.Emit(ctx, "tick", 2)
		assert.Equal(t, 1, calls)
	})

	t.Run("on any sees every event", func(t *testing.T) {
		e := newEmitter[int]()
		defer e.Close()

		var names []string
		e.OnAny(func(event string, _ int) { names = append(names, event) })
		e.Emit(ctx, "a", 1)
		e.Emit(ctx, "b", 2)
		assert.Equal(t, []string{"a", "b"}, names)
	})

	t.Run("panicking handler does not block others", func(t *testing.T) {
		e := newEmitter[int]()
		defer e.Close()

		reached := false
		e.On("boom", func(int) { panic("handler failure") })
		e.On("boom", func(int) { reached = true })

		assert.NotPanics(t, func() { e.Emit(ctx, "boom", 1) })
		assert.True(t, reached)
	})

	t.Run("handlers may reenter the emitter", func(t *testing.T) {
		e := newEmitter[int]()
		defer e.Close()

		var seen []int
		e.On("first", func(p int) {
			seen = append(seen, p)
			e.Emit(ctx, "second", p+1)
		})
		e.On("second", func(p int) { seen = append(seen, p) })

		e.Emit(ctx, "first", 1)
		assert.Equal(t, []int{1, 2}, seen)
	})

	t.Run("closed emitter ignores everything", func(t *testing.T) {
		e := newEmitter[int]()
		require.NoError(t, e.Close())
		require.NoError(t, e.Close())

		calls := 0
		e.On("tick", func(int) { calls++ })
		assert.Equal(t, 0, e.Emit(ctx, "tick", 1))
		assert.Equal(t, 0, calls)
	})
}

func TestEmitter_ConcurrentEmit(t *testing.T) {
	e := newEmitter[int]()
	defer e.Close()

	var mu sync.Mutex
	total := 0
	e.On("add", func(p int) {
		mu.Lock()
		total += p
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Emit(context.Background(), "add", 1)
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, total)
}

func TestEmitter_Stream(t *testing.T) {
	t.Run("receives payloads", func(t *testing.T) {
		e := newEmitter[string]()
		defer e.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch := e.Stream(ctx, "msg", 4)
		e.Emit(context.Background(), "msg", "one")
		e.Emit(context.Background(), "msg", "two")

		assert.Equal(t, "one", <-ch)
		assert.Equal(t, "two", <-ch)
	})

	t.Run("drops when buffer is full", func(t *testing.T) {
		e := newEmitter[int]()
		defer e.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch := e.Stream(ctx, "n", 1)
		e.Emit(context.Background(), "n", 1)
		e.Emit(context.Background(), "n", 2)

		assert.Equal(t, 1, <-ch)
		select {
		case v := <-ch:
			t.Fatalf("unexpected payload %d", v)
		case <-time.After(20 * time.Millisecond):
		}
	})

	t.Run("closes on context cancel", func(t *testing.T) {
		e := newEmitter[int]()
		defer e.Close()

		ctx, cancel := context.WithCancel(context.Background())
		ch := e.Stream(ctx, "n", 1)
		cancel()

		select {
		case _, ok := <-ch:
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("stream was not closed")
		}
		assert.Eventually(t, func() bool { return e.Listeners("n") == 0 }, time.Second, 5*time.Millisecond)
	})

	t.Run("closes on emitter close", func(t *testing.T) {
		e := newEmitter[int]()
		ch := e.Stream(context.Background(), "n", 1)
		require.NoError(t, e.Close())

		_, ok := <-ch
		assert.False(t, ok)

		late := e.Stream(context.Background(), "n", 1)
		_, ok = <-late
		assert.False(t, ok)
	})
}
