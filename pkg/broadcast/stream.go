package broadcast

import (
	"context"
	"sync"
)

// Stream bridges event into a channel for consumers that prefer select loops.
// Sends never block the emitter: when the buffer is full the payload is
// dropped for this stream only. The channel is closed when ctx is done or the
// emitter is closed.
func (e *Emitter[T]) Stream(ctx context.Context, event string, buffer int) <-chan T {
	ch := make(chan T, max(buffer, 1))

	var (
		mu     sync.Mutex
		closed bool
	)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		close(ch)
		return ch
	}
	e.wg.Add(1)
	e.mu.Unlock()

	unsubscribe := e.On(event, func(p T) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- p:
		default:
		}
	})

	go func() {
		defer e.wg.Done()
		select {
		case <-ctx.Done():
		case <-e.done:
		}
		unsubscribe()
		mu.Lock()
		closed = true
		close(ch)
		mu.Unlock()
	}()

	return ch
}
