package broadcast

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/socialkit/pkg/logger"
)

// Handler receives the payload of a named event.
type Handler[T any] func(payload T)

// AnyHandler receives every event together with its name.
type AnyHandler[T any] func(event string, payload T)

type entry[T any] struct {
	id   uint64
	fn   AnyHandler[T]
	once bool
}

// Emitter is a synchronous named-event bus. Emit delivers a payload to every
// handler registered at the moment of the call, exactly once, before it
// returns. Handlers may subscribe, unsubscribe or emit from inside a handler.
// All methods are safe for concurrent use.
type Emitter[T any] struct {
	handlers map[string][]*entry[T]
	any      []*entry[T]
	nextID   uint64
	closed   bool
	done     chan struct{}
	logger   *slog.Logger
	mu       sync.RWMutex
	wg       sync.WaitGroup // stream cleanup goroutines
}

// Option configures an Emitter.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to report panicking handlers.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewEmitter creates an empty emitter.
func NewEmitter[T any](opts ...Option) *Emitter[T] {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Emitter[T]{
		handlers: make(map[string][]*entry[T]),
		done:     make(chan struct{}),
		logger:   o.logger,
	}
}

// On subscribes fn to event and returns a function that removes it.
// Subscribing to a closed emitter is a no-op.
func (e *Emitter[T]) On(event string, fn Handler[T]) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	return e.add(event, func(_ string, p T) { fn(p) }, false)
}

// Once subscribes fn for a single delivery of event.
func (e *Emitter[T]) Once(event string, fn Handler[T]) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	return e.add(event, func(_ string, p T) { fn(p) }, true)
}

// OnAny subscribes fn to every event.
func (e *Emitter[T]) OnAny(fn AnyHandler[T]) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return func() {}
	}
	e.nextID++
	ent := &entry[T]{id: e.nextID, fn: fn}
	e.any = append(e.any, ent)
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.any = without(e.any, ent.id)
	}
}

func (e *Emitter[T]) add(event string, fn AnyHandler[T], once bool) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return func() {}
	}
	e.nextID++
	ent := &entry[T]{id: e.nextID, fn: fn, once: once}
	e.handlers[event] = append(e.handlers[event], ent)
	return func() { e.remove(event, ent.id) }
}

func (e *Emitter[T]) remove(event string, id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rest := without(e.handlers[event], id)
	if len(rest) == 0 {
		delete(e.handlers, event)
		return
	}
	e.handlers[event] = rest
}

// Emit delivers payload to the current subscribers of event and to OnAny
// subscribers, in subscription order. A panicking handler is logged and does
// not prevent delivery to the others. It returns the number of handlers called.
func (e *Emitter[T]) Emit(ctx context.Context, event string, payload T) int {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return 0
	}
	targets := make([]*entry[T], 0, len(e.handlers[event])+len(e.any))
	targets = append(targets, e.handlers[event]...)
	for _, ent := range targets {
		if ent.once {
			e.handlers[event] = without(e.handlers[event], ent.id)
		}
	}
	if len(e.handlers[event]) == 0 {
		delete(e.handlers, event)
	}
	targets = append(targets, e.any...)
	e.mu.Unlock()

	for _, ent := range targets {
		e.invoke(ctx, event, ent, payload)
	}
	return len(targets)
}

func (e *Emitter[T]) invoke(ctx context.Context, event string, ent *entry[T], payload T) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.LogAttrs(ctx, slog.LevelError, "event handler panicked",
				logger.Event(event),
				logger.Error(fmt.Errorf("panic: %v", r)),
			)
		}
	}()
	ent.fn(event, payload)
}

// Listeners returns the number of handlers subscribed to event, excluding OnAny.
func (e *Emitter[T]) Listeners(event string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.handlers[event])
}

// Close removes every handler and closes open streams. Later calls to On and
// Emit are no-ops. Close is idempotent.
func (e *Emitter[T]) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	clear(e.handlers)
	e.any = nil
	close(e.done)
	e.mu.Unlock()

	e.wg.Wait()
	return nil
}

func without[T any](list []*entry[T], id uint64) []*entry[T] {
	out := list[:0:0]
	for _, ent := range list {
		if ent.id != id {
			out = append(out, ent)
		}
	}
	return out
}
