package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/socialkit/pkg/broadcast"
)

// Reducer computes the next state. It must be pure: no I/O and no mutation
// of the state it receives.
type Reducer[S, A any] func(state S, action A) S

// Hook runs after every dispatch with the action and the resulting state.
// Hooks run while the store is locked, in dispatch order, and must not
// dispatch themselves.
type Hook[S, A any] func(ctx context.Context, action A, state S)

const changeEvent = "change"

// Store serializes dispatches over a reducer. Check-then-act logic inside the
// reducer is atomic with respect to other dispatches.
type Store[S, A any] struct {
	reducer Reducer[S, A]
	hooks   []Hook[S, A]
	logger  *slog.Logger

	events *broadcast.Emitter[S]
	state  S
	closed bool
	mu     sync.Mutex
}

// Option configures a Store.
type Option[S, A any] func(*Store[S, A])

// WithHook appends a post-dispatch hook.
func WithHook[S, A any](h Hook[S, A]) Option[S, A] {
	return func(s *Store[S, A]) {
		if h != nil {
			s.hooks = append(s.hooks, h)
		}
	}
}

// WithLogger sets the logger used by persistence hooks.
func WithLogger[S, A any](l *slog.Logger) Option[S, A] {
	return func(s *Store[S, A]) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a store holding initial.
func New[S, A any](initial S, reducer Reducer[S, A], opts ...Option[S, A]) *Store[S, A] {
	s := &Store[S, A]{
		reducer: reducer,
		state:   initial,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.events = broadcast.NewEmitter[S](broadcast.WithLogger(s.logger))
	return s
}

// Dispatch applies action and returns the state it produced. After Close it
// returns the current state unchanged and runs no hooks.
func (s *Store[S, A]) Dispatch(ctx context.Context, action A) S {
	_, next, _ := s.Transition(ctx, action)
	return next
}

// Transition applies action and returns the state the reducer saw, the state
// it produced and whether the action was applied. Both states come from the
// same locked step. After Close prev and next are the current state and
// applied is false.
func (s *Store[S, A]) Transition(ctx context.Context, action A) (prev, next S, applied bool) {
	s.mu.Lock()
	prev = s.state
	if s.closed {
		s.mu.Unlock()
		return prev, prev, false
	}
	next = s.reducer(prev, action)
	s.state = next
	for _, h := range s.hooks {
		h(ctx, action, next)
	}
	s.mu.Unlock()

	s.events.Emit(ctx, changeEvent, next)
	return prev, next, true
}

// State returns the current state.
func (s *Store[S, A]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe calls fn with the new state after every dispatch.
func (s *Store[S, A]) Subscribe(fn func(S)) (unsubscribe func()) {
	return s.events.On(changeEvent, fn)
}

// Close stops accepting dispatches and detaches subscribers. No hook runs
// after Close returns.
func (s *Store[S, A]) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.events.Close()
}
