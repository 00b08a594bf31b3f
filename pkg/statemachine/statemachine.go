package statemachine

import (
	"sync"
)

// Guard decides at fire time whether a transition may proceed.
type Guard[S, E ~string] func(from S, event E) bool

// Listener observes a completed transition. It runs after the machine's lock
// is released, so it may query or fire the machine again.
type Listener[S, E ~string] func(from, to S, event E)

type transition[S, E ~string] struct {
	to     S
	guards []Guard[S, E]
}

// Machine is a small thread-safe finite state machine keyed by string-like
// states and events. The transition table is fixed at construction.
type Machine[S, E ~string] struct {
	initial     S
	current     S
	transitions map[S]map[E][]transition[S, E]
	listeners   []Listener[S, E]
	mu          sync.RWMutex
}

// Option configures a Machine.
type Option[S, E ~string] func(*Machine[S, E])

// WithTransition permits moving from -> to when event fires. Several
// transitions may share from/event; the first whose guards pass wins.
func WithTransition[S, E ~string](from S, event E, to S, guards ...Guard[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) {
		if _, ok := m.transitions[from]; !ok {
			m.transitions[from] = make(map[E][]transition[S, E])
		}
		m.transitions[from][event] = append(m.transitions[from][event], transition[S, E]{to: to, guards: guards})
	}
}

// WithListener registers a transition listener at construction time.
func WithListener[S, E ~string](fn Listener[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) {
		if fn != nil {
			m.listeners = append(m.listeners, fn)
		}
	}
}

// New creates a machine in the initial state.
func New[S, E ~string](initial S, opts ...Option[S, E]) *Machine[S, E] {
	m := &Machine[S, E]{
		initial:     initial,
		current:     initial,
		transitions: make(map[S]map[E][]transition[S, E]),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Current returns the current state.
func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Is reports whether the machine is currently in one of states.
func (m *Machine[S, E]) Is(states ...S) bool {
	cur := m.Current()
	for _, s := range states {
		if s == cur {
			return true
		}
	}
	return false
}

// OnTransition registers a listener for subsequent transitions.
func (m *Machine[S, E]) OnTransition(fn Listener[S, E]) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// Fire applies event to the current state and returns the resulting state.
// The state is left untouched when no transition matches.
func (m *Machine[S, E]) Fire(event E) (S, error) {
	m.mu.Lock()
	from := m.current
	t, err := m.match(from, event)
	if err != nil {
		m.mu.Unlock()
		return from, err
	}
	m.current = t.to
	listeners := append([]Listener[S, E](nil), m.listeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(from, t.to, event)
	}
	return t.to, nil
}

// CanFire reports whether event would currently trigger a transition.
func (m *Machine[S, E]) CanFire(event E) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, err := m.match(m.current, event)
	return err == nil
}

// Reset returns the machine to its initial state without notifying listeners.
func (m *Machine[S, E]) Reset() {
	m.mu.Lock()
	m.current = m.initial
	m.mu.Unlock()
}

// Must be called with lock held.
func (m *Machine[S, E]) match(from S, event E) (transition[S, E], error) {
	candidates := m.transitions[from][event]
	if len(candidates) == 0 {
		return transition[S, E]{}, NewErrNoTransition(string(from), string(event))
	}
	for _, t := range candidates {
		if allow(t.guards, from, event) {
			return t, nil
		}
	}
	return transition[S, E]{}, NewErrTransitionRejected(string(from), string(event))
}

func allow[S, E ~string](guards []Guard[S, E], from S, event E) bool {
	for _, g := range guards {
		if g != nil && !g(from, event) {
			return false
		}
	}
	return true
}
