package statemachine

import (
	"errors"
	"fmt"
)

// ErrNoTransition indicates no transition exists for the state/event pair.
type ErrNoTransition struct {
	State string
	Event string
}

func (e *ErrNoTransition) Error() string {
	return fmt.Sprintf("no transition from state '%s' for event '%s'", e.State, e.Event)
}

func NewErrNoTransition(state, event string) *ErrNoTransition {
	return &ErrNoTransition{State: state, Event: event}
}

// ErrTransitionRejected indicates every candidate transition was blocked by guards.
type ErrTransitionRejected struct {
	State string
	Event string
}

func (e *ErrTransitionRejected) Error() string {
	return fmt.Sprintf("transition from state '%s' for event '%s' was rejected by guards", e.State, e.Event)
}

func NewErrTransitionRejected(state, event string) *ErrTransitionRejected {
	return &ErrTransitionRejected{State: state, Event: event}
}

func IsNoTransition(err error) bool {
	var e *ErrNoTransition
	return errors.As(err, &e)
}

func IsTransitionRejected(err error) bool {
	var e *ErrTransitionRejected
	return errors.As(err, &e)
}
