// Package statemachine provides a tiny generic finite state machine used to
// model lifecycles such as the socket connection (disconnected, connecting,
// connected), desktop-notification consent (unrequested, granted, denied) and
// toast visibility.
//
//	type state string
//	type event string
//
//	m := statemachine.New[state, event]("disconnected",
//		statemachine.WithTransition[state, event]("disconnected", "dial", "connecting"),
//		statemachine.WithTransition[state, event]("connecting", "open", "connected"),
//	)
//	_, err := m.Fire("dial")
//
// Fire is atomic: the table lookup, guard evaluation and state change happen
// under one lock, and listeners run after it is released.
package statemachine
