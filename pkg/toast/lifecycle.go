package toast

import (
	"github.com/dmitrymomot/socialkit/pkg/statemachine"
)

type trigger string

const (
	triggerShow    trigger = "show"
	triggerExpire  trigger = "expire"
	triggerDismiss trigger = "dismiss"
	triggerAct     trigger = "act"
	triggerEvict   trigger = "evict"
	triggerClear   trigger = "clear"
)

// newLifecycle returns pending -> visible -> one terminal state. Terminal
// states have no outgoing transitions, so a toast is removed at most once.
func newLifecycle() *statemachine.Machine[Status, trigger] {
	return statemachine.New(StatusPending,
		statemachine.WithTransition(StatusPending, triggerShow, StatusVisible),
		statemachine.WithTransition(StatusVisible, triggerExpire, StatusExpired),
		statemachine.WithTransition(StatusVisible, triggerDismiss, StatusDismissed),
		statemachine.WithTransition(StatusVisible, triggerAct, StatusActioned),
		statemachine.WithTransition(StatusVisible, triggerEvict, StatusEvicted),
		statemachine.WithTransition(StatusVisible, triggerClear, StatusCleared),
	)
}
