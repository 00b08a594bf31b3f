package toast

import (
	"time"
)

// Severity selects the visual style of a toast.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Action is a button rendered on a toast.
type Action struct {
	Label  string `json:"label"`
	Action string `json:"action"`
	Style  string `json:"style,omitempty"`
}

// Toast is an ephemeral visual message. ID is assigned by Queue.Push and is
// never the id of the notification it was built from.
type Toast struct {
	ID             string
	NotificationID string
	Type           string
	Severity       Severity
	Title          string
	Message        string
	Avatar         string
	Actions        []Action
	Priority       string
	Data           map[string]any

	// Persistent toasts have no expiry timer and stay until closed.
	Persistent bool
	// Duration before auto-hide; zero means the queue default.
	Duration  time.Duration
	CreatedAt time.Time

	// OnClose runs once when the user closes the toast.
	OnClose func()
	// OnAction runs once when the user picks an action.
	OnAction func(action string)
}

// Status is a toast lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusVisible   Status = "visible"
	StatusExpired   Status = "expired"
	StatusDismissed Status = "dismissed"
	StatusActioned  Status = "actioned"
	StatusEvicted   Status = "evicted"
	StatusCleared   Status = "cleared"
)

// Events emitted by a Queue.
const (
	EventShown   = "shown"
	EventRemoved = "removed"
)

// Event describes a queue change. Reason is set for EventRemoved.
type Event struct {
	Toast  Toast
	Reason Status
}
