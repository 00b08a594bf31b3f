package notifications

import (
	"time"

	"github.com/dmitrymomot/socialkit/pkg/toast"
)

// Type is the channel a notification belongs to.
type Type string

const (
	TypeMessage Type = "message"
	TypeMention Type = "mention"
	TypeFollow  Type = "follow"
	TypeLike    Type = "like"
	TypeComment Type = "comment"
	TypeCart    Type = "cart"
	TypeProduct Type = "product"
	TypeSystem  Type = "system"
)

// Priority represents the notification priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Action represents a call-to-action button in a notification.
type Action struct {
	Label  string `json:"label"`
	Action string `json:"action"`
	Style  string `json:"style,omitempty"` // primary, secondary, danger
}

// ActionDismiss closes a notification toast and marks it read.
const ActionDismiss = "dismiss"

// Notification is one event surfaced to the user.
type Notification struct {
	ID         string         `json:"id"`
	Type       Type           `json:"type"`
	Title      string         `json:"title"`
	Message    string         `json:"message"`
	Timestamp  time.Time      `json:"timestamp"`
	IsRead     bool           `json:"isRead"`
	UserID     string         `json:"userId,omitempty"`
	Avatar     string         `json:"avatar,omitempty"`
	Data       map[string]any `json:"data,omitempty"` // navigation payload
	Actions    []Action       `json:"actions,omitempty"`
	Priority   Priority       `json:"priority,omitempty"`
	Persistent bool           `json:"persistent,omitempty"`
	AutoHide   *bool          `json:"autoHide,omitempty"` // nil means true
	Duration   int64          `json:"duration,omitempty"` // milliseconds
}

// HidesAutomatically reports whether a toast for n should expire on its own.
func (n Notification) HidesAutomatically() bool {
	if n.Persistent {
		return false
	}
	return n.AutoHide == nil || *n.AutoHide
}

// DisplayDuration converts Duration to a time.Duration.
func (n Notification) DisplayDuration() time.Duration {
	return time.Duration(n.Duration) * time.Millisecond
}

// DataString returns Data[key] when it holds a non-empty string.
func (n Notification) DataString(key string) (string, bool) {
	v, ok := n.Data[key].(string)
	return v, ok && v != ""
}

// toToast projects n onto a toast descriptor. The toast gets its own id
// from the queue; NotificationID keeps the link.
func (n Notification) toToast(severity toast.Severity) toast.Toast {
	actions := make([]toast.Action, 0, len(n.Actions))
	for _, a := range n.Actions {
		actions = append(actions, toast.Action{Label: a.Label, Action: a.Action, Style: a.Style})
	}
	return toast.Toast{
		NotificationID: n.ID,
		Type:           string(n.Type),
		Severity:       severity,
		Title:          n.Title,
		Message:        n.Message,
		Avatar:         n.Avatar,
		Actions:        actions,
		Priority:       string(n.Priority),
		Data:           n.Data,
		Persistent:     !n.HidesAutomatically(),
		Duration:       n.DisplayDuration(),
	}
}
