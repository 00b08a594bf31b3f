package transport

import (
	"encoding/json"
	"time"
)

// Lifecycle events emitted locally by the client. They are always delivered
// and are not subject to the forwarding allow-list.
const (
	EventConnected          = "connected"
	EventDisconnected       = "disconnected"
	EventConnectionError    = "connectionError"
	EventReconnecting       = "reconnecting"
	EventReconnectionFailed = "reconnectionFailed"
)

// Inbound server events relayed by default.
const (
	EventNotification        = "notification"
	EventNotificationRead    = "notificationRead"
	EventNotificationDeleted = "notificationDeleted"
	EventMessageReceived     = "messageReceived"
	EventMention             = "mention"
	EventTyping              = "typing"
	EventUserOnline          = "userOnline"
	EventUserOffline         = "userOffline"
)

// Outbound event names understood by the server.
const (
	EventMarkNotificationRead     = "markNotificationRead"
	EventMarkAllNotificationsRead = "markAllNotificationsRead"
	EventDeleteNotification       = "deleteNotification"
	EventClearAllNotifications    = "clearAllNotifications"
	EventJoin                     = "join"
	EventLeave                    = "leave"
	EventAuthenticate             = "authenticate"
	EventUpdatePresence           = "updatePresence"
)

// DefaultForwardedEvents is the allow-list used when WithForwardedEvents is not set.
var DefaultForwardedEvents = []string{
	EventNotification,
	EventNotificationRead,
	EventNotificationDeleted,
	EventMessageReceived,
	EventMention,
	EventTyping,
	EventUserOnline,
	EventUserOffline,
}

// Event is what subscribers receive. Forwarded server events carry Data
// verbatim; lifecycle events fill Err, Attempt and Delay as relevant.
type Event struct {
	Name    string
	Data    json.RawMessage
	Err     error
	Attempt int
	Delay   time.Duration
	Manual  bool
}

// Decode unmarshals Data into v.
func (e Event) Decode(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}

// envelope is the wire format of a single text frame.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}
