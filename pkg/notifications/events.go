package notifications

import (
	"github.com/dmitrymomot/socialkit/pkg/toast"
)

// Events emitted by the Manager.
const (
	EventNotification            = "notification"
	EventToast                   = "toast"
	EventNotificationUpdated     = "notificationUpdated"
	EventNotificationRemoved     = "notificationRemoved"
	EventAllNotificationsRead    = "allNotificationsRead"
	EventAllNotificationsCleared = "allNotificationsCleared"
	EventSettingsUpdated         = "settingsUpdated"
	EventNavigate                = "navigate"
	EventPermissionChanged       = "permissionChanged"
)

// Event is the payload delivered to Manager subscribers. Only the fields
// relevant to the event name are set.
type Event struct {
	Notification Notification
	ID           string
	Count        int
	Settings     Settings
	Toast        toast.Toast
	Path         string
	Action       string
	Permission   Permission
}
