package notifications

import "errors"

var (
	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrDuplicateNotification is returned when a notification id is already stored.
	ErrDuplicateNotification = errors.New("notification already exists")

	// ErrMissingID is returned when a notification without id is stored.
	ErrMissingID = errors.New("notification ID is required")

	// ErrInvalidClock is returned for quiet-hours times not in HH:MM form.
	ErrInvalidClock = errors.New("invalid HH:MM time")

	// ErrDesktopUnavailable is returned when no desktop notification backend exists.
	ErrDesktopUnavailable = errors.New("desktop notifications unavailable")
)
