package notifications

import (
	"github.com/dmitrymomot/socialkit/pkg/statemachine"
)

// Permission is the desktop-notification consent state.
type Permission string

const (
	PermissionUnrequested Permission = "unrequested"
	PermissionGranted     Permission = "granted"
	PermissionDenied      Permission = "denied"
)

type permissionEvent string

const (
	permissionGrant permissionEvent = "grant"
	permissionDeny  permissionEvent = "deny"
)

// newPermission allows exactly one answer; there is no way back to unrequested.
func newPermission() *statemachine.Machine[Permission, permissionEvent] {
	return statemachine.New(PermissionUnrequested,
		statemachine.WithTransition(PermissionUnrequested, permissionGrant, PermissionGranted),
		statemachine.WithTransition(PermissionUnrequested, permissionDeny, PermissionDenied),
	)
}
