// Package notifications is the client-side notification engine.
//
// A Manager keeps the live notification set and the user's Settings. Each
// incoming notification is stored first and announced with EventNotification.
// Then, unless its channel is muted or quiet hours are active, it is shown as
// a toast and optionally as a desktop popup and a sound. Muted and quiet-hours
// notifications are still stored and still count as unread.
//
// Side channels are pluggable: DesktopNotifier (CommandDesktop uses
// notify-send or osascript), SoundPlayer (BellSound rings the terminal bell).
// Desktop popups require a granted permission, which is only requested by an
// explicit RequestDesktopPermission call. Side-channel failures are logged and
// never returned.
//
// Basic wiring with a transport client and a toast queue:
//
//	queue := toast.NewQueue()
//	m := notifications.NewManager(
//		notifications.WithServer(socket),
//		notifications.WithToaster(queue),
//		notifications.WithSettingsStorage(storage, notifications.DefaultSettingsKey),
//	)
//	m.LoadSettings(ctx)
//	unbind := m.Bind(socket)
//	defer unbind()
//
//	m.On(notifications.EventNavigate, func(e notifications.Event) {
//		router.Go(e.Path)
//	})
//
// Read, delete and clear operations are mirrored to the server through the
// Emitter unless they originated from the server.
package notifications
