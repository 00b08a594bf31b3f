// Package broadcast provides the in-process event fan-out shared by the
// transport, notification and toast packages.
//
// Emitter delivers each emitted payload synchronously to every handler that is
// subscribed at the time of the call, before Emit returns:
//
//	bus := broadcast.NewEmitter[notifications.Event]()
//	off := bus.On("navigate", func(ev notifications.Event) {
//		router.Push(ev.Path)
//	})
//	defer off()
//
// Stream adapts an event into a buffered channel. Slow stream consumers lose
// payloads instead of stalling the emitter.
package broadcast
