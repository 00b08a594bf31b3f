// Package transport maintains a single client-side websocket connection to the
// real-time event server.
//
// Frames are JSON text messages of the form {"event": name, "data": payload}.
// Inbound events on the allow-list (DefaultForwardedEvents unless replaced
// with WithForwardedEvents) are relayed verbatim to subscribers registered
// with On; anything else is dropped.
//
// Lifecycle:
//
//	c := transport.New("wss://example.com/socket",
//		transport.WithReconnectPolicy(backoff.NewPolicy(time.Second, 5)),
//	)
//	c.On(transport.EventReconnectionFailed, func(transport.Event) { /* banner */ })
//	if err := c.Connect(ctx, token); err != nil {
//		// connectionError was emitted and a retry is already scheduled
//	}
//	defer c.Close()
//
// Involuntary drops emit disconnected and retry after base * 2^(attempt-1).
// Once the policy's attempt cap is exhausted reconnectionFailed fires once and
// retrying stops. Disconnect never triggers a retry.
package transport
