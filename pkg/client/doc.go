// Package client wires the socket transport, notification manager, toast
// queue and the favorites and cart stores into one Client.
//
//	var cfg client.Config
//	config.MustLoad(&cfg)
//
//	c, err := client.New(ctx, cfg, client.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	c.Notifications().On(notifications.EventNavigate, func(e notifications.Event) {
//		router.Push(e.Path)
//	})
//	err = c.Connect(ctx)
//
// Close disconnects for good: no reconnect is scheduled afterwards, pending
// toast timers are cancelled and no store writes after it returns.
package client
