package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrymomot/socialkit/pkg/client"
	"github.com/dmitrymomot/socialkit/pkg/config"
	"github.com/dmitrymomot/socialkit/pkg/logger"
	"github.com/dmitrymomot/socialkit/pkg/notifications"
	"github.com/dmitrymomot/socialkit/pkg/toast"
	"github.com/dmitrymomot/socialkit/pkg/transport"
)

func main() {
	var cfg client.Config
	config.MustLoad(&cfg)

	log := logger.New(logger.WithEnvironment(cfg.AppEnv, cfg.ServiceName))
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("socialkit stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg client.Config, log *slog.Logger) error {
	c, err := client.New(ctx, cfg, client.WithLogger(log))
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Error("failed to close client", logger.Error(err))
		}
	}()

	c.Toasts().On(toast.EventShown, func(e toast.Event) {
		log.Info("toast",
			logger.ToastID(e.Toast.ID),
			slog.String("severity", string(e.Toast.Severity)),
			slog.String("title", e.Toast.Title),
			slog.String("message", e.Toast.Message),
		)
	})
	c.Notifications().On(notifications.EventNavigate, func(e notifications.Event) {
		log.Info("navigate", logger.NotificationID(e.ID), slog.String("path", e.Path))
	})

	failed := make(chan struct{})
	giveUp := sync.OnceFunc(func() { close(failed) })
	c.Transport().On(transport.EventReconnectionFailed, func(e transport.Event) {
		log.Error("giving up on socket", logger.Attempt(e.Attempt))
		giveUp()
	})
	c.Transport().On(transport.EventConnected, func(transport.Event) {
		log.Info("socket connected", slog.String("url", cfg.SocketURL))
	})

	if err := c.Connect(ctx); err != nil && !errors.Is(err, context.Canceled) {
		// Reconnects are already scheduled; keep running until they give up.
		log.Warn("initial connect failed", logger.Error(err))
	}

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		return nil
	case <-failed:
		return transport.ErrNotConnected
	}
}
