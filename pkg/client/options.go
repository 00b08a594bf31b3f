package client

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/socialkit/pkg/kvstore"
	"github.com/dmitrymomot/socialkit/pkg/notifications"
	"github.com/dmitrymomot/socialkit/pkg/transport"
)

// Option overrides a dependency that Config would otherwise build.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	dialer  transport.Dialer
	storage kvstore.Storage
	desktop notifications.DesktopNotifier
	sound   notifications.SoundPlayer
	now     func() time.Time
}

// WithLogger sets the logger shared by every service.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDialer replaces the websocket dialer.
func WithDialer(d transport.Dialer) Option {
	return func(o *options) {
		o.dialer = d
	}
}

// WithStorage bypasses StorageDriver and uses s for every persisted document.
func WithStorage(s kvstore.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithDesktop replaces the desktop notifier chosen by Config.
func WithDesktop(d notifications.DesktopNotifier) Option {
	return func(o *options) {
		o.desktop = d
	}
}

// WithSound replaces the sound player chosen by Config.
func WithSound(s notifications.SoundPlayer) Option {
	return func(o *options) {
		o.sound = s
	}
}

// WithClock overrides time.Now in every service.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
