package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/dmitrymomot/socialkit/pkg/backoff"
	"github.com/dmitrymomot/socialkit/pkg/cart"
	"github.com/dmitrymomot/socialkit/pkg/favorites"
	"github.com/dmitrymomot/socialkit/pkg/kvstore"
	"github.com/dmitrymomot/socialkit/pkg/logger"
	"github.com/dmitrymomot/socialkit/pkg/notifications"
	"github.com/dmitrymomot/socialkit/pkg/toast"
	"github.com/dmitrymomot/socialkit/pkg/transport"
)

// Client owns one instance of every service and tears them down together.
type Client struct {
	cfg    Config
	logger *slog.Logger

	transport     *transport.Client
	toasts        *toast.Queue
	notifications *notifications.Manager
	favorites     *favorites.Favorites
	cart          *cart.Cart

	redis     *redis.Client
	unbind    func()
	closeOnce sync.Once
	closeErr  error
}

// New builds the services, restores persisted state and binds the
// notification manager to the transport. It does not connect and does not
// ask for desktop permission.
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	if cfg.SocketURL == "" {
		return nil, ErrMissingSocketURL
	}

	o := &options{logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	c := &Client{cfg: cfg, logger: o.logger.With(logger.Component("client"))}

	storage := o.storage
	if storage == nil {
		var err error
		if storage, err = c.openStorage(ctx); err != nil {
			return nil, err
		}
	}

	transportOpts := []transport.Option{
		transport.WithLogger(o.logger),
		transport.WithReconnectPolicy(backoff.NewPolicy(cfg.ReconnectInterval, cfg.ReconnectAttempts)),
		transport.WithHandshakeTimeout(cfg.HandshakeTimeout),
	}
	if o.dialer != nil {
		transportOpts = append(transportOpts, transport.WithDialer(o.dialer))
	}
	c.transport = transport.New(cfg.SocketURL, transportOpts...)

	c.toasts = toast.NewQueue(
		toast.WithMaxToasts(cfg.ToastMax),
		toast.WithDefaultDuration(cfg.ToastDuration),
		toast.WithClock(o.now),
		toast.WithLogger(o.logger),
	)

	managerOpts := []notifications.ManagerOption{
		notifications.WithServer(c.transport),
		notifications.WithToaster(c.toasts),
		notifications.WithDesktop(c.desktop(o)),
		notifications.WithSound(c.sound(o)),
		notifications.WithSettingsStorage(storage, notifications.DefaultSettingsKey),
		notifications.WithClock(o.now),
		notifications.WithManagerLogger(o.logger),
	}
	if cfg.SideEffectRate > 0 {
		limiter := rate.NewLimiter(rate.Limit(cfg.SideEffectRate), max(cfg.SideEffectBurst, 1))
		managerOpts = append(managerOpts, notifications.WithSideEffectLimiter(limiter))
	}
	c.notifications = notifications.NewManager(managerOpts...)

	c.favorites = favorites.New(
		favorites.WithStorage(storage),
		favorites.WithClock(o.now),
		favorites.WithLogger(o.logger),
	)
	c.cart = cart.New(
		cart.WithStorage(storage),
		cart.WithClock(o.now),
		cart.WithLogger(o.logger),
	)

	c.notifications.LoadSettings(ctx)
	c.favorites.Hydrate(ctx)
	c.cart.Hydrate(ctx)
	c.unbind = c.notifications.Bind(c.transport)

	c.logger.LogAttrs(ctx, slog.LevelDebug, "client ready",
		slog.String("storage_driver", c.storageDriver(o)),
		slog.String("socket_url", cfg.SocketURL),
	)
	return c, nil
}

func (c *Client) storageDriver(o *options) string {
	if o.storage != nil {
		return "custom"
	}
	return c.cfg.StorageDriver
}

func (c *Client) openStorage(ctx context.Context) (kvstore.Storage, error) {
	switch c.cfg.StorageDriver {
	case StorageMemory:
		return kvstore.NewMemoryStorage(), nil
	case StorageFile, "":
		s, err := kvstore.NewFileStorage(c.cfg.StorageDir)
		if err != nil {
			return nil, errors.Join(ErrStorageUnavailable, err)
		}
		return s, nil
	case StorageRedis:
		rdb, err := kvstore.ConnectRedis(ctx, c.cfg.Redis)
		if err != nil {
			return nil, errors.Join(ErrStorageUnavailable, err)
		}
		c.redis = rdb
		return kvstore.NewRedisStorage(rdb, c.cfg.Redis.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorageDriver, c.cfg.StorageDriver)
	}
}

func (c *Client) desktop(o *options) notifications.DesktopNotifier {
	switch {
	case o.desktop != nil:
		return o.desktop
	case c.cfg.DesktopCommand:
		return notifications.CommandDesktop{AppName: c.cfg.AppName}
	default:
		return notifications.NoOpDesktop{}
	}
}

func (c *Client) sound(o *options) notifications.SoundPlayer {
	switch {
	case o.sound != nil:
		return o.sound
	case c.cfg.SoundBell:
		return notifications.BellSound{Out: os.Stderr}
	default:
		return notifications.NoOpSound{}
	}
}

// Connect opens the socket with the configured token.
func (c *Client) Connect(ctx context.Context) error {
	return c.transport.Connect(ctx, c.cfg.SocketToken)
}

// Transport returns the socket client.
func (c *Client) Transport() *transport.Client {
	return c.transport
}

// Toasts returns the toast queue.
func (c *Client) Toasts() *toast.Queue {
	return c.toasts
}

// Notifications returns the notification manager.
func (c *Client) Notifications() *notifications.Manager {
	return c.notifications
}

// Favorites returns the favorites store.
func (c *Client) Favorites() *favorites.Favorites {
	return c.favorites
}

// Cart returns the cart store.
func (c *Client) Cart() *cart.Cart {
	return c.cart
}

// Close disconnects without reconnecting, cancels toast timers and stops
// every store from writing. It is safe to call more than once.
// Like transport.Client.Close it waits for the socket read loop, so it must
// not be called from a transport or notification event handler.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.transport.Disconnect()
		c.unbind()
		c.toasts.Shutdown()

		errs := []error{
			c.notifications.Close(),
			c.favorites.Close(),
			c.cart.Close(),
			c.transport.Close(),
		}
		if c.redis != nil {
			errs = append(errs, c.redis.Close())
		}
		c.closeErr = errors.Join(errs...)
	})
	return c.closeErr
}
