package transport

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/socialkit/pkg/backoff"
)

const DefaultHandshakeTimeout = 20 * time.Second

// Option configures a Client.
type Option func(*Client)

// WithDialer replaces the gorilla/websocket dialer, mostly for tests.
func WithDialer(d Dialer) Option {
	return func(c *Client) {
		if d != nil {
			c.dialer = d
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithReconnectPolicy sets the backoff schedule and attempt cap for
// involuntary disconnects.
func WithReconnectPolicy(p backoff.Policy) Option {
	return func(c *Client) {
		c.policy = p
	}
}

// WithHandshakeTimeout bounds each connect attempt.
func WithHandshakeTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.handshakeTimeout = d
		}
	}
}

// WithForwardedEvents replaces the inbound allow-list. Events not listed are
// dropped.
func WithForwardedEvents(events ...string) Option {
	return func(c *Client) {
		c.forwarded = make(map[string]struct{}, len(events))
		for _, e := range events {
			c.forwarded[e] = struct{}{}
		}
	}
}
