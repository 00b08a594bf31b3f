package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/socialkit/pkg/backoff"
	"github.com/dmitrymomot/socialkit/pkg/broadcast"
	"github.com/dmitrymomot/socialkit/pkg/logger"
	"github.com/dmitrymomot/socialkit/pkg/statemachine"
)

// State is the synchronous view of the connection.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

type trigger string

const (
	triggerDial        trigger = "dial"
	triggerEstablished trigger = "established"
	triggerFailed      trigger = "failed"
	triggerClosed      trigger = "closed"
)

// Client keeps at most one logical socket connection open, reconnects with
// exponential backoff after involuntary disconnects and relays allow-listed
// server events to local subscribers.
type Client struct {
	url              string
	dialer           Dialer
	logger           *slog.Logger
	policy           backoff.Policy
	handshakeTimeout time.Duration
	forwarded        map[string]struct{}

	events  *broadcast.Emitter[Event]
	machine *statemachine.Machine[State, trigger]

	mu         sync.Mutex
	conn       Conn
	token      string
	gen        uint64
	attempts   int
	manual     bool
	closed     bool
	gaveUp     bool
	timer      *time.Timer
	cancelDial context.CancelFunc

	writeMu sync.Mutex
	wg      sync.WaitGroup
}

// New creates a disconnected client for url. Nothing is dialed until Connect.
func New(url string, opts ...Option) *Client {
	c := &Client{
		url:              url,
		dialer:           WebsocketDialer{},
		logger:           slog.Default(),
		policy:           backoff.DefaultPolicy(),
		handshakeTimeout: DefaultHandshakeTimeout,
	}
	WithForwardedEvents(DefaultForwardedEvents...)(c)

	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.With(logger.Component("transport"))
	c.events = broadcast.NewEmitter[Event](broadcast.WithLogger(c.logger))
	c.machine = statemachine.New(StateDisconnected,
		statemachine.WithTransition(StateDisconnected, triggerDial, StateConnecting),
		statemachine.WithTransition(StateConnecting, triggerEstablished, StateConnected),
		statemachine.WithTransition(StateConnecting, triggerFailed, StateDisconnected),
		statemachine.WithTransition(StateConnecting, triggerClosed, StateDisconnected),
		statemachine.WithTransition(StateConnected, triggerClosed, StateDisconnected),
	)

	return c
}

// On subscribes fn to a forwarded or lifecycle event. Forwarded events and
// reconnect lifecycle events run fn on the client's read loop or retry timer,
// which Close waits for: fn may call Disconnect, but must hand Close off to
// another goroutine.
func (c *Client) On(event string, fn func(Event)) (unsubscribe func()) {
	return c.events.On(event, fn)
}

// Stream delivers event to a buffered channel until ctx is done.
func (c *Client) Stream(ctx context.Context, event string, buffer int) <-chan Event {
	return c.events.Stream(ctx, event, buffer)
}

// State reports the connection state without any network round trip.
func (c *Client) State() State {
	return c.machine.Current()
}

// IsConnected reports whether the socket is open.
func (c *Client) IsConnected() bool {
	return c.machine.Is(StateConnected)
}

// Connect opens the socket. It returns nil immediately when already
// connected and ErrConnectInProgress while another handshake runs. A failed
// handshake emits connectionError, schedules a reconnect and returns the error.
func (c *Client) Connect(ctx context.Context, token string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if _, err := c.machine.Fire(triggerDial); err != nil {
		c.mu.Unlock()
		if c.machine.Is(StateConnected) {
			return nil
		}
		return ErrConnectInProgress
	}
	c.manual = false
	c.gaveUp = false
	c.attempts = 0
	c.token = token
	c.stopTimerLocked()
	c.mu.Unlock()

	return c.dial(ctx)
}

// dial runs one handshake. The machine must already be in StateConnecting.
func (c *Client) dial(ctx context.Context) error {
	dctx, cancel := context.WithTimeout(ctx, c.handshakeTimeout)
	defer cancel()

	c.mu.Lock()
	c.gen++
	gen := c.gen
	token := c.token
	c.cancelDial = cancel
	c.mu.Unlock()

	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, err := c.dialer.Dial(dctx, c.url, header)

	c.mu.Lock()
	c.cancelDial = nil
	if gen != c.gen || c.manual || c.closed {
		c.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
		return ErrConnectAborted
	}

	if err != nil {
		_, _ = c.machine.Fire(triggerFailed)
		c.mu.Unlock()

		c.logger.LogAttrs(ctx, slog.LevelWarn, "socket connection failed", logger.Error(err))
		c.events.Emit(ctx, EventConnectionError, Event{Name: EventConnectionError, Err: err})
		c.scheduleReconnect(ctx)
		return fmt.Errorf("transport: connect %s: %w", c.url, err)
	}

	c.conn = conn
	c.attempts = 0
	c.gaveUp = false
	_, _ = c.machine.Fire(triggerEstablished)
	c.wg.Add(1)
	go c.readLoop(gen, conn)
	c.mu.Unlock()

	c.logger.LogAttrs(ctx, slog.LevelInfo, "socket connected")
	c.events.Emit(ctx, EventConnected, Event{Name: EventConnected})
	return nil
}

func (c *Client) readLoop(gen uint64, conn Conn) {
	defer c.wg.Done()
	ctx := context.Background()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.handleDrop(ctx, gen, conn, err)
			return
		}
		c.dispatch(ctx, data)
	}
}

func (c *Client) dispatch(ctx context.Context, data []byte) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil || env.Event == "" {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "malformed socket frame", logger.Error(err))
		return
	}
	if _, ok := c.forwarded[env.Event]; !ok {
		c.logger.LogAttrs(ctx, slog.LevelDebug, "socket event dropped", logger.Event(env.Event))
		return
	}
	c.events.Emit(ctx, env.Event, Event{Name: env.Event, Data: env.Data})
}

// handleDrop reacts to a read error on the live connection. Errors from a
// connection that Disconnect already replaced are ignored.
func (c *Client) handleDrop(ctx context.Context, gen uint64, conn Conn, err error) {
	c.mu.Lock()
	if gen != c.gen || c.manual || c.closed {
		c.mu.Unlock()
		return
	}
	c.conn = nil
	_, _ = c.machine.Fire(triggerClosed)
	c.mu.Unlock()

	_ = conn.Close()
	c.logger.LogAttrs(ctx, slog.LevelWarn, "socket disconnected", logger.Error(err))
	c.events.Emit(ctx, EventDisconnected, Event{Name: EventDisconnected, Err: err})
	c.scheduleReconnect(ctx)
}

// scheduleReconnect arms the next retry or, once the policy is exhausted,
// emits reconnectionFailed a single time.
func (c *Client) scheduleReconnect(ctx context.Context) {
	c.mu.Lock()
	if c.manual || c.closed || c.timer != nil || c.gaveUp {
		c.mu.Unlock()
		return
	}

	c.attempts++
	attempt := c.attempts
	delay, ok := c.policy.Delay(attempt)
	if !ok {
		c.gaveUp = true
		c.mu.Unlock()

		c.logger.LogAttrs(ctx, slog.LevelError, "socket reconnection failed", logger.Attempt(attempt-1))
		c.events.Emit(ctx, EventReconnectionFailed, Event{Name: EventReconnectionFailed, Attempt: attempt - 1})
		return
	}

	gen := c.gen
	c.wg.Add(1)
	c.timer = time.AfterFunc(delay, func() {
		defer c.wg.Done()
		c.retry(gen)
	})
	c.mu.Unlock()

	c.logger.LogAttrs(ctx, slog.LevelInfo, "socket reconnect scheduled",
		logger.Attempt(attempt),
		logger.Duration(delay),
	)
	c.events.Emit(ctx, EventReconnecting, Event{Name: EventReconnecting, Attempt: attempt, Delay: delay})
}

func (c *Client) retry(gen uint64) {
	c.mu.Lock()
	c.timer = nil
	if c.manual || c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	if _, err := c.machine.Fire(triggerDial); err != nil {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	_ = c.dial(context.Background())
}

// stopTimerLocked cancels a pending retry. Caller holds c.mu.
func (c *Client) stopTimerLocked() {
	if c.timer == nil {
		return
	}
	if c.timer.Stop() {
		c.wg.Done()
	}
	c.timer = nil
}

// Disconnect closes the socket on purpose. Pending retries are cancelled and
// no reconnect is scheduled until the next Connect.
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.manual = true
	c.gen++
	c.stopTimerLocked()
	if c.cancelDial != nil {
		c.cancelDial()
		c.cancelDial = nil
	}
	conn := c.conn
	c.conn = nil
	_, err := c.machine.Fire(triggerClosed)
	c.mu.Unlock()

	if conn != nil {
		c.writeMu.Lock()
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
		c.writeMu.Unlock()
	}

	if err == nil {
		ctx := context.Background()
		c.logger.LogAttrs(ctx, slog.LevelInfo, "socket closed by client")
		c.events.Emit(ctx, EventDisconnected, Event{Name: EventDisconnected, Manual: true})
	}
}

// Close disconnects, waits for background goroutines and drops every
// subscriber. The client cannot be reused. It must not be called from an On
// handler; see On.
func (c *Client) Close() error {
	c.Disconnect()

	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.wg.Wait()
	return c.events.Close()
}

// Emit sends a named event to the server. When not connected it logs a
// warning and returns ErrNotConnected; nothing is queued.
func (c *Client) Emit(ctx context.Context, event string, data any) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil || !c.IsConnected() {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "socket not connected, event not sent", logger.Event(event))
		return ErrNotConnected
	}

	env := envelope{Event: event}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("transport: encode %s: %w", event, err)
		}
		env.Data = raw
	}
	frame, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("transport: encode %s: %w", event, err)
	}

	c.writeMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, frame)
	c.writeMu.Unlock()
	if err != nil {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "socket write failed", logger.Event(event), logger.Error(err))
		return errors.Join(ErrNotConnected, err)
	}
	return nil
}

// Join subscribes to room on the server.
func (c *Client) Join(ctx context.Context, room string) error {
	return c.Emit(ctx, EventJoin, map[string]string{"room": room})
}

// Leave unsubscribes from room.
func (c *Client) Leave(ctx context.Context, room string) error {
	return c.Emit(ctx, EventLeave, map[string]string{"room": room})
}

// Authenticate sends token over an open socket, for servers that expect it
// after the handshake.
func (c *Client) Authenticate(ctx context.Context, token string) error {
	return c.Emit(ctx, EventAuthenticate, map[string]string{"token": token})
}

// UpdatePresence publishes the user's status, e.g. "online" or "away".
func (c *Client) UpdatePresence(ctx context.Context, status string) error {
	return c.Emit(ctx, EventUpdatePresence, map[string]string{"status": status})
}

// Typing tells the conversation peers whether the user is typing.
func (c *Client) Typing(ctx context.Context, conversationID string, typing bool) error {
	return c.Emit(ctx, EventTyping, map[string]any{"conversationId": conversationID, "typing": typing})
}
