package transport_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/socialkit/pkg/transport"
)

var errRefused = errors.New("connection refused")

type fakeConn struct {
	in      chan []byte
	closed  chan struct{}
	once    sync.Once
	mu      sync.Mutex
	written [][]byte
	types   []int
}

func newFakeConn() *fakeConn {
	return &fakeConn{in: make(chan []byte, 16), closed: make(chan struct{})}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case b := <-c.in:
		return websocket.TextMessage, b, nil
	case <-c.closed:
		return 0, nil, io.EOF
	}
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	select {
	case <-c.closed:
		return io.ErrClosedPipe
	default:
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.types = append(c.types, messageType)
	c.written = append(c.written, append([]byte(nil), data...))
	return nil
}

func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

// text returns the text frames written so far.
func (c *fakeConn) text() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for i, b := range c.written {
		if c.types[i] == websocket.TextMessage {
			out = append(out, string(b))
		}
	}
	return out
}

func (c *fakeConn) sentClose() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.types {
		if t == websocket.CloseMessage {
			return true
		}
	}
	return false
}

type fakeDialer struct {
	mu      sync.Mutex
	calls   int
	fail    func(call int) error
	block   chan struct{}
	conns   []*fakeConn
	headers []http.Header
}

func (d *fakeDialer) Dial(ctx context.Context, url string, header http.Header) (transport.Conn, error) {
	d.mu.Lock()
	d.calls++
	call := d.calls
	d.headers = append(d.headers, header)
	block := d.block
	fail := d.fail
	d.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if fail != nil {
		if err := fail(call); err != nil {
			return nil, err
		}
	}

	c := newFakeConn()
	d.mu.Lock()
	d.conns = append(d.conns, c)
	d.mu.Unlock()
	return c, nil
}

func (d *fakeDialer) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

func (d *fakeDialer) Conn(i int) *fakeConn {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i >= len(d.conns) {
		return nil
	}
	return d.conns[i]
}

func alwaysFail(int) error { return errRefused }

// recorder collects events by name.
type recorder struct {
	mu     sync.Mutex
	events map[string][]transport.Event
}

func record(c *transport.Client, names ...string) *recorder {
	r := &recorder{events: make(map[string][]transport.Event)}
	for _, name := range names {
		c.On(name, func(e transport.Event) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.events[name] = append(r.events[name], e)
		})
	}
	return r
}

func (r *recorder) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events[name])
}

func (r *recorder) get(name string) []transport.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]transport.Event(nil), r.events[name]...)
}
