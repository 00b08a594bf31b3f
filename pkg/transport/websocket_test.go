package transport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialkit/pkg/logger"
	"github.com/dmitrymomot/socialkit/pkg/transport"
)

func TestWebsocketDialer_RoundTrip(t *testing.T) {
	t.Parallel()

	received := make(chan string, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"mention","data":{"postId":"p1"}}`))
		_, msg, err := conn.ReadMessage()
		if err == nil {
			received <- string(msg)
		}
		// Wait for the client to hang up.
		_, _, _ = conn.ReadMessage()
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	c := transport.New(url, transport.WithLogger(logger.Discard()))
	t.Cleanup(func() { _ = c.Close() })

	mentions := c.Stream(context.Background(), transport.EventMention, 1)
	require.NoError(t, c.Connect(context.Background(), "secret"))

	e := <-mentions
	assert.JSONEq(t, `{"postId":"p1"}`, string(e.Data))

	require.NoError(t, c.UpdatePresence(context.Background(), "online"))
	assert.JSONEq(t, `{"event":"updatePresence","data":{"status":"online"}}`, <-received)
}

func TestWebsocketDialer_Rejected(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	_, err := transport.WebsocketDialer{}.Dial(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	assert.ErrorIs(t, err, transport.ErrDialFailed)
}
