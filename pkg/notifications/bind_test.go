package notifications_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialkit/pkg/notifications"
	"github.com/dmitrymomot/socialkit/pkg/transport"
)

type fakeSource struct {
	mu       sync.Mutex
	handlers map[string]func(transport.Event)
}

func (s *fakeSource) On(event string, fn func(transport.Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handlers == nil {
		s.handlers = make(map[string]func(transport.Event))
	}
	s.handlers[event] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.handlers, event)
	}
}

func (s *fakeSource) send(event, data string) {
	s.mu.Lock()
	fn := s.handlers[event]
	s.mu.Unlock()
	if fn != nil {
		fn(transport.Event{Name: event, Data: []byte(data)})
	}
}

func (s *fakeSource) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers)
}

func TestManager_Bind(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.quietSound()
	src := &fakeSource{}
	unbind := f.m.Bind(src)

	src.send(transport.EventNotification, `{
		"id": "n1",
		"type": "comment",
		"title": "New comment",
		"message": "Nice!",
		"timestamp": "2026-05-04T10:00:00.000Z",
		"isRead": false,
		"data": {"postId": "p9"},
		"priority": "high"
	}`)
	n, ok := f.m.Notification("n1")
	require.True(t, ok)
	assert.Equal(t, notifications.TypeComment, n.Type)
	assert.Equal(t, notifications.PriorityHigh, n.Priority)
	assert.Equal(t, "/post/p9", notifications.NavigationPath(n))
	assert.Equal(t, 2026, n.Timestamp.Year())

	src.send(transport.EventNotificationRead, `{"notificationId":"n1"}`)
	n, _ = f.m.Notification("n1")
	assert.True(t, n.IsRead)

	src.send(transport.EventMessageReceived, `{"id":"42","conversationId":"c7","senderId":"u3","senderName":"Ann","content":"hi"}`)
	msg, ok := f.m.Notification("message-42")
	require.True(t, ok)
	assert.Equal(t, notifications.TypeMessage, msg.Type)
	assert.Equal(t, "New message from Ann", msg.Title)
	assert.Equal(t, "u3", msg.UserID)
	assert.Equal(t, "/messages/c7", notifications.NavigationPath(msg))

	src.send(transport.EventMention, `{"id":"5","postId":"p1","userName":"Bo","content":"@you look"}`)
	mention, ok := f.m.Notification("mention-5")
	require.True(t, ok)
	assert.Equal(t, "Bo mentioned you", mention.Title)

	src.send(transport.EventNotificationDeleted, `{"id":"n1"}`)
	_, ok = f.m.Notification("n1")
	assert.False(t, ok)

	// Mirrored server state is not echoed back.
	f.server.AssertNotCalled(t, "Emit", mock.Anything, transport.EventMarkNotificationRead, mock.Anything)
	f.server.AssertNotCalled(t, "Emit", mock.Anything, transport.EventDeleteNotification, mock.Anything)

	// Malformed payloads are dropped.
	src.send(transport.EventNotification, `{"id": 5}`)
	assert.Len(t, f.m.Notifications(), 2)

	unbind()
	assert.Zero(t, src.len())
}

func TestManager_BindToTransport(t *testing.T) {
	t.Parallel()
	// *transport.Client satisfies both Source and Emitter.
	var _ notifications.Source = (*transport.Client)(nil)
	var _ notifications.Emitter = (*transport.Client)(nil)

	f := newFixture(t)
	f.quietSound()
	unbind := f.m.Bind(&fakeSource{})
	unbind()
	assert.Empty(t, f.m.Notifications())
}
