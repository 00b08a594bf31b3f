package notifications

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/socialkit/pkg/logger"
	"github.com/dmitrymomot/socialkit/pkg/transport"
)

// Source delivers server events. *transport.Client satisfies it.
type Source interface {
	On(event string, fn func(transport.Event)) (unsubscribe func())
}

type idPayload struct {
	NotificationID string `json:"notificationId"`
	ID             string `json:"id"`
}

func (p idPayload) id() string {
	if p.NotificationID != "" {
		return p.NotificationID
	}
	return p.ID
}

type messagePayload struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	SenderName     string    `json:"senderName"`
	SenderAvatar   string    `json:"senderAvatar"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
}

func (p messagePayload) notification() Notification {
	title := "New message"
	if p.SenderName != "" {
		title = "New message from " + p.SenderName
	}
	n := Notification{
		Type:      TypeMessage,
		Title:     title,
		Message:   p.Content,
		Timestamp: p.Timestamp,
		UserID:    p.SenderID,
		Avatar:    p.SenderAvatar,
		Data:      map[string]any{"conversationId": p.ConversationID},
		Actions: []Action{
			{Label: "Reply", Action: "reply", Style: "primary"},
			{Label: "Dismiss", Action: ActionDismiss},
		},
	}
	if p.ID != "" {
		n.ID = "message-" + p.ID
		n.Data["messageId"] = p.ID
	}
	return n
}

type mentionPayload struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Avatar    string    `json:"avatar"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func (p mentionPayload) notification() Notification {
	title := "You were mentioned"
	if p.UserName != "" {
		title = p.UserName + " mentioned you"
	}
	n := Notification{
		Type:      TypeMention,
		Title:     title,
		Message:   p.Content,
		Timestamp: p.Timestamp,
		UserID:    p.UserID,
		Avatar:    p.Avatar,
		Data:      map[string]any{"postId": p.PostID},
		Actions: []Action{
			{Label: "View", Action: "view", Style: "primary"},
		},
	}
	if p.ID != "" {
		n.ID = "mention-" + p.ID
	}
	return n
}

// Bind routes server events from src into the manager. Read and delete
// events mirror the server state, so they are not echoed back. The returned
// function unsubscribes everything.
func (m *Manager) Bind(src Source) (unbind func()) {
	ctx := context.Background()

	offs := []func(){
		src.On(transport.EventNotification, func(e transport.Event) {
			var n Notification
			if m.decode(ctx, e, &n) {
				m.HandleIncoming(ctx, n)
			}
		}),
		src.On(transport.EventNotificationRead, func(e transport.Event) {
			var p idPayload
			if m.decode(ctx, e, &p) {
				m.MarkAsRead(ctx, p.id(), false)
			}
		}),
		src.On(transport.EventNotificationDeleted, func(e transport.Event) {
			var p idPayload
			if m.decode(ctx, e, &p) {
				m.RemoveNotification(ctx, p.id(), false)
			}
		}),
		src.On(transport.EventMessageReceived, func(e transport.Event) {
			var p messagePayload
			if m.decode(ctx, e, &p) {
				m.HandleIncoming(ctx, p.notification())
			}
		}),
		src.On(transport.EventMention, func(e transport.Event) {
			var p mentionPayload
			if m.decode(ctx, e, &p) {
				m.HandleIncoming(ctx, p.notification())
			}
		}),
	}

	return func() {
		for _, off := range offs {
			off()
		}
	}
}

func (m *Manager) decode(ctx context.Context, e transport.Event, v any) bool {
	if err := e.Decode(v); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "malformed server event",
			logger.Event(e.Name),
			logger.Error(err),
		)
		return false
	}
	return true
}
