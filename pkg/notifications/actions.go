package notifications

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/socialkit/pkg/toast"
)

// Default auto-hide delays of the convenience toasts. Errors stay until closed.
const (
	SuccessDuration = 3 * time.Second
	WarningDuration = 5 * time.Second
	InfoDuration    = 4 * time.Second
)

// ShowToast hands n to the toaster and emits EventToast. n does not need an
// id. Closing the toast routes to HandleNotificationAction with
// ActionDismiss; picking an action routes there with that action. It returns
// the toast id, or "" when the toaster refused it.
func (m *Manager) ShowToast(ctx context.Context, n Notification, severity toast.Severity) string {
	t := n.toToast(severity)
	t.CreatedAt = m.now()
	t.OnClose = func() {
		m.HandleNotificationAction(context.Background(), n, ActionDismiss)
	}
	t.OnAction = func(action string) {
		m.HandleNotificationAction(context.Background(), n, action)
	}

	if m.toaster != nil {
		t.ID = m.toaster.Push(t)
	} else {
		t.ID = uuid.NewString()
	}
	if t.ID == "" {
		return ""
	}

	m.events.Emit(ctx, EventToast, Event{Toast: t, Notification: n, ID: n.ID})
	return t.ID
}

// ShowSuccess shows a success toast for SuccessDuration.
func (m *Manager) ShowSuccess(ctx context.Context, message string, title ...string) string {
	return m.showSystem(ctx, toast.SeveritySuccess, message, titleOr(title, "Success"), SuccessDuration, false)
}

// ShowError shows a persistent error toast.
func (m *Manager) ShowError(ctx context.Context, message string, title ...string) string {
	return m.showSystem(ctx, toast.SeverityError, message, titleOr(title, "Error"), 0, true)
}

// ShowWarning shows a warning toast for WarningDuration.
func (m *Manager) ShowWarning(ctx context.Context, message string, title ...string) string {
	return m.showSystem(ctx, toast.SeverityWarning, message, titleOr(title, "Warning"), WarningDuration, false)
}

// ShowInfo shows an informational toast for InfoDuration.
func (m *Manager) ShowInfo(ctx context.Context, message string, title ...string) string {
	return m.showSystem(ctx, toast.SeverityInfo, message, titleOr(title, "Info"), InfoDuration, false)
}

func (m *Manager) showSystem(ctx context.Context, severity toast.Severity, message, title string, d time.Duration, persistent bool) string {
	priority := PriorityNormal
	if severity == toast.SeverityError {
		priority = PriorityHigh
	}
	return m.ShowToast(ctx, Notification{
		Type:       TypeSystem,
		Title:      title,
		Message:    message,
		Timestamp:  m.now(),
		Priority:   priority,
		Persistent: persistent,
		Duration:   d.Milliseconds(),
	}, severity)
}

func titleOr(title []string, fallback string) string {
	if len(title) > 0 && title[0] != "" {
		return title[0]
	}
	return fallback
}

// HandleNotificationAction reacts to a toast interaction. ActionDismiss marks
// the notification read; anything else emits EventNavigate with the path
// returned by NavigationPath.
func (m *Manager) HandleNotificationAction(ctx context.Context, n Notification, action string) {
	if action == ActionDismiss {
		m.MarkAsRead(ctx, n.ID, true)
		return
	}
	m.events.Emit(ctx, EventNavigate, Event{
		Notification: n,
		ID:           n.ID,
		Path:         NavigationPath(n),
		Action:       action,
	})
}

// NavigationPath maps a notification to the page that shows its subject.
func NavigationPath(n Notification) string {
	switch n.Type {
	case TypeMessage:
		if id, ok := n.DataString("conversationId"); ok {
			return "/messages/" + url.PathEscape(id)
		}
		return "/messages"
	case TypeMention, TypeLike, TypeComment:
		if id, ok := n.DataString("postId"); ok {
			return "/post/" + url.PathEscape(id)
		}
	case TypeFollow:
		id, ok := n.DataString("userId")
		if !ok {
			id, ok = n.UserID, n.UserID != ""
		}
		if ok {
			return "/profile/" + url.PathEscape(id)
		}
	case TypeProduct:
		if id, ok := n.DataString("productId"); ok {
			return "/product/" + url.PathEscape(id)
		}
	case TypeCart:
		return "/cart"
	}
	return "/notifications"
}
