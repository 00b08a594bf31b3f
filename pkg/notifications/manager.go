package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dmitrymomot/socialkit/pkg/broadcast"
	"github.com/dmitrymomot/socialkit/pkg/kvstore"
	"github.com/dmitrymomot/socialkit/pkg/logger"
	"github.com/dmitrymomot/socialkit/pkg/statemachine"
	"github.com/dmitrymomot/socialkit/pkg/toast"
	"github.com/dmitrymomot/socialkit/pkg/transport"
)

// Manager owns the live notification set and the settings, and decides which
// side effects (toast, desktop popup, sound) each notification gets.
type Manager struct {
	server      Emitter
	toaster     Toaster
	desktop     DesktopNotifier
	sound       SoundPlayer
	storage     kvstore.Storage
	settingsKey string
	now         func() time.Time
	limiter     *rate.Limiter
	logger      *slog.Logger

	list       *MemoryStorage
	events     *broadcast.Emitter[Event]
	permission *statemachine.Machine[Permission, permissionEvent]

	mu       sync.RWMutex
	settings Settings
	soundOn  bool
	closed   bool
}

// NewManager creates a manager with default settings. It never asks for
// desktop permission; call RequestDesktopPermission for that.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		desktop:     NoOpDesktop{},
		sound:       NoOpSound{},
		settingsKey: DefaultSettingsKey,
		now:         time.Now,
		logger:      slog.Default(),
		list:        NewMemoryStorage(),
		permission:  newPermission(),
		settings:    DefaultSettings(),
		soundOn:     true,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.logger = m.logger.With(logger.Component("notifications"))
	m.events = broadcast.NewEmitter[Event](broadcast.WithLogger(m.logger))

	return m
}

// On subscribes fn to a Manager event.
func (m *Manager) On(event string, fn func(Event)) (unsubscribe func()) {
	return m.events.On(event, fn)
}

// Stream delivers a Manager event to a buffered channel until ctx is done.
func (m *Manager) Stream(ctx context.Context, event string, buffer int) <-chan Event {
	return m.events.Stream(ctx, event, buffer)
}

// Close detaches every subscriber and stops settings persistence. Settings
// updates after Close are rejected.
func (m *Manager) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return m.events.Close()
}

// LoadSettings merges the persisted settings document over the defaults.
// A missing document keeps the defaults; a corrupt one is logged and ignored.
func (m *Manager) LoadSettings(ctx context.Context) Settings {
	if m.storage == nil {
		return m.Settings()
	}

	loaded := DefaultSettings()
	err := kvstore.LoadJSON(ctx, m.storage, m.settingsKey, &loaded)
	switch {
	case err == nil:
	case errors.Is(err, kvstore.ErrNotFound):
		return m.Settings()
	default:
		m.logger.LogAttrs(ctx, slog.LevelError, "failed to load notification settings, using defaults",
			logger.StorageKey(m.settingsKey),
			logger.Error(err),
		)
		return m.Settings()
	}

	m.mu.Lock()
	m.settings = loaded
	m.mu.Unlock()
	return loaded
}

// Settings returns a copy of the current settings.
func (m *Manager) Settings() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// UpdateSettings merges patch, persists the result and emits settingsUpdated.
// A failed write is logged; the in-memory settings still change. After Close
// the patch is ignored and the current settings are returned.
func (m *Manager) UpdateSettings(ctx context.Context, patch SettingsPatch) Settings {
	m.mu.Lock()
	if m.closed {
		current := m.settings
		m.mu.Unlock()
		m.logger.LogAttrs(ctx, slog.LevelWarn, "settings update after close ignored",
			logger.StorageKey(m.settingsKey),
		)
		return current
	}
	m.settings = m.settings.Apply(patch)
	updated := m.settings

	// Written under the lock so Close cannot race a pending write.
	if m.storage != nil {
		if err := kvstore.SaveJSON(ctx, m.storage, m.settingsKey, updated); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelError, "failed to persist notification settings",
				logger.StorageKey(m.settingsKey),
				logger.Error(err),
			)
		}
	}
	m.mu.Unlock()

	m.events.Emit(ctx, EventSettingsUpdated, Event{Settings: updated})
	return updated
}

// SetSoundEnabled is the runtime sound toggle. Sound plays only when both
// this toggle and Settings.SoundEnabled are on.
func (m *Manager) SetSoundEnabled(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.soundOn = on
}

// SoundEnabled reports the runtime sound toggle.
func (m *Manager) SoundEnabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.soundOn
}

// InQuietHours reports whether the current time is inside the quiet window.
func (m *Manager) InQuietHours() bool {
	return m.Settings().QuietHours.Contains(m.now())
}

// Permission returns the desktop-notification consent state.
func (m *Manager) Permission() Permission {
	return m.permission.Current()
}

// RequestDesktopPermission asks the desktop backend for consent once. Later
// calls return the recorded answer without asking again.
func (m *Manager) RequestDesktopPermission(ctx context.Context) Permission {
	if !m.permission.Is(PermissionUnrequested) {
		return m.permission.Current()
	}

	granted, err := m.desktop.RequestPermission(ctx)
	if err != nil {
		m.logger.LogAttrs(ctx, slog.LevelError, "desktop permission request failed", logger.Error(err))
	}

	event := permissionDeny
	if granted && err == nil {
		event = permissionGrant
	}
	to, err := m.permission.Fire(event)
	if err != nil {
		// answered concurrently
		return m.permission.Current()
	}

	m.logger.LogAttrs(ctx, slog.LevelInfo, "desktop permission answered", logger.State(string(to)))
	m.events.Emit(ctx, EventPermissionChanged, Event{Permission: to})
	return to
}

// HandleIncoming records n and fans it out. The notification is always stored
// and announced with EventNotification; a muted channel or quiet hours only
// suppress the toast, desktop popup and sound. A notification whose id is
// already stored is ignored and false is returned.
func (m *Manager) HandleIncoming(ctx context.Context, n Notification) bool {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = m.now()
	}
	if n.Priority == "" {
		n.Priority = PriorityNormal
	}

	if err := m.list.Create(n); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelDebug, "notification ignored",
			logger.NotificationID(n.ID),
			logger.Error(err),
		)
		return false
	}
	m.events.Emit(ctx, EventNotification, Event{Notification: n, ID: n.ID})

	settings := m.Settings()
	if !settings.Enabled(n.Type) {
		m.logger.LogAttrs(ctx, slog.LevelDebug, "notification channel muted",
			logger.NotificationID(n.ID),
			slog.String("type", string(n.Type)),
		)
		return true
	}
	if settings.QuietHours.Contains(m.now()) {
		m.logger.LogAttrs(ctx, slog.LevelDebug, "notification silenced by quiet hours",
			logger.NotificationID(n.ID),
		)
		return true
	}

	m.ShowToast(ctx, n, toast.SeverityInfo)
	m.deliverSideEffects(ctx, n, settings)
	return true
}

// deliverSideEffects runs the desktop popup and the sound. Both are
// best-effort: failures and panics are logged and swallowed.
func (m *Manager) deliverSideEffects(ctx context.Context, n Notification, settings Settings) {
	desktop := settings.DesktopEnabled && m.Permission() == PermissionGranted
	sound := settings.SoundEnabled && m.SoundEnabled()
	if !desktop && !sound {
		return
	}

	if m.limiter != nil && !m.limiter.Allow() {
		m.logger.LogAttrs(ctx, slog.LevelDebug, "notification side effects throttled",
			logger.NotificationID(n.ID),
		)
		return
	}

	if desktop {
		m.safely(ctx, "desktop notification failed", n, func() error { return m.desktop.Show(ctx, n) })
	}
	if sound {
		m.safely(ctx, "notification sound failed", n, func() error { return m.sound.Play(ctx, n) })
	}
}

func (m *Manager) safely(ctx context.Context, msg string, n Notification, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.LogAttrs(ctx, slog.LevelError, msg,
				logger.NotificationID(n.ID),
				logger.Error(fmt.Errorf("panic: %v", r)),
			)
		}
	}()
	if err := fn(); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelError, msg,
			logger.NotificationID(n.ID),
			logger.Error(err),
		)
	}
}

// Notifications returns the live set, newest first.
func (m *Manager) Notifications() []Notification {
	return m.list.List(ListOptions{})
}

// List returns a filtered page of the live set, newest first.
func (m *Manager) List(opts ListOptions) []Notification {
	return m.list.List(opts)
}

// Notification returns the notification with id.
func (m *Manager) Notification(id string) (Notification, bool) {
	n, err := m.list.Get(id)
	return n, err == nil
}

// UnreadCount counts unread notifications on every call.
func (m *Manager) UnreadCount() int {
	return m.list.CountUnread()
}

// MarkAsRead flips id to read. Unknown or already-read ids are a no-op and
// return false. With emitToServer the server is told as well.
func (m *Manager) MarkAsRead(ctx context.Context, id string, emitToServer bool) bool {
	if len(m.list.MarkRead(id)) == 0 {
		return false
	}
	if emitToServer {
		m.notifyServer(ctx, transport.EventMarkNotificationRead, map[string]string{"notificationId": id})
	}

	n, _ := m.list.Get(id)
	m.events.Emit(ctx, EventNotificationUpdated, Event{Notification: n, ID: id})
	return true
}

// MarkAllAsRead flips every unread notification. Nothing is sent or emitted
// when there was nothing to change. It returns the number changed.
func (m *Manager) MarkAllAsRead(ctx context.Context) int {
	changed := m.list.MarkAllRead()
	if len(changed) == 0 {
		return 0
	}
	m.notifyServer(ctx, transport.EventMarkAllNotificationsRead, nil)
	m.events.Emit(ctx, EventAllNotificationsRead, Event{Count: len(changed)})
	return len(changed)
}

// RemoveNotification deletes id. Unknown ids are a no-op.
func (m *Manager) RemoveNotification(ctx context.Context, id string, emitToServer bool) bool {
	if len(m.list.Delete(id)) == 0 {
		return false
	}
	if emitToServer {
		m.notifyServer(ctx, transport.EventDeleteNotification, map[string]string{"notificationId": id})
	}
	m.events.Emit(ctx, EventNotificationRemoved, Event{ID: id})
	return true
}

// ClearAllNotifications empties the live set and returns how many were dropped.
func (m *Manager) ClearAllNotifications(ctx context.Context) int {
	count := m.list.Clear()
	m.notifyServer(ctx, transport.EventClearAllNotifications, nil)
	m.events.Emit(ctx, EventAllNotificationsCleared, Event{Count: count})
	return count
}

func (m *Manager) notifyServer(ctx context.Context, event string, data any) {
	if m.server == nil {
		return
	}
	if err := m.server.Emit(ctx, event, data); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelDebug, "server acknowledgement not sent",
			logger.Event(event),
			logger.Error(err),
		)
	}
}
