package notifications

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/socialkit/pkg/kvstore"
	"github.com/dmitrymomot/socialkit/pkg/toast"
)

// DefaultSettingsKey is the storage key of the settings document.
const DefaultSettingsKey = "notification-settings"

// Emitter sends acknowledgements back to the server. *transport.Client
// satisfies it.
type Emitter interface {
	Emit(ctx context.Context, event string, data any) error
}

// Toaster displays toasts. *toast.Queue satisfies it.
type Toaster interface {
	Push(t toast.Toast) string
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithServer sets where read/delete acknowledgements are sent.
func WithServer(e Emitter) ManagerOption {
	return func(m *Manager) {
		m.server = e
	}
}

// WithToaster sets where toasts are shown.
func WithToaster(t Toaster) ManagerOption {
	return func(m *Manager) {
		m.toaster = t
	}
}

// WithDesktop sets the desktop notifier. nil keeps NoOpDesktop.
func WithDesktop(d DesktopNotifier) ManagerOption {
	return func(m *Manager) {
		if d != nil {
			m.desktop = d
		}
	}
}

// WithSound sets the sound player. nil keeps NoOpSound.
func WithSound(s SoundPlayer) ManagerOption {
	return func(m *Manager) {
		if s != nil {
			m.sound = s
		}
	}
}

// WithSettingsStorage persists settings under key. An empty key uses
// DefaultSettingsKey.
func WithSettingsStorage(s kvstore.Storage, key string) ManagerOption {
	return func(m *Manager) {
		m.storage = s
		if key != "" {
			m.settingsKey = key
		}
	}
}

// WithClock overrides time.Now for quiet hours and timestamps.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithManagerLogger sets the logger for the Manager.
func WithManagerLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSideEffectLimiter throttles desktop popups and sounds. Toasts and
// storage are never throttled.
func WithSideEffectLimiter(l *rate.Limiter) ManagerOption {
	return func(m *Manager) {
		m.limiter = l
	}
}
