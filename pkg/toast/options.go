package toast

import (
	"log/slog"
	"time"
)

const (
	DefaultMaxToasts = 5
	DefaultDuration  = 4 * time.Second
)

// Timer is the part of *time.Timer the queue needs.
type Timer interface {
	Stop() bool
}

// TimerFunc schedules f after d, like time.AfterFunc.
type TimerFunc func(d time.Duration, f func()) Timer

func afterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Option configures a Queue.
type Option func(*Queue)

// WithMaxToasts bounds the number of visible toasts.
func WithMaxToasts(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.max = n
		}
	}
}

// WithDefaultDuration sets the auto-hide delay for toasts without a Duration.
func WithDefaultDuration(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.defaultDuration = d
		}
	}
}

// WithTimerFunc replaces time.AfterFunc, mostly for tests.
func WithTimerFunc(fn TimerFunc) Option {
	return func(q *Queue) {
		if fn != nil {
			q.afterFunc = fn
		}
	}
}

// WithClock overrides time.Now for CreatedAt and Progress.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) {
		if now != nil {
			q.now = now
		}
	}
}

// WithLogger sets the queue logger.
func WithLogger(l *slog.Logger) Option {
	return func(q *Queue) {
		if l != nil {
			q.logger = l
		}
	}
}
