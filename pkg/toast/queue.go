package toast

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/socialkit/pkg/broadcast"
	"github.com/dmitrymomot/socialkit/pkg/cache"
	"github.com/dmitrymomot/socialkit/pkg/logger"
	"github.com/dmitrymomot/socialkit/pkg/statemachine"
)

type entry struct {
	toast   Toast
	timer   Timer
	shownAt time.Time
	state   *statemachine.Machine[Status, trigger]
}

type removal struct {
	toast  Toast
	reason Status
}

// Queue is a bounded list of visible toasts, newest first. Pushing past the
// bound evicts the oldest toast. Every non-persistent toast has its own
// expiry timer, cancelled as soon as the toast leaves the queue.
type Queue struct {
	max             int
	defaultDuration time.Duration
	afterFunc       TimerFunc
	now             func() time.Time
	logger          *slog.Logger

	items   *cache.LRUCache[string, *entry]
	events  *broadcast.Emitter[Event]
	dropped []removal // filled by the evict callback, guarded by mu
	closed  bool
	mu      sync.Mutex
}

// NewQueue creates an empty queue. Call Shutdown to stop pending timers.
func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		max:             DefaultMaxToasts,
		defaultDuration: DefaultDuration,
		afterFunc:       afterFunc,
		now:             time.Now,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(q)
	}

	q.logger = q.logger.With(logger.Component("toast"))
	q.events = broadcast.NewEmitter[Event](broadcast.WithLogger(q.logger))
	q.items = cache.NewLRUCache[string, *entry](q.max)
	q.items.SetEvictCallback(q.onEvict)

	return q
}

// onEvict runs inside cache calls made while q.mu is held.
func (q *Queue) onEvict(_ string, e *entry, reason cache.EvictReason) {
	if e.timer != nil {
		e.timer.Stop()
	}

	var tr trigger
	switch reason {
	case cache.EvictCapacity:
		tr = triggerEvict
	case cache.EvictCleared:
		tr = triggerClear
	default:
		return
	}
	if to, err := e.state.Fire(tr); err == nil && !q.closed {
		q.dropped = append(q.dropped, removal{toast: e.toast, reason: to})
	}
}

func (q *Queue) takeDroppedLocked() []removal {
	out := q.dropped
	q.dropped = nil
	return out
}

// On subscribes to EventShown or EventRemoved.
func (q *Queue) On(event string, fn func(Event)) (unsubscribe func()) {
	return q.events.On(event, fn)
}

// Push shows t at the head of the queue and returns its generated id. It
// returns an empty id after Shutdown.
func (q *Queue) Push(t Toast) string {
	t.ID = uuid.NewString()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = q.now()
	}
	if t.Duration <= 0 {
		t.Duration = q.defaultDuration
	}

	e := &entry{toast: t, state: newLifecycle()}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.logger.LogAttrs(context.Background(), slog.LevelWarn, "toast queue is shut down, toast dropped")
		return ""
	}

	q.items.Put(t.ID, e)
	dropped := q.takeDroppedLocked()

	_, _ = e.state.Fire(triggerShow)
	e.shownAt = q.now()
	if !t.Persistent {
		id := t.ID
		e.timer = q.afterFunc(t.Duration, func() { q.expire(id) })
	}
	q.mu.Unlock()

	ctx := context.Background()
	for _, r := range dropped {
		q.emitRemoved(ctx, r.toast, r.reason)
	}
	q.events.Emit(ctx, EventShown, Event{Toast: t})

	return t.ID
}

// take removes id from the queue if the lifecycle allows tr.
func (q *Queue) take(id string, tr trigger) (*entry, Status, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	e, ok := q.items.Peek(id)
	if !ok {
		return nil, "", false
	}
	to, err := e.state.Fire(tr)
	if err != nil {
		return nil, "", false
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	q.items.Remove(id)
	return e, to, true
}

// Close dismisses a toast on user request and runs its OnClose once.
// It reports false if the toast is no longer visible.
func (q *Queue) Close(id string) bool {
	e, status, ok := q.take(id, triggerDismiss)
	if !ok {
		return false
	}
	if e.toast.OnClose != nil {
		e.toast.OnClose()
	}
	q.emitRemoved(context.Background(), e.toast, status)
	return true
}

// Act removes a toast because the user picked action and runs its OnAction
// once. OnClose is not called.
func (q *Queue) Act(id, action string) bool {
	e, status, ok := q.take(id, triggerAct)
	if !ok {
		return false
	}
	if e.toast.OnAction != nil {
		e.toast.OnAction(action)
	}
	q.emitRemoved(context.Background(), e.toast, status)
	return true
}

func (q *Queue) expire(id string) {
	e, status, ok := q.take(id, triggerExpire)
	if !ok {
		return
	}
	q.emitRemoved(context.Background(), e.toast, status)
}

func (q *Queue) emitRemoved(ctx context.Context, t Toast, reason Status) {
	q.logger.LogAttrs(ctx, slog.LevelDebug, "toast removed",
		logger.ToastID(t.ID),
		logger.State(string(reason)),
	)
	q.events.Emit(ctx, EventRemoved, Event{Toast: t, Reason: reason})
}

// Active returns the visible toasts, newest first.
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries := q.items.Values()
	out := make([]Toast, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.toast)
	}
	return out
}

// Len returns the number of visible toasts.
func (q *Queue) Len() int {
	return q.items.Len()
}

// Get returns a visible toast by id.
func (q *Queue) Get(id string) (Toast, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.items.Peek(id)
	if !ok {
		return Toast{}, false
	}
	return e.toast, true
}

// Progress reports elapsed/duration in [0, 1] for a visible toast. Persistent
// toasts always report 0.
func (q *Queue) Progress(id string) (float64, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	e, ok := q.items.Peek(id)
	if !ok {
		return 0, false
	}
	if e.toast.Persistent || e.toast.Duration <= 0 {
		return 0, true
	}
	p := float64(q.now().Sub(e.shownAt)) / float64(e.toast.Duration)
	return min(max(p, 0), 1), true
}

// Clear removes every toast without running descriptor callbacks.
func (q *Queue) Clear() {
	q.mu.Lock()
	q.items.Clear()
	dropped := q.takeDroppedLocked()
	q.mu.Unlock()

	ctx := context.Background()
	for _, r := range dropped {
		q.emitRemoved(ctx, r.toast, r.reason)
	}
}

// Shutdown cancels every pending timer, drops all toasts silently and
// detaches subscribers. Later pushes are ignored.
func (q *Queue) Shutdown() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.items.Clear()
	q.dropped = nil
	q.mu.Unlock()

	_ = q.events.Close()
}
