package favorites

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/dmitrymomot/socialkit/pkg/kvstore"
	"github.com/dmitrymomot/socialkit/pkg/logger"
	"github.com/dmitrymomot/socialkit/pkg/product"
	"github.com/dmitrymomot/socialkit/pkg/store"
)

// DefaultStorageKey is where the item array is persisted.
const DefaultStorageKey = "favorites"

// Favorites is the user's favorites collection, persisted after every change.
type Favorites struct {
	store   *store.Store[State, Action]
	storage kvstore.Storage
	key     string
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures Favorites.
type Option func(*Favorites)

// WithStorage enables persistence. Without it the collection lives in memory.
func WithStorage(s kvstore.Storage) Option {
	return func(f *Favorites) {
		f.storage = s
	}
}

// WithStorageKey overrides DefaultStorageKey.
func WithStorageKey(key string) Option {
	return func(f *Favorites) {
		if key != "" {
			f.key = key
		}
	}
}

// WithClock overrides time.Now for item timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *Favorites) {
		if now != nil {
			f.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Favorites) {
		if l != nil {
			f.logger = l
		}
	}
}

// New creates an empty collection. Call Hydrate to restore saved items.
func New(opts ...Option) *Favorites {
	f := &Favorites{
		key:    DefaultStorageKey,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = f.logger.With(logger.Component("favorites"))

	storeOpts := []store.Option[State, Action]{store.WithLogger[State, Action](f.logger)}
	if f.storage != nil {
		storeOpts = append(storeOpts, store.WithPersistence(f.storage, f.key,
			func(s State) any { return s.Items },
			func(a Action) bool { return a.Type == ActionLoad },
		))
	}
	f.store = store.New(Empty(), Reduce, storeOpts...)
	return f
}

// Hydrate loads the persisted items once. Missing or corrupt data leaves the
// collection empty; corruption is logged.
func (f *Favorites) Hydrate(ctx context.Context) State {
	if f.storage == nil {
		return f.State()
	}
	var items []Item
	if !store.Hydrate(ctx, f.storage, f.key, &items, f.logger) {
		return f.State()
	}
	return f.store.Dispatch(ctx, Load(items))
}

// Add favorites p. Adding an existing product changes nothing.
func (f *Favorites) Add(ctx context.Context, p product.Product) State {
	return f.store.Dispatch(ctx, Add(p, f.now()))
}

// Remove drops productID. Unknown ids are a no-op.
func (f *Favorites) Remove(ctx context.Context, productID string) State {
	return f.store.Dispatch(ctx, Remove(productID))
}

// Toggle flips membership of p and reports true if the toggle was an add and
// false if it was a removal. The decision is read from the same locked step
// that applies it. After Close nothing changes and a warning is logged; the
// result still reports which way the toggle would have gone.
func (f *Favorites) Toggle(ctx context.Context, p product.Product) bool {
	prev, _, applied := f.store.Transition(ctx, Toggle(p, f.now()))
	if !applied {
		f.logger.LogAttrs(ctx, slog.LevelWarn, "toggle on closed favorites ignored", logger.ProductID(p.ID))
	}
	return !contains(prev.Items, p.ID)
}

// Clear removes every favorite.
func (f *Favorites) Clear(ctx context.Context) State {
	return f.store.Dispatch(ctx, Clear())
}

// IsFavorite reports whether productID is in the collection.
func (f *Favorites) IsFavorite(productID string) bool {
	return contains(f.State().Items, productID)
}

// State returns the current collection state.
func (f *Favorites) State() State {
	return f.store.State()
}

// Items returns the favorites in insertion order.
func (f *Favorites) Items() []Item {
	return slices.Clone(f.State().Items)
}

// ByCategory returns the favorites in category.
func (f *Favorites) ByCategory(category string) []Item {
	var out []Item
	for _, it := range f.State().Items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// Subscribe calls fn after every change.
func (f *Favorites) Subscribe(fn func(State)) (unsubscribe func()) {
	return f.store.Subscribe(fn)
}

// Close stops persistence; later changes are ignored.
func (f *Favorites) Close() error {
	return f.store.Close()
}
