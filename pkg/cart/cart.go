package cart

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
const DefaultStorageKey = "cart"

// Cart is the shopping cart, persisted after every change.
type Cart struct {
	store   *store.Store[State, Action]
	storage kvstore.Storage
	key     string
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures a Cart.
type Option func(*Cart)

// WithStorage enables persistence.
func WithStorage(s kvstore.Storage) Option {
	return func(c *Cart) {
		c.storage = s
	}
}

// WithStorageKey overrides DefaultStorageKey.
func WithStorageKey(key string) Option {
	return func(c *Cart) {
		if key != "" {
			c.key = key
		}
	}
}

// WithClock overrides time.Now for item timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Cart) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cart) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates an empty cart.
func New(opts ...Option) *Cart {
	c := &Cart{
		key:    DefaultStorageKey,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(logger.Component("cart"))

	storeOpts := []store.Option[State, Action]{
		store.WithLogger[State, Action](c.logger),
		store.WithHook[State, Action](c.logChange),
	}
	if c.storage != nil {
		storeOpts = append(storeOpts, store.WithPersistence(c.storage, c.key,
			func(s State) any { return s.Items },
			func(a Action) bool { return a.Type == ActionLoad },
		))
	}
	c.store = store.New(Empty(), Reduce, storeOpts...)
	return c
}

func (c *Cart) logChange(ctx context.Context, a Action, s State) {
	c.logger.LogAttrs(ctx, slog.LevelDebug, "cart changed",
		logger.Event(string(a.Type)),
		logger.ProductID(a.ProductID),
		slog.Int("total_quantity", s.TotalQuantity),
	)
}

// Hydrate restores the persisted cart once. Missing or corrupt data leaves
// the cart empty.
func (c *Cart) Hydrate(ctx context.Context) State {
	if c.storage == nil {
		return c.State()
	}
	var items []Item
	if !store.Hydrate(ctx, c.storage, c.key, &items, c.logger) {
		return c.State()
	}
	return c.store.Dispatch(ctx, Load(items))
}

// Add puts quantity units of p in the cart; quantity below one counts as one.
func (c *Cart) Add(ctx context.Context, p product.Product, quantity int) State {
	return c.store.Dispatch(ctx, Add(p, quantity, c.now()))
}

// Remove drops the line for productID. Unknown ids are a no-op.
func (c *Cart) Remove(ctx context.Context, productID string) State {
	return c.store.Dispatch(ctx, Remove(productID))
}

// Toggle adds one unit of p or removes its line. It reports true for an add
// and false for a removal, decided in the same locked step that applies it.
// After Close nothing changes and a warning is logged; the result still
// reports which way the toggle would have gone.
func (c *Cart) Toggle(ctx context.Context, p product.Product) bool {
	prev, _, applied := c.store.Transition(ctx, Toggle(p, c.now()))
	if !applied {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "toggle on closed cart ignored", logger.ProductID(p.ID))
	}
	return index(prev.Items, p.ID) < 0
}

// UpdateQuantity sets the units of an existing line; zero or less removes it.
func (c *Cart) UpdateQuantity(ctx context.Context, productID string, quantity int) State {
	return c.store.Dispatch(ctx, UpdateQuantity(productID, quantity))
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) State {
	return c.store.Dispatch(ctx, Clear())
}

// Contains reports whether productID has a line in the cart.
func (c *Cart) Contains(productID string) bool {
	return index(c.State().Items, productID) >= 0
}

// Quantity returns the units of productID in the cart, zero when absent.
func (c *Cart) Quantity(productID string) int {
	s := c.State()
	if i := index(s.Items, productID); i >= 0 {
		return s.Items[i].Quantity
	}
	return 0
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []Item {
	return slices.Clone(c.State().Items)
}

// State returns the current cart state.
func (c *Cart) State() State {
	return c.store.State()
}

// Subtotal renders the cart subtotal in currency.
func (c *Cart) Subtotal(currency string) string {
	return product.FormatPrice(c.State().Subtotal, currency)
}

// Subscribe calls fn after every change.
func (c *Cart) Subscribe(fn func(State)) (unsubscribe func()) {
	return c.store.Subscribe(fn)
}

// Close stops persistence; later changes are ignored.
func (c *Cart) Close() error {
	return c.store.Close()
}
