package cart

import (
	"slices"
	"strconv"
	"time"

	"github.com/dmitrymomot/socialkit/pkg/product"
)

// Item is a cart line. At most one Item exists per product id.
type Item struct {
	ID       string          `json:"id"`
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
	AddedAt  time.Time       `json:"addedAt"`
}

// Total is the line price.
func (it Item) Total() float64 {
	return it.Product.Price * float64(it.Quantity)
}

// State is the cart. Every field except Items is derived.
type State struct {
	Items         []Item  `json:"items"`
	TotalItems    int     `json:"totalItems"`
	TotalQuantity int     `json:"totalQuantity"`
	Subtotal      float64 `json:"subtotal"`
}

// ActionType names a reducer transition.
type ActionType string

const (
	ActionAdd            ActionType = "ADD"
	ActionRemove         ActionType = "REMOVE"
	ActionToggle         ActionType = "TOGGLE"
	ActionUpdateQuantity ActionType = "UPDATE_QUANTITY"
	ActionClear          ActionType = "CLEAR"
	ActionLoad           ActionType = "LOAD"
)

// Action is a reducer input.
type Action struct {
	Type      ActionType
	Product   product.Product
	ProductID string
	Quantity  int
	Items     []Item
	At        time.Time
}

// Add puts quantity units of p in the cart. A product already present gets
// its quantity increased instead of a second line.
func Add(p product.Product, quantity int, at time.Time) Action {
	return Action{Type: ActionAdd, Product: p, ProductID: p.ID, Quantity: quantity, At: at}
}

// Remove drops the line for productID.
func Remove(productID string) Action {
	return Action{Type: ActionRemove, ProductID: productID}
}

// Toggle adds one unit of p or removes its line.
func Toggle(p product.Product, at time.Time) Action {
	return Action{Type: ActionToggle, Product: p, ProductID: p.ID, Quantity: 1, At: at}
}

// UpdateQuantity sets the quantity of an existing line. Zero or less removes it.
func UpdateQuantity(productID string, quantity int) Action {
	return Action{Type: ActionUpdateQuantity, ProductID: productID, Quantity: quantity}
}

// Clear empties the cart.
func Clear() Action {
	return Action{Type: ActionClear}
}

// Load replaces the whole cart. Used for hydration only.
func Load(items []Item) Action {
	return Action{Type: ActionLoad, Items: items}
}

// Reduce is the pure cart transition function.
func Reduce(s State, a Action) State {
	switch a.Type {
	case ActionAdd:
		qty := max(a.Quantity, 1)
		if i := index(s.Items, a.ProductID); i >= 0 {
			items := slices.Clone(s.Items)
			items[i].Quantity += qty
			return derive(items)
		}
		return derive(append(slices.Clone(s.Items), newItem(a.Product, qty, a.At)))
	case ActionRemove:
		if index(s.Items, a.ProductID) < 0 {
			return s
		}
		return derive(without(s.Items, a.ProductID))
	case ActionToggle:
		if index(s.Items, a.ProductID) >= 0 {
			return derive(without(s.Items, a.ProductID))
		}
		return derive(append(slices.Clone(s.Items), newItem(a.Product, max(a.Quantity, 1), a.At)))
	case ActionUpdateQuantity:
		i := index(s.Items, a.ProductID)
		if i < 0 {
			return s
		}
		if a.Quantity <= 0 {
			return derive(without(s.Items, a.ProductID))
		}
		items := slices.Clone(s.Items)
		items[i].Quantity = a.Quantity
		return derive(items)
	case ActionClear:
		return derive(nil)
	case ActionLoad:
		return derive(normalize(a.Items))
	}
	return s
}

// Empty returns the initial state.
func Empty() State {
	return derive(nil)
}

func newItem(p product.Product, qty int, at time.Time) Item {
	return Item{
		ID:       p.ID + "-" + strconv.FormatInt(at.UnixMilli(), 10),
		Product:  p,
		Quantity: qty,
		AddedAt:  at,
	}
}

func index(items []Item, productID string) int {
	return slices.IndexFunc(items, func(it Item) bool { return it.Product.ID == productID })
}

func without(items []Item, productID string) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Product.ID != productID {
			out = append(out, it)
		}
	}
	return out
}

// normalize merges duplicate product lines and drops non-positive quantities.
func normalize(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		if i := index(out, it.Product.ID); i >= 0 {
			out[i].Quantity += it.Quantity
			continue
		}
		out = append(out, it)
	}
	return out
}

func derive(items []Item) State {
	if items == nil {
		items = []Item{}
	}
	s := State{Items: items, TotalItems: len(items)}
	var subtotal float64
	for _, it := range items {
		s.TotalQuantity += it.Quantity
		subtotal += it.Total()
	}
	s.Subtotal = product.RoundPrice(subtotal)
	return s
}
