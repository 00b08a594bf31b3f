package favorites

import (
	"slices"
	"strconv"
	"time"

	"github.com/dmitrymomot/socialkit/pkg/product"
)

// Item is one favorited product. At most one Item exists per product id.
type Item struct {
	ID       string          `json:"id"`
	Product  product.Product `json:"product"`
	AddedAt  time.Time       `json:"addedAt"`
	Category string          `json:"category,omitempty"`
	Tags     []string        `json:"tags,omitempty"`
}

// State is the favorites collection. TotalItems and Categories are derived
// from Items on every transition.
type State struct {
	Items      []Item   `json:"items"`
	TotalItems int      `json:"totalItems"`
	Categories []string `json:"categories"`
}

// ActionType names a reducer transition.
type ActionType string

const (
	ActionAdd    ActionType = "ADD"
	ActionRemove ActionType = "REMOVE"
	ActionToggle ActionType = "TOGGLE"
	ActionClear  ActionType = "CLEAR"
	ActionLoad   ActionType = "LOAD"
)

// Action is a reducer input. At is the timestamp used for new items, so the
// reducer stays deterministic.
type Action struct {
	Type      ActionType
	Product   product.Product
	ProductID string
	Items     []Item
	At        time.Time
}

// Add favorites p at the given time.
func Add(p product.Product, at time.Time) Action {
	return Action{Type: ActionAdd, Product: p, ProductID: p.ID, At: at}
}

// Remove drops productID.
func Remove(productID string) Action {
	return Action{Type: ActionRemove, ProductID: productID}
}

// Toggle adds p when absent and removes it when present.
func Toggle(p product.Product, at time.Time) Action {
	return Action{Type: ActionToggle, Product: p, ProductID: p.ID, At: at}
}

// Clear empties the collection.
func Clear() Action {
	return Action{Type: ActionClear}
}

// Load replaces the whole collection. Used for hydration only.
func Load(items []Item) Action {
	return Action{Type: ActionLoad, Items: items}
}

// Reduce is the pure favorites transition function.
func Reduce(s State, a Action) State {
	switch a.Type {
	case ActionAdd:
		if contains(s.Items, a.ProductID) {
			return s
		}
		return derive(appendItem(s.Items, newItem(a.Product, a.At)))
	case ActionRemove:
		if !contains(s.Items, a.ProductID) {
			return s
		}
		return derive(without(s.Items, a.ProductID))
	case ActionToggle:
		if contains(s.Items, a.ProductID) {
			return derive(without(s.Items, a.ProductID))
		}
		return derive(appendItem(s.Items, newItem(a.Product, a.At)))
	case ActionClear:
		return derive(nil)
	case ActionLoad:
		return derive(dedupe(a.Items))
	}
	return s
}

// ItemID builds the composite id of a favorite: product id plus the
// millisecond timestamp it was added at.
func ItemID(productID string, at time.Time) string {
	return productID + "-" + strconv.FormatInt(at.UnixMilli(), 10)
}

func newItem(p product.Product, at time.Time) Item {
	return Item{
		ID:       ItemID(p.ID, at),
		Product:  p,
		AddedAt:  at,
		Category: p.Category,
		Tags:     slices.Clone(p.Tags),
	}
}

func contains(items []Item, productID string) bool {
	return slices.ContainsFunc(items, func(it Item) bool { return it.Product.ID == productID })
}

func appendItem(items []Item, it Item) []Item {
	out := make([]Item, 0, len(items)+1)
	out = append(out, items...)
	return append(out, it)
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

// dedupe keeps the first item per product id.
func dedupe(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if !contains(out, it.Product.ID) {
			out = append(out, it)
		}
	}
	return out
}

func derive(items []Item) State {
	if items == nil {
		items = []Item{}
	}
	categories := make([]string, 0)
	for _, it := range items {
		if it.Category != "" && !slices.Contains(categories, it.Category) {
			categories = append(categories, it.Category)
		}
	}
	slices.Sort(categories)
	return State{Items: items, TotalItems: len(items), Categories: categories}
}

// Empty returns the initial state.
func Empty() State {
	return derive(nil)
}
