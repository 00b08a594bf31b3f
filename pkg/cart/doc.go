// Package cart implements the shopping cart as a reducer store with the same
// identity rules as favorites: one line per product id. Adding a product that
// is already in the cart merges quantities, Toggle is reversible, and the
// item array is written to a kvstore after every change.
package cart
