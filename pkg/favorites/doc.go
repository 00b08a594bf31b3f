// Package favorites keeps the user's favorite products.
//
// Transitions are expressed by the pure Reduce function (ADD, REMOVE, TOGGLE,
// CLEAR, LOAD) and wrapped by Favorites, which serializes dispatches and
// writes the item array to a kvstore after each of them. Adding a product
// twice never duplicates it, and two Toggle calls on the same product restore
// the previous collection.
package favorites
