// Package product defines the catalogue entry shared by the favorites and
// cart stores.
package product
