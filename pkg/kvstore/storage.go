package kvstore

import (
	"context"
)

// Storage is a durable key-value store for small JSON documents such as
// notification settings, favorites and the cart.
type Storage interface {
	// Get returns the stored bytes or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}
