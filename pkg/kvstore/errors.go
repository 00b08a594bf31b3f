package kvstore

import "errors"

var (
	// ErrNotFound is returned when a key has no stored value.
	ErrNotFound = errors.New("kvstore: key not found")

	// ErrCorrupt is returned when a stored document cannot be decoded.
	ErrCorrupt = errors.New("kvstore: stored value is corrupt")

	// ErrEmptyKey is returned for operations with an empty key.
	ErrEmptyKey = errors.New("kvstore: empty key")

	// ErrRedisNotReady is returned when Redis does not answer within the retry budget.
	ErrRedisNotReady = errors.New("kvstore: redis did not become ready within the given time period")

	// ErrInvalidRedisURL is returned when the Redis connection URL cannot be parsed.
	ErrInvalidRedisURL = errors.New("kvstore: failed to parse redis connection string")
)
