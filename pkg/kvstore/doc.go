// Package kvstore is the durable local storage behind settings, favorites and
// the cart. It offers one small Storage interface with three backends:
//
//   - FileStorage: one JSON file per key in a directory, atomic replace on write.
//   - MemoryStorage: process memory, for tests and throwaway sessions.
//   - RedisStorage: go-redis strings under a prefix, for shared profiles.
//
// LoadJSON and SaveJSON handle encoding. LoadJSON separates "nothing saved
// yet" (ErrNotFound) from "saved but unreadable" (ErrCorrupt) so callers can
// fall back to defaults and log only the latter.
package kvstore
