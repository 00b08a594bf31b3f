// Package store is a small generic reducer store.
//
// State transitions live in a pure Reducer, so they can be unit tested
// without any storage. I/O is attached from the outside as hooks; the
// WithPersistence hook writes the state to a kvstore after every dispatch and
// Hydrate reads it back at startup.
//
//	s := store.New(State{}, Reduce,
//		store.WithPersistence(storage, "favorites", func(s State) any { return s.Items }, isLoad),
//	)
//	var items []Item
//	if store.Hydrate(ctx, storage, "favorites", &items, log) {
//		s.Dispatch(ctx, Load(items))
//	}
//
// Dispatches are serialized, so a reducer's "already exists" check and the
// following insert can never interleave with another dispatch.
package store
