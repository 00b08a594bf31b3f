package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/socialkit/pkg/kvstore"
	"github.com/dmitrymomot/socialkit/pkg/logger"
)

// WithPersistence writes select(state) as JSON under key after every
// dispatch, except for actions where skip returns true. Write failures are
// logged and never reach the caller.
func WithPersistence[S, A any](storage kvstore.Storage, key string, selector func(S) any, skip func(A) bool) Option[S, A] {
	return func(s *Store[S, A]) {
		s.hooks = append(s.hooks, func(ctx context.Context, action A, state S) {
			if skip != nil && skip(action) {
				return
			}
			if err := kvstore.SaveJSON(ctx, storage, key, selector(state)); err != nil {
				s.logger.LogAttrs(ctx, slog.LevelError, "failed to persist store",
					logger.StorageKey(key),
					logger.Error(err),
				)
			}
		})
	}
}

// Hydrate reads the JSON document under key into v. A missing document
// returns false silently; a corrupt or unreadable one is logged and also
// returns false, so callers keep their empty initial state.
func Hydrate(ctx context.Context, storage kvstore.Storage, key string, v any, log *slog.Logger) bool {
	err := kvstore.LoadJSON(ctx, storage, key, v)
	switch {
	case err == nil:
		return true
	case errors.Is(err, kvstore.ErrNotFound):
		return false
	default:
		if log == nil {
			log = slog.Default()
		}
		log.LogAttrs(ctx, slog.LevelError, "failed to load persisted store, starting empty",
			logger.StorageKey(key),
			logger.Error(err),
		)
		return false
	}
}
