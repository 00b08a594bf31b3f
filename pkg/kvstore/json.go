package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// LoadJSON decodes the document stored under key into v. It returns
// ErrNotFound when the key is absent and an error wrapping ErrCorrupt when the
// stored bytes are not valid JSON for v. After ErrCorrupt v may be partially
// filled and should be discarded.
func LoadJSON(ctx context.Context, s Storage, key string, v any) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return ErrNotFound
	}
	if !json.Valid(data) {
		return fmt.Errorf("%w: %q is not valid JSON", ErrCorrupt, key)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Join(fmt.Errorf("%w: %q", ErrCorrupt, key), err)
	}
	return nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, s Storage, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kvstore: encode %q: %w", key, err)
	}
	return s.Set(ctx, key, data)
}
