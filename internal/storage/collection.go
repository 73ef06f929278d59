// Package storage wraps the raw keyed-value port with typed, JSON-encoded
// collections. Backends (boltdb, mysql) only move bytes; this layer owns
// the record encoding.
package storage

import (
	"context"
	"encoding/json"

	"github.com/lily-0015/hotel-reservation-system/internal/domain"
)

type Collection[T any] struct {
	kv domain.KV
}

func NewCollection[T any](kv domain.KV) *Collection[T] {
	return &Collection[T]{kv: kv}
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var v T
	b, ok, err := c.kv.Get(ctx, id)
	if err != nil || !ok {
		return v, false, err
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, false, err
	}
	return v, true, nil
}

func (c *Collection[T]) Put(ctx context.Context, id string, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.kv.Put(ctx, id, b)
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.kv.Delete(ctx, id)
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	raw, err := c.kv.List(ctx)
	if err != nil {
		return nil, err
	}
	// Empty slice rather than nil so JSON responses encode [] instead of null.
	out := make([]T, 0, len(raw))
	for _, b := range raw {
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Collection[T]) Empty(ctx context.Context) (bool, error) {
	return c.kv.Empty(ctx)
}
