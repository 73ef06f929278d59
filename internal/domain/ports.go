package domain

import "context"

// KV is the durable keyed-storage contract a backend provides per named
// collection. Values are opaque encoded records; List order is
// unspecified.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, val []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([][]byte, error)
	Empty(ctx context.Context) (bool, error)
}

// Backend opens per-collection KV stores. Collection is idempotent for a
// given name.
type Backend interface {
	Collection(name string) (KV, error)
	Close() error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Collection names shared by every storage backend.
const (
	ColHotel        = "hotel"
	ColRooms        = "rooms"
	ColReservations = "reservations"
	ColPayments     = "payments"
)
