package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/lily-0015/hotel-reservation-system/internal/domain"
	"github.com/lily-0015/hotel-reservation-system/internal/storage"
)

// availableRoomsKey is the single cache entry for the availability read
// path; every room mutation evicts it.
const availableRoomsKey = "rooms:available"

type RoomPayload struct {
	RoomNumber string
	Price      string
}

// RoomCatalog holds the rooms and the booking-state flag that drives
// availability.
type RoomCatalog struct {
	mu          *sync.Mutex
	rooms       *storage.Collection[domain.Room]
	registry    *Registry
	cache       domain.Cache
	cacheTTL    time.Duration
	defaultName string
	now         func() time.Time

	group singleflight.Group
}

// ListAvailable returns every room not currently booked. An empty result
// is a distinguished outcome (ErrNoneAvailable), not an empty list.
// Concurrent cache misses are collapsed into one storage read.
func (c *RoomCatalog) ListAvailable(ctx context.Context) ([]domain.Room, error) {
	if c.cache != nil {
		var cached []domain.Room
		if ok, _ := c.cache.Get(ctx, availableRoomsKey, &cached); ok {
			return cached, nil
		}
	}

	v, err, _ := c.group.Do(availableRoomsKey, func() (any, error) {
		rooms, err := c.rooms.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("rooms: %w", err)
		}
		available := make([]domain.Room, 0, len(rooms))
		for _, r := range rooms {
			if !r.IsBooked {
				available = append(available, r)
			}
		}
		if len(available) == 0 {
			return nil, domain.ErrNoneAvailable
		}
		if c.cache != nil {
			_ = c.cache.Set(ctx, availableRoomsKey, available, int(c.cacheTTL.Seconds()))
		}
		return available, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Room), nil
}

// Add creates a room for the hotel owner. If no hotel has been
// initialized yet, the registry is initialized with the default name and
// the caller becomes the owner (the original system's convenience path).
func (c *RoomCatalog) Add(ctx context.Context, caller domain.Caller, p RoomPayload) (string, error) {
	if err := validateRoomPayload(p); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ok, err := c.registry.initialized(ctx)
	if err != nil {
		return "", fmt.Errorf("rooms: %w", err)
	}
	if !ok {
		if _, err := c.registry.init(ctx, caller, c.defaultName); err != nil {
			return "", err
		}
	}
	if err := c.requireOwner(ctx, caller); err != nil {
		return "", err
	}

	room := domain.Room{
		ID:          uuid.NewString(),
		RoomNumber:  p.RoomNumber,
		IsBooked:    false,
		Price:       p.Price,
		CreatedDate: c.now(),
	}
	if err := c.rooms.Put(ctx, room.ID, room); err != nil {
		return "", fmt.Errorf("rooms: %w", err)
	}
	c.invalidate(ctx)
	return room.ID, nil
}

// Update overwrites a room's number and price. Unknown ids surface
// ErrNotFound; the original ignored them silently.
func (c *RoomCatalog) Update(ctx context.Context, caller domain.Caller, id string, p RoomPayload) (string, error) {
	if err := validateRoomPayload(p); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireOwner(ctx, caller); err != nil {
		return "", err
	}
	room, ok, err := c.rooms.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("rooms: %w", err)
	}
	if !ok {
		return "", domain.ErrNotFound
	}
	room.RoomNumber = p.RoomNumber
	room.Price = p.Price
	now := c.now()
	room.UpdatedAt = &now
	if err := c.rooms.Put(ctx, room.ID, room); err != nil {
		return "", fmt.Errorf("rooms: %w", err)
	}
	c.invalidate(ctx)
	return room.ID, nil
}

// Delete removes a room unconditionally; outstanding reservations keep
// their (now dangling) room_id, as in the original design.
func (c *RoomCatalog) Delete(ctx context.Context, caller domain.Caller, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireOwner(ctx, caller); err != nil {
		return err
	}
	_, ok, err := c.rooms.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("rooms: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	if err := c.rooms.Delete(ctx, id); err != nil {
		return fmt.Errorf("rooms: %w", err)
	}
	c.invalidate(ctx)
	return nil
}

// setBooked flips the booking flag for the reservation and payment
// flows. Callers must hold the mutation lock.
func (c *RoomCatalog) setBooked(ctx context.Context, id string, booked bool) error {
	room, ok, err := c.rooms.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("rooms: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	room.IsBooked = booked
	now := c.now()
	room.UpdatedAt = &now
	if err := c.rooms.Put(ctx, room.ID, room); err != nil {
		return fmt.Errorf("rooms: %w", err)
	}
	c.invalidate(ctx)
	return nil
}

func (c *RoomCatalog) get(ctx context.Context, id string) (domain.Room, bool, error) {
	return c.rooms.Get(ctx, id)
}

func (c *RoomCatalog) requireOwner(ctx context.Context, caller domain.Caller) error {
	ok, err := c.registry.IsOwner(ctx, caller)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotAuthorized
	}
	return nil
}

func (c *RoomCatalog) invalidate(ctx context.Context) {
	if c.cache != nil {
		_ = c.cache.Del(ctx, availableRoomsKey)
	}
}

func validateRoomPayload(p RoomPayload) error {
	if p.RoomNumber == "" {
		return fmt.Errorf("%w: room_number is required", domain.ErrInvalidPayload)
	}
	if _, err := decimal.NewFromString(p.Price); err != nil {
		return fmt.Errorf("%w: price must be decimal text", domain.ErrInvalidPayload)
	}
	return nil
}
