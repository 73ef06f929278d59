package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/lily-0015/hotel-reservation-system/internal/app"
	"github.com/lily-0015/hotel-reservation-system/internal/domain"
)

// ---- fakes ----

type memKV struct {
	mu sync.RWMutex
	m  map[string][]byte
}

func (s *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *memKV) Put(_ context.Context, key string, val []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = append([]byte(nil), val...)
	return nil
}

func (s *memKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

func (s *memKV) List(_ context.Context) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([][]byte, 0, len(s.m))
	for _, v := range s.m {
		out = append(out, v)
	}
	return out, nil
}

func (s *memKV) Empty(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m) == 0, nil
}

type memBackend struct{ cols map[string]*memKV }

func newMemBackend() *memBackend { return &memBackend{cols: map[string]*memKV{}} }

func (b *memBackend) Collection(name string) (domain.KV, error) {
	if c, ok := b.cols[name]; ok {
		return c, nil
	}
	c := &memKV{m: map[string][]byte{}}
	b.cols[name] = c
	return c, nil
}

func (b *memBackend) Close() error { return nil }

type fakeCache struct {
	mu    sync.Mutex
	store map[string][]domain.Room
	sets  int
	dels  int
}

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok := dst.(*[]domain.Room); ok {
		*d = v
		return true, nil
	}
	return false, nil
}

func (c *fakeCache) Set(_ context.Context, key string, v any, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]domain.Room{}
	}
	c.store[key] = v.([]domain.Room)
	c.sets++
	return nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.dels++
	return nil
}

func newServices(t *testing.T) (*app.Services, app.Stores) {
	t.Helper()
	st, err := app.NewStores(newMemBackend())
	if err != nil {
		t.Fatalf("stores: %v", err)
	}
	return app.NewServices(st, nil, 0, "Luxury Hotel"), st
}

const (
	ownerA = domain.Caller("principal-a")
	guestB = domain.Caller("principal-b")
)

// ---- tests ----

func TestInitHotel_OnlyOnce(t *testing.T) {
	svcs, _ := newServices(t)
	ctx := context.Background()

	id, err := svcs.Registry.Init(ctx, ownerA, "Test Hotel")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if id == "" {
		t.Fatal("expected a hotel id")
	}

	if _, err := svcs.Registry.Init(ctx, guestB, "Another Hotel"); !errors.Is(err, domain.ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}

	ok, err := svcs.Registry.IsOwner(ctx, ownerA)
	if err != nil || !ok {
		t.Fatalf("IsOwner(A) = %v, %v; want true", ok, err)
	}
	ok, err = svcs.Registry.IsOwner(ctx, guestB)
	if err != nil || ok {
		t.Fatalf("IsOwner(B) = %v, %v; want false", ok, err)
	}
}

func TestAddRoom_StartsAvailable(t *testing.T) {
	svcs, _ := newServices(t)
	ctx := context.Background()

	if _, err := svcs.Registry.Init(ctx, ownerA, "Test Hotel"); err != nil {
		t.Fatalf("init: %v", err)
	}
	id, err := svcs.Rooms.Add(ctx, ownerA, app.RoomPayload{RoomNumber: "101", Price: "50"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	rooms, err := svcs.Rooms.ListAvailable(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rooms) != 1 || rooms[0].ID != id {
		t.Fatalf("expected exactly the new room, got %+v", rooms)
	}
	if rooms[0].IsBooked {
		t.Fatal("new room must not be booked")
	}
}

func TestAddRoom_AutoInitMakesCallerOwner(t *testing.T) {
	svcs, _ := newServices(t)
	ctx := context.Background()

	// No explicit init: the registry bootstraps with the default name and
	// the first caller becomes the owner.
	if _, err := svcs.Rooms.Add(ctx, ownerA, app.RoomPayload{RoomNumber: "101", Price: "50"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if ok, _ := svcs.Registry.IsOwner(ctx, ownerA); !ok {
		t.Fatal("auto-init should make the caller the owner")
	}
	if _, err := svcs.Rooms.Add(ctx, guestB, app.RoomPayload{RoomNumber: "102", Price: "60"}); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for non-owner, got %v", err)
	}
}

func TestRoomMutations_RequireOwner(t *testing.T) {
	svcs, _ := newServices(t)
	ctx := context.Background()

	if _, err := svcs.Registry.Init(ctx, ownerA, "Test Hotel"); err != nil {
		t.Fatalf("init: %v", err)
	}
	id, err := svcs.Rooms.Add(ctx, ownerA, app.RoomPayload{RoomNumber: "101", Price: "50"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := svcs.Rooms.Update(ctx, guestB, id, app.RoomPayload{RoomNumber: "999", Price: "1"}); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("update as non-owner: got %v", err)
	}
	if err := svcs.Rooms.Delete(ctx, guestB, id); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("delete as non-owner: got %v", err)
	}

	// Catalog unchanged after the rejected mutations.
	rooms, err := svcs.Rooms.ListAvailable(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rooms) != 1 || rooms[0].RoomNumber != "101" || rooms[0].Price != "50" {
		t.Fatalf("catalog changed by unauthorized caller: %+v", rooms)
	}
}

func TestUpdateRoom_SurfacesUnknownID(t *testing.T) {
	svcs, _ := newServices(t)
	ctx := context.Background()

	if _, err := svcs.Registry.Init(ctx, ownerA, "Test Hotel"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := svcs.Rooms.Update(ctx, ownerA, "no-such-room", app.RoomPayload{RoomNumber: "1", Price: "1"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateRoom_OverwritesNumberAndPrice(t *testing.T) {
	svcs, _ := newServices(t)
	ctx := context.Background()

	if _, err := svcs.Registry.Init(ctx, ownerA, "Test Hotel"); err != nil {
		t.Fatalf("init: %v", err)
	}
	id, err := svcs.Rooms.Add(ctx, ownerA, app.RoomPayload{RoomNumber: "101", Price: "50"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svcs.Rooms.Update(ctx, ownerA, id, app.RoomPayload{RoomNumber: "201", Price: "75.50"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	rooms, err := svcs.Rooms.ListAvailable(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if rooms[0].RoomNumber != "201" || rooms[0].Price != "75.50" {
		t.Fatalf("update not applied: %+v", rooms[0])
	}
	if rooms[0].UpdatedAt == nil {
		t.Fatal("updated_at should be set after an update")
	}
}

func TestDeleteRoom_EmptyCatalogIsDistinguished(t *testing.T) {
	svcs, _ := newServices(t)
	ctx := context.Background()

	if _, err := svcs.Registry.Init(ctx, ownerA, "Test Hotel"); err != nil {
		t.Fatalf("init: %v", err)
	}
	id, err := svcs.Rooms.Add(ctx, ownerA, app.RoomPayload{RoomNumber: "101", Price: "50"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svcs.Rooms.Delete(ctx, ownerA, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svcs.Rooms.Delete(ctx, ownerA, id); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("double delete: expected ErrNotFound, got %v", err)
	}
	if _, err := svcs.Rooms.ListAvailable(ctx); !errors.Is(err, domain.ErrNoneAvailable) {
		t.Fatalf("expected ErrNoneAvailable on empty catalog, got %v", err)
	}
}

func TestAddRoom_RejectsBadPayload(t *testing.T) {
	svcs, _ := newServices(t)
	ctx := context.Background()

	if _, err := svcs.Rooms.Add(ctx, ownerA, app.RoomPayload{RoomNumber: "", Price: "50"}); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("missing number: got %v", err)
	}
	if _, err := svcs.Rooms.Add(ctx, ownerA, app.RoomPayload{RoomNumber: "101", Price: "fifty"}); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("non-decimal price: got %v", err)
	}
}

func TestListAvailable_CachePopulationAndInvalidation(t *testing.T) {
	st, err := app.NewStores(newMemBackend())
	if err != nil {
		t.Fatalf("stores: %v", err)
	}
	cache := &fakeCache{}
	svcs := app.NewServices(st, cache, 0, "Luxury Hotel")
	ctx := context.Background()

	if _, err := svcs.Rooms.Add(ctx, ownerA, app.RoomPayload{RoomNumber: "101", Price: "50"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := svcs.Rooms.ListAvailable(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache fill, got %d", cache.sets)
	}

	// Second read is served from cache; no new fill.
	if _, err := svcs.Rooms.ListAvailable(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected cached read, got %d fills", cache.sets)
	}

	// Any room mutation evicts.
	dels := cache.dels
	if _, err := svcs.Rooms.Add(ctx, ownerA, app.RoomPayload{RoomNumber: "102", Price: "60"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if cache.dels <= dels {
		t.Fatal("expected cache eviction after room mutation")
	}
}
