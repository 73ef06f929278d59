package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "github.com/lily-0015/hotel-reservation-system/internal/adapters/redis"
	"github.com/lily-0015/hotel-reservation-system/internal/domain"
)

func newTestCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return redisad.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()})), mr
}

func TestCache_MissSetHitDel(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var got []domain.Room
	if ok, err := c.Get(ctx, "rooms:available", &got); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}

	rooms := []domain.Room{{ID: "r1", RoomNumber: "101", Price: "50"}}
	if err := c.Set(ctx, "rooms:available", rooms, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	if ok, err := c.Get(ctx, "rooms:available", &got); err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].ID != "r1" || got[0].RoomNumber != "101" {
		t.Fatalf("unexpected cached value: %+v", got)
	}

	if err := c.Del(ctx, "rooms:available"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := c.Get(ctx, "rooms:available", &got); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestCache_SetAppliesTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []domain.Room{}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("k"); ttl <= 0 {
		t.Fatalf("expected a positive TTL, got %v", ttl)
	}
}
