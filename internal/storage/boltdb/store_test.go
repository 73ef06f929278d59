package boltdb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/lily-0015/hotel-reservation-system/internal/storage/boltdb"
)

func openTestDB(t *testing.T) *boltdb.DB {
	t.Helper()
	db, err := boltdb.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBucketKV_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	kv, err := db.Collection("rooms")
	if err != nil {
		t.Fatalf("collection: %v", err)
	}

	if empty, err := kv.Empty(ctx); err != nil || !empty {
		t.Fatalf("fresh bucket: empty=%v err=%v", empty, err)
	}
	if _, ok, err := kv.Get(ctx, "r1"); err != nil || ok {
		t.Fatalf("get missing: ok=%v err=%v", ok, err)
	}

	if err := kv.Put(ctx, "r1", []byte(`{"id":"r1"}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	v, ok, err := kv.Get(ctx, "r1")
	if err != nil || !ok || string(v) != `{"id":"r1"}` {
		t.Fatalf("get: %q ok=%v err=%v", v, ok, err)
	}
	if empty, _ := kv.Empty(ctx); empty {
		t.Fatal("bucket should not be empty after put")
	}

	if err := kv.Put(ctx, "r2", []byte(`{"id":"r2"}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	all, err := kv.List(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("list: %d err=%v", len(all), err)
	}

	if err := kv.Delete(ctx, "r1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "r1"); ok {
		t.Fatal("r1 should be gone")
	}
	// Deleting a missing key is a no-op.
	if err := kv.Delete(ctx, "r1"); err != nil {
		t.Fatalf("double delete: %v", err)
	}
}

func TestCollections_AreIsolated(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	rooms, err := db.Collection("rooms")
	if err != nil {
		t.Fatalf("collection: %v", err)
	}
	payments, err := db.Collection("payments")
	if err != nil {
		t.Fatalf("collection: %v", err)
	}

	if err := rooms.Put(ctx, "x", []byte("room")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok, _ := payments.Get(ctx, "x"); ok {
		t.Fatal("key leaked across collections")
	}
	if empty, _ := payments.Empty(ctx); !empty {
		t.Fatal("payments should be empty")
	}
}
