// Package boltdb provides the embedded BoltDB storage backend. All data
// lives in a single file, one bucket per collection, which keeps the
// default deployment free of any external database process.
package boltdb

import (
	"context"
	"time"

	bolt "github.com/boltdb/bolt"

	"github.com/lily-0015/hotel-reservation-system/internal/domain"
)

type DB struct {
	db *bolt.DB
}

// Open opens (or creates) the database file at path.
func Open(path string) (*DB, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error { return d.db.Close() }

// Collection ensures the named bucket exists and returns a KV over it.
func (d *DB) Collection(name string) (domain.KV, error) {
	err := d.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(name))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &bucketKV{db: d.db, bucket: []byte(name)}, nil
}

type bucketKV struct {
	db     *bolt.DB
	bucket []byte
}

func (s *bucketKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		out = append([]byte(nil), v...) // bolt memory is only valid inside the tx
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, out != nil, nil
}

func (s *bucketKV) Put(ctx context.Context, key string, val []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), val)
	})
}

func (s *bucketKV) Delete(ctx context.Context, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
}

func (s *bucketKV) List(ctx context.Context) ([][]byte, error) {
	var out [][]byte
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, v []byte) error {
			out = append(out, append([]byte(nil), v...))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *bucketKV) Empty(ctx context.Context) (bool, error) {
	empty := true
	err := s.db.View(func(tx *bolt.Tx) error {
		k, _ := tx.Bucket(s.bucket).Cursor().First()
		empty = k == nil
		return nil
	})
	return empty, err
}
