package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lily-0015/hotel-reservation-system/internal/domain"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store { return &Store{db: db} }

// Migrate creates the records table when missing.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, SchemaSQL)
	return err
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Collection(name string) (domain.KV, error) {
	if name == "" {
		return nil, errors.New("mysql: empty collection name")
	}
	return &tableKV{db: s.db, col: name}, nil
}

type tableKV struct {
	db  *sql.DB
	col string
}

func (t *tableKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc []byte
	err := t.db.QueryRowContext(ctx, getSQL, t.col, key).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

func (t *tableKV) Put(ctx context.Context, key string, val []byte) error {
	_, err := t.db.ExecContext(ctx, putSQL, t.col, key, string(val))
	return err
}

func (t *tableKV) Delete(ctx context.Context, key string) error {
	_, err := t.db.ExecContext(ctx, deleteSQL, t.col, key)
	return err
}

func (t *tableKV) List(ctx context.Context) ([][]byte, error) {
	rows, err := t.db.QueryContext(ctx, listSQL, t.col)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (t *tableKV) Empty(ctx context.Context) (bool, error) {
	var exists bool
	if err := t.db.QueryRowContext(ctx, existsSQL, t.col).Scan(&exists); err != nil {
		return false, err
	}
	return !exists, nil
}
