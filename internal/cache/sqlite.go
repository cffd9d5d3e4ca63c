package cache

import (
	"context"
	"errors"

	"github.com/ziadkadry99/schedview/internal/db"
)

// SQLite stores values in the kv_cache table.
type SQLite struct {
	db *db.DB
}

// NewSQLite opens (or creates) the database file at path.
func NewSQLite(path string) (*SQLite, error) {
	d, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	return &SQLite{db: d}, nil
}

// NewSQLiteFromDB wraps an already open database.
func NewSQLiteFromDB(d *db.DB) *SQLite {
	return &SQLite{db: d}
}

// DB exposes the underlying database for other stores sharing the file.
func (s *SQLite) DB() *db.DB { return s.db }

func (s *SQLite) Get(ctx context.Context, key string) (string, error) {
	v, err := s.db.Get(ctx, key)
	if errors.Is(err, db.ErrNotFound) {
		return "", ErrMiss
	}
	return v, err
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	return s.db.Put(ctx, key, value)
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	return s.db.Delete(ctx, key)
}

func (s *SQLite) Close() error { return s.db.Close() }
