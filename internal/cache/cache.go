// Package cache persists small JSON values between runs. Every failure is
// logged and swallowed: a broken store never stops the viewer.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// StorageError reports a failed cache operation.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("cache %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Cache serializes values to JSON on top of a Backend.
type Cache struct {
	backend Backend
	logf    func(format string, args ...any)
}

// New wraps backend.
func New(backend Backend) *Cache {
	return &Cache{backend: backend, logf: log.Printf}
}

// Options selects and configures a backend.
type Options struct {
	Backend   string
	Path      string
	RedisAddr string
	RedisDB   int
	Prefix    string
}

// Open builds a Cache from opts.
func Open(opts Options) (*Cache, error) {
	switch opts.Backend {
	case "", BackendSQLite:
		s, err := NewSQLite(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite cache: %w", err)
		}
		return New(s), nil
	case BackendRedis:
		return New(DialRedis(opts.RedisAddr, opts.RedisDB, opts.Prefix)), nil
	case BackendMemory:
		return New(NewMemory()), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}

// Backend returns the underlying store.
func (c *Cache) Backend() Backend { return c.backend }

// Close releases the backend.
func (c *Cache) Close() error { return c.backend.Close() }

func (c *Cache) report(err *StorageError) {
	c.logf("%v", err)
}

// Save serializes value and stores it under key.
func (c *Cache) Save(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.report(&StorageError{Op: "save", Key: key, Err: err})
		return
	}
	if err := c.backend.Set(ctx, key, string(data)); err != nil {
		c.report(&StorageError{Op: "save", Key: key, Err: err})
	}
}

// Raw returns the stored text under key.
func (c *Cache) Raw(ctx context.Context, key string) (string, bool) {
	v, err := c.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.report(&StorageError{Op: "load", Key: key, Err: err})
		}
		return "", false
	}
	return v, true
}

// Load returns the value stored under key, or def when the key is absent
// or its value cannot be decoded into T.
func Load[T any](ctx context.Context, c *Cache, key string, def T) T {
	raw, ok := c.Raw(ctx, key)
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		c.report(&StorageError{Op: "load", Key: key, Err: err})
		return def
	}
	return v
}

// Remove deletes key.
func (c *Cache) Remove(ctx context.Context, key string) {
	if err := c.backend.Delete(ctx, key); err != nil {
		c.report(&StorageError{Op: "remove", Key: key, Err: err})
	}
}
