// Package cache provides the key-value capability behind every TTL cache of
// the widget, and the TTL cache itself.
package cache

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Get when a key is absent.
var ErrNotFound = errors.New("cache: key not found")

// Store is a persistent key-value store. Writers may race on a key; the last
// write wins.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every key starting with prefix and returns how
	// many were removed.
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}
