package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Entry is the persisted form of a cached value. Timestamp is the capture
// time in Unix milliseconds.
type Entry[T any] struct {
	Data      T     `json:"data"`
	Timestamp int64 `json:"timestamp"`
}

// TTLCache stores values of type T under "<namespace>_<key>" and treats them
// as valid for ttl after capture. Stale entries are not evicted; a stale read
// is a miss and the caller's next Set overwrites the entry.
//
// Store failures are logged and swallowed: a cache that cannot be read
// behaves like an empty cache.
type TTLCache[T any] struct {
	store     Store
	namespace string
	ttl       time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

// NewTTLCache creates a TTLCache. A nil clock defaults to time.Now and a
// nil logger to a no-op logger.
func NewTTLCache[T any](store Store, namespace string, ttl time.Duration, clock func() time.Time, logger *zap.Logger) *TTLCache[T] {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TTLCache[T]{
		store:     store,
		namespace: namespace,
		ttl:       ttl,
		now:       clock,
		logger:    logger,
	}
}

// Key returns the store key for k.
func (c *TTLCache[T]) Key(k string) string {
	return c.namespace + "_" + k
}

// TTL returns the freshness window.
func (c *TTLCache[T]) TTL() time.Duration {
	return c.ttl
}

// Get returns the cached value for k if it was captured within the TTL.
func (c *TTLCache[T]) Get(ctx context.Context, k string) (T, bool) {
	var zero T

	raw, err := c.store.Get(ctx, c.Key(k))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("cache read failed", zap.String("key", c.Key(k)), zap.Error(err))
		}
		return zero, false
	}

	var e Entry[T]
	if err := json.Unmarshal(raw, &e); err != nil {
		c.logger.Warn("cache entry corrupt", zap.String("key", c.Key(k)), zap.Error(err))
		return zero, false
	}

	age := c.now().Sub(time.UnixMilli(e.Timestamp))
	if age > c.ttl {
		return zero, false
	}

	c.logger.Debug("cache hit", zap.String("key", c.Key(k)), zap.Duration("age", age))
	return e.Data, true
}

// Set captures v under k with the current time. Failures are logged and
// returned; callers that treat the cache as best effort may ignore them.
func (c *TTLCache[T]) Set(ctx context.Context, k string, v T) error {
	raw, err := json.Marshal(Entry[T]{Data: v, Timestamp: c.now().UnixMilli()})
	if err != nil {
		c.logger.Warn("cache encode failed", zap.String("key", c.Key(k)), zap.Error(err))
		return fmt.Errorf("encode cache entry %s: %w", c.Key(k), err)
	}
	if err := c.store.Set(ctx, c.Key(k), raw); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", c.Key(k)), zap.Error(err))
		return fmt.Errorf("write cache entry %s: %w", c.Key(k), err)
	}
	return nil
}

// Delete removes the entry for k.
func (c *TTLCache[T]) Delete(ctx context.Context, k string) error {
	return c.store.Delete(ctx, c.Key(k))
}

// InvalidatePrefix removes every entry whose key starts with keyPrefix.
func (c *TTLCache[T]) InvalidatePrefix(ctx context.Context, keyPrefix string) (int, error) {
	return c.store.DeletePrefix(ctx, c.Key(keyPrefix))
}
