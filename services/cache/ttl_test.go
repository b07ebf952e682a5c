package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type payload struct {
	Name string `json:"name"`
}

func TestTTLCache_FreshWithinTTL(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := NewTTLCache[payload](NewMemoryStore(), "booking_config_cache", 10*time.Minute, clock.Now, nil)

	require.NoError(t, c.Set(ctx, "gym@example.com", payload{Name: "gym"}))

	clock.Advance(9 * time.Minute)
	got, ok := c.Get(ctx, "gym@example.com")
	require.True(t, ok)
	assert.Equal(t, "gym", got.Name)

	clock.Advance(2 * time.Minute)
	_, ok = c.Get(ctx, "gym@example.com")
	assert.False(t, ok, "entry older than TTL must be a miss")
}

func TestTTLCache_StaleEntryIsOverwritten(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := NewTTLCache[payload](store, "ns", time.Minute, clock.Now, nil)

	require.NoError(t, c.Set(ctx, "k", payload{Name: "old"}))
	clock.Advance(2 * time.Minute)

	_, ok := c.Get(ctx, "k")
	require.False(t, ok)
	assert.Equal(t, 1, store.Len(), "stale entries are not evicted on read")

	require.NoError(t, c.Set(ctx, "k", payload{Name: "new"}))
	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "new", got.Name)
}

func TestTTLCache_KeyLayout(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	clock := &fakeClock{t: time.UnixMilli(1700000000000)}
	c := NewTTLCache[[]string](store, "booking_availability_cache", time.Minute, clock.Now, nil)

	require.NoError(t, c.Set(ctx, "gym_2025-03-01_", []string{"09:00"}))

	raw, err := store.Get(ctx, "booking_availability_cache_gym_2025-03-01_")
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":["09:00"],"timestamp":1700000000000}`, string(raw))
}

func TestTTLCache_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "ns_k", []byte("{not json")))

	c := NewTTLCache[payload](store, "ns", time.Minute, nil, nil)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

type failingStore struct{ Store }

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("boom") }
func (failingStore) Set(context.Context, string, []byte) error   { return errors.New("boom") }

func TestTTLCache_StoreFailures(t *testing.T) {
	ctx := context.Background()
	c := NewTTLCache[payload](failingStore{}, "ns", time.Minute, nil, nil)

	err := c.Set(ctx, "k", payload{Name: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ns_k")

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok, "a failing read is a miss")
}

func TestTTLCache_InvalidatePrefix(t *testing.T) {
	ctx := context.Background()
	c := NewTTLCache[payload](NewMemoryStore(), "ns", time.Minute, nil, nil)

	require.NoError(t, c.Set(ctx, "gym_2025-03-01_", payload{}))
	require.NoError(t, c.Set(ctx, "gym_2025-03-01_t1", payload{}))
	require.NoError(t, c.Set(ctx, "gym_2025-03-02_t1", payload{}))

	n, err := c.InvalidatePrefix(ctx, "gym_2025-03-01_")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, ok := c.Get(ctx, "gym_2025-03-02_t1")
	assert.True(t, ok)
}
