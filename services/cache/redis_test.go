package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, retention time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return NewRedisStore(client, "widget:", retention), mr
}

func TestRedisStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, 0)

	_, err := store.Get(ctx, "k")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	assert.True(t, mr.Exists("widget:k"))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Retention(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, time.Hour)

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	assert.Equal(t, time.Hour, mr.TTL("widget:k"))
}

func TestRedisStore_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, 0)

	require.NoError(t, store.Set(ctx, "avail_gym_2025-03-01_", []byte("[]")))
	require.NoError(t, store.Set(ctx, "avail_gym_2025-03-01_t1", []byte("[]")))
	require.NoError(t, store.Set(ctx, "avail_gym_2025-03-02_t1", []byte("[]")))
	require.NoError(t, mr.Set("other:avail_gym_2025-03-01_", "x"))

	n, err := store.DeletePrefix(ctx, "avail_gym_2025-03-01_")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, mr.Exists("widget:avail_gym_2025-03-02_t1"))
	assert.True(t, mr.Exists("other:avail_gym_2025-03-01_"))
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, `a\*b\?c\[d\]`, escapeGlob("a*b?c[d]"))
}
