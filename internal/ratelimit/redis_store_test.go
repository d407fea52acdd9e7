package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisStore(rdb), mr
}

func TestRedisStore_IncrCountsWithinWindow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestRedisStore(t)

	count, elapsed, err := store.Incr(ctx, "1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, time.Duration(0), elapsed)

	count, _, err = store.Incr(ctx, "1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRedisStore_WindowExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	_, _, err := store.Incr(ctx, "k", time.Second)
	require.NoError(t, err)

	mr.FastForward(1100 * time.Millisecond)

	count, _, err := store.Incr(ctx, "k", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "a fresh window starts after expiry")
}

func TestRedisStore_DecrAfterExpiryLeavesNoKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	_, _, err := store.Incr(ctx, "k", time.Second)
	require.NoError(t, err)

	mr.FastForward(1100 * time.Millisecond)

	require.NoError(t, store.Decr(ctx, "k"))
	assert.False(t, mr.Exists("ratelimit:k"), "a refund racing expiry must not seed a counter without a TTL")

	count, _, err := store.Incr(ctx, "k", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "the next window still starts at one")
}

func TestRedisStore_DecrRefundsLiveWindow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestRedisStore(t)

	_, _, err := store.Incr(ctx, "k", time.Minute)
	require.NoError(t, err)
	_, _, err = store.Incr(ctx, "k", time.Minute)
	require.NoError(t, err)

	require.NoError(t, store.Decr(ctx, "k"))

	count, _, err := store.Incr(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
