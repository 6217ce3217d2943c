package ratelimit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestLimiter_SlidingWindow(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	limiter := New(NewRedisStoreFromClient(client), 5, time.Hour)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		res, err := limiter.Check(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d should be allowed", i)
		assert.Equal(t, 6-i, res.Remaining, "request %d remaining", i)
	}

	res, err := limiter.Check(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, res.Allowed, "request 6 should be denied")
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, time.Hour, res.ResetIn)

	// Once the window elapses the record has expired and the client gets a
	// fresh budget.
	mr.FastForward(time.Hour + time.Minute)

	res, err = limiter.Check(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, res.Allowed, "request after window should be allowed")
}

func TestLimiter_DeniedAttemptsStillRecorded(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	store := NewRedisStoreFromClient(client)
	limiter := New(store, 5, time.Hour)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := limiter.Check(ctx, "198.51.100.4")
		require.NoError(t, err)
	}

	raw, err := store.Get(ctx, Key("198.51.100.4"))
	require.NoError(t, err)

	var rec Record
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	assert.Len(t, rec.Requests, 7, "denied attempts count against the budget")
}

func TestLimiter_RecordExpiresWithStoreTTL(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	limiter := New(NewRedisStoreFromClient(client), 5, time.Hour)
	ctx := context.Background()

	_, err := limiter.Check(ctx, "192.0.2.1")
	require.NoError(t, err)
	assert.True(t, mr.Exists(Key("192.0.2.1")))

	mr.FastForward(time.Hour + time.Second)
	assert.False(t, mr.Exists(Key("192.0.2.1")))
}

func TestLimiter_WindowFilterDropsOldTimestamps(t *testing.T) {
	limiter := New(NewMemoryStore(), 5, time.Hour)
	ctx := context.Background()

	base := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return base }

	for i := 0; i < 6; i++ {
		_, err := limiter.Check(ctx, "client")
		require.NoError(t, err)
	}

	// Same stored record, but the clock has moved past the window: every
	// prior timestamp is filtered out before counting.
	limiter.now = func() time.Time { return base.Add(time.Hour + time.Minute) }

	res, err := limiter.Check(ctx, "client")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 5, res.Remaining)
}

func TestLimiter_CorruptRecordReplaced(t *testing.T) {
	store := NewMemoryStore()
	limiter := New(store, 5, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, Key("client"), "not json", time.Hour))

	res, err := limiter.Check(ctx, "client")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 5, res.Remaining)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	t.Run("absent key", func(t *testing.T) {
		val, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, val)
	})

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "k", "v", time.Minute))
		val, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", val)
	})

	t.Run("expired entry treated as absent", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "stale", "v", -time.Second))
		val, err := store.Get(ctx, "stale")
		require.NoError(t, err)
		assert.Empty(t, val)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "gone", "v", time.Minute))
		require.NoError(t, store.Delete(ctx, "gone"))
		val, err := store.Get(ctx, "gone")
		require.NoError(t, err)
		assert.Empty(t, val)
	})
}
