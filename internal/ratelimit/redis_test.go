package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLimiterForTest(t *testing.T, window time.Duration) (*miniredis.Miniredis, *RedisLimiter) {
	t.Helper()
	m := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return m, NewRedisLimiter(client, "rl_test", window)
}

func TestRedisLimiter_HitAndTooManyAttempts(t *testing.T) {
	_, l := newRedisLimiterForTest(t, time.Minute)
	ctx := context.Background()
	key := Key(ActionLogin, "a@x.com", "10.0.0.1")

	tooMany, err := l.TooManyAttempts(ctx, key, 2)
	require.NoError(t, err)
	assert.False(t, tooMany)

	for want := int64(1); want <= 2; want++ {
		got, err := l.Hit(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	tooMany, err = l.TooManyAttempts(ctx, key, 2)
	require.NoError(t, err)
	assert.True(t, tooMany)

	other, err := l.TooManyAttempts(ctx, Key(ActionLogin, "a@x.com", "10.0.0.2"), 2)
	require.NoError(t, err)
	assert.False(t, other)
}

func TestRedisLimiter_WindowStartsOnFirstHit(t *testing.T) {
	m, l := newRedisLimiterForTest(t, time.Minute)
	ctx := context.Background()

	_, err := l.Hit(ctx, "k")
	require.NoError(t, err)
	m.FastForward(30 * time.Second)
	_, err = l.Hit(ctx, "k")
	require.NoError(t, err)

	left, err := l.AvailableIn(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, left)

	m.FastForward(31 * time.Second)

	attempts, err := l.Attempts(ctx, "k")
	require.NoError(t, err)
	assert.Zero(t, attempts)

	left, err = l.AvailableIn(ctx, "k")
	require.NoError(t, err)
	assert.Zero(t, left)
}

func TestRedisLimiter_Clear(t *testing.T) {
	m, l := newRedisLimiterForTest(t, time.Minute)
	ctx := context.Background()

	_, err := l.Hit(ctx, "k")
	require.NoError(t, err)
	assert.True(t, m.Exists("rl_test:k"))

	require.NoError(t, l.Clear(ctx, "k"))
	assert.False(t, m.Exists("rl_test:k"))

	attempts, err := l.Attempts(ctx, "k")
	require.NoError(t, err)
	assert.Zero(t, attempts)
}

func TestRedisLimiter_ConcurrentHitsAreCounted(t *testing.T) {
	_, l := newRedisLimiterForTest(t, time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Hit(ctx, "k")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	attempts, err := l.Attempts(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(20), attempts)
}

func TestRedisLimiter_BackendError(t *testing.T) {
	m, l := newRedisLimiterForTest(t, time.Minute)
	m.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := l.Hit(ctx, "k")
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = l.TooManyAttempts(ctx, "k", 1)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	assert.ErrorIs(t, l.Clear(ctx, "k"), ErrStoreUnavailable)
}
