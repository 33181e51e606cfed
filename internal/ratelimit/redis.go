package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "ratelimit"

// INCR and the first PEXPIRE must not be split, otherwise a crash in between leaves a key without TTL.
var hitScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

type RedisLimiter struct {
	client redis.UniversalClient
	prefix string
	window time.Duration
}

func NewRedisLimiter(client redis.UniversalClient, prefix string, window time.Duration) *RedisLimiter {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		window: window,
	}
}

func (l *RedisLimiter) TooManyAttempts(ctx context.Context, key string, maxAttempts int) (bool, error) {
	count, err := l.Attempts(ctx, key)
	if err != nil {
		return false, err
	}

	return count >= int64(maxAttempts), nil
}

func (l *RedisLimiter) Hit(ctx context.Context, key string) (int64, error) {
	count, err := hitScript.Run(ctx, l.client, []string{l.storeKey(key)}, l.window.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: hit: %w", ErrStoreUnavailable, err)
	}

	return count, nil
}

func (l *RedisLimiter) Clear(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.storeKey(key)).Err(); err != nil {
		return fmt.Errorf("%w: clear: %w", ErrStoreUnavailable, err)
	}

	return nil
}

// Attempts treats a missing key as zero attempts.
func (l *RedisLimiter) Attempts(ctx context.Context, key string) (int64, error) {
	count, err := l.client.Get(ctx, l.storeKey(key)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: get: %w", ErrStoreUnavailable, err)
	}
	if count < 0 {
		return 0, nil
	}

	return count, nil
}

func (l *RedisLimiter) AvailableIn(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := l.client.PTTL(ctx, l.storeKey(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: pttl: %w", ErrStoreUnavailable, err)
	}
	// negative values mean no key or no expiry
	if ttl < 0 {
		return 0, nil
	}

	return ttl, nil
}

func (l *RedisLimiter) storeKey(key string) string {
	return l.prefix + ":" + key
}
