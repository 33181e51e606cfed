// Package ratelimit counts attempts per key inside a fixed window.
//
// A window starts with the first Hit on a key and lasts for the configured
// duration; the counter disappears when the window ends or on Clear.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vibe-gaming/gatekeeper/internal/domain"
)

const (
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

var ErrStoreUnavailable = errors.New("rate limit store unavailable")

type Action string

const (
	ActionRegister Action = "register"
	ActionVerify   Action = "verify"
	ActionLogin    Action = "login"
)

type Limiter interface {
	// TooManyAttempts reports whether key already has maxAttempts or more hits in the active window.
	TooManyAttempts(ctx context.Context, key string, maxAttempts int) (bool, error)
	// Hit increments the counter of key and returns the new value.
	Hit(ctx context.Context, key string) (int64, error)
	Clear(ctx context.Context, key string) error
	Attempts(ctx context.Context, key string) (int64, error)
	// AvailableIn returns the time left until the window of key ends.
	AvailableIn(ctx context.Context, key string) (time.Duration, error)
}

// Key scopes a counter to one action, identity and client origin.
func Key(action Action, email string, origin string) string {
	return strings.Join([]string{string(action), domain.NormalizeEmail(email), origin}, "|")
}

// New picks the counters storage by name. client may be nil for the memory store.
func New(store string, client redis.UniversalClient, window time.Duration) (Limiter, error) {
	switch store {
	case StoreRedis:
		if client == nil {
			return nil, errors.New("redis store requires a client")
		}
		return NewRedisLimiter(client, defaultPrefix, window), nil
	case StoreMemory:
		return NewMemoryLimiter(window), nil
	}

	return nil, fmt.Errorf("unknown rate limit store %q", store)
}
