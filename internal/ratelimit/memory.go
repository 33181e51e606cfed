package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	count     int64
	expiresAt time.Time
}

// MemoryLimiter keeps counters in process. Only suitable for a single instance.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	window  time.Duration
	now     func() time.Time
}

func NewMemoryLimiter(window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*memoryEntry),
		window:  window,
		now:     time.Now,
	}
}

func (l *MemoryLimiter) TooManyAttempts(ctx context.Context, key string, maxAttempts int) (bool, error) {
	count, _ := l.Attempts(ctx, key)
	return count >= int64(maxAttempts), nil
}

func (l *MemoryLimiter) Hit(_ context.Context, key string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry := l.active(key, now)
	if entry == nil {
		entry = &memoryEntry{expiresAt: now.Add(l.window)}
		l.entries[key] = entry
	}
	entry.count++

	return entry.count, nil
}

func (l *MemoryLimiter) Clear(_ context.Context, key string) error {
	l.mu.Lock()
	delete(l.entries, key)
	l.mu.Unlock()

	return nil
}

func (l *MemoryLimiter) Attempts(_ context.Context, key string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry := l.active(key, l.now()); entry != nil {
		return entry.count, nil
	}

	return 0, nil
}

func (l *MemoryLimiter) AvailableIn(_ context.Context, key string) (time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if entry := l.active(key, now); entry != nil {
		return entry.expiresAt.Sub(now), nil
	}

	return 0, nil
}

// active returns the unexpired entry for key, dropping an expired one. Callers hold mu.
func (l *MemoryLimiter) active(key string, now time.Time) *memoryEntry {
	entry, ok := l.entries[key]
	if !ok {
		return nil
	}
	if !now.Before(entry.expiresAt) {
		delete(l.entries, key)
		return nil
	}

	return entry
}
