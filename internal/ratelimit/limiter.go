// Package ratelimit counts requests per client key over a fixed window
// and rejects the excess with a retry-after hint.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Store keeps the per-key counters. Incr returns the count including the
// current request and how much of the key's window has elapsed.
// Implementations must count concurrent same-key requests without lost
// updates.
type Store interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int, elapsed time.Duration, err error)
	Decr(ctx context.Context, key string) error
}

type Config struct {
	Max            int
	Window         time.Duration
	Enabled        bool
	SkipSuccessful bool
}

type Limiter struct {
	store Store
	cfg   Config
}

func New(store Store, cfg Config) *Limiter {
	return &Limiter{store: store, cfg: cfg}
}

func (l *Limiter) Enabled() bool        { return l.cfg.Enabled }
func (l *Limiter) SkipSuccessful() bool { return l.cfg.SkipSuccessful }

// Allow records one request for key and reports whether it fits in the
// current window. When rejected, retryAfter is the remaining window time.
func (l *Limiter) Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error) {
	if !l.cfg.Enabled {
		return true, 0, nil
	}

	count, elapsed, err := l.store.Incr(ctx, key, l.cfg.Window)
	if err != nil {
		return false, 0, err
	}
	if count > l.cfg.Max {
		remaining := l.cfg.Window - elapsed
		if remaining < 0 {
			remaining = 0
		}
		return false, remaining, nil
	}
	return true, 0, nil
}

// Forgive refunds one counted request, used when successful responses are
// excluded from the count.
func (l *Limiter) Forgive(ctx context.Context, key string) error {
	if !l.cfg.Enabled {
		return nil
	}
	return l.store.Decr(ctx, key)
}

type window struct {
	count int
	start time.Time
}

// MemoryStore is the in-process fixed-window counter store.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: map[string]*window{}, now: time.Now}
}

func (s *MemoryStore) Incr(_ context.Context, key string, windowDur time.Duration) (int, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || now.Sub(w.start) >= windowDur {
		w = &window{start: now}
		s.windows[key] = w
	}
	w.count++
	return w.count, now.Sub(w.start), nil
}

func (s *MemoryStore) Decr(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w, ok := s.windows[key]; ok && w.count > 0 {
		w.count--
	}
	return nil
}
