package llm

import (
	"context"
	"sync"
	"time"
)

// rateLimiter enforces a minimum interval between requests. A zero or
// negative requests-per-minute disables limiting.
type rateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

func newRateLimiter(requestsPerMinute int) *rateLimiter {
	if requestsPerMinute <= 0 {
		return &rateLimiter{}
	}
	return &rateLimiter{
		interval: time.Minute / time.Duration(requestsPerMinute),
	}
}

// wait blocks until the next request slot or the context is done.
func (r *rateLimiter) wait(ctx context.Context) error {
	if r.interval == 0 {
		return nil
	}

	r.mu.Lock()
	now := time.Now()
	next := r.last.Add(r.interval)
	if next.Before(now) {
		next = now
	}
	r.last = next
	r.mu.Unlock()

	delay := time.Until(next)
	if delay <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
