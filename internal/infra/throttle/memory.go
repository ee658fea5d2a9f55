// Package throttle limits request rates per client key.
package throttle

import (
	"context"
	"sync"
	"time"

	"smarthr/internal/domain/service"

	"golang.org/x/time/rate"
)

// idleTTL is how long an untouched bucket survives before the sweep drops it.
const idleTTL = 5 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryThrottle keeps one token bucket per key in process memory.
type MemoryThrottle struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

// NewMemoryThrottle allows perMinute attempts per key with the given burst.
func NewMemoryThrottle(perMinute, burst int) *MemoryThrottle {
	return &MemoryThrottle{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(float64(perMinute) / 60),
		burst:   burst,
		now:     time.Now,
	}
}

var _ service.Throttle = (*MemoryThrottle)(nil)

func (t *MemoryThrottle) Allow(_ context.Context, key string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	b, ok := t.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.buckets[key] = b
	}
	b.lastSeen = now

	return b.limiter.AllowN(now, 1), nil
}

// Sweep drops buckets idle for longer than idleTTL.
func (t *MemoryThrottle) Sweep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for key, b := range t.buckets {
		if now.Sub(b.lastSeen) > idleTTL {
			delete(t.buckets, key)
		}
	}
}

// RunSweeper calls Sweep every minute until ctx ends.
func (t *MemoryThrottle) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Sweep()
		}
	}
}
