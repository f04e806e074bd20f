// Package ratelimit provides a keyed token-bucket rate limiter with idle-key
// eviction. Allow is for inbound request protection; Wait is for pacing
// outbound calls to third-party APIs.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// evictAfter is how long a key may sit unused before its bucket is dropped.
// Inbound keys are client IPs, so the map grows without bound otherwise.
const evictAfter = 10 * time.Minute

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter gives each key an independent token bucket.
type KeyedRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a keyed limiter allowing rps requests per second with the
// given burst, and starts the idle-key janitor.
func New(rps float64, burst int) *KeyedRateLimiter {
	k := &KeyedRateLimiter{
		entries: make(map[string]*entry),
		limit:   rate.Limit(rps),
		burst:   burst,
		done:    make(chan struct{}),
	}
	go k.janitor()
	return k
}

// Allow reports whether a request for key may proceed right now.
func (k *KeyedRateLimiter) Allow(key string) bool {
	return k.limiter(key).Allow()
}

// Wait blocks until a request for key may proceed or ctx is canceled.
func (k *KeyedRateLimiter) Wait(ctx context.Context, key string) error {
	return k.limiter(key).Wait(ctx)
}

func (k *KeyedRateLimiter) limiter(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, ok := k.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(k.limit, k.burst)}
		k.entries[key] = e
	}
	e.lastSeen = time.Now()
	return e.limiter
}

// Stop shuts down the janitor goroutine.
func (k *KeyedRateLimiter) Stop() {
	k.stopOnce.Do(func() {
		close(k.done)
	})
}

func (k *KeyedRateLimiter) janitor() {
	ticker := time.NewTicker(evictAfter / 2)
	defer ticker.Stop()

	for {
		select {
		case <-k.done:
			return
		case now := <-ticker.C:
			k.mu.Lock()
			for key, e := range k.entries {
				if now.Sub(e.lastSeen) > evictAfter {
					delete(k.entries, key)
				}
			}
			k.mu.Unlock()
		}
	}
}
