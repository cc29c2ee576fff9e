// Package ratelimit implements ports.RateLimiter: a per-key pair of
// greedy-refill token buckets (per-second and per-day), driven by an
// injected ports.TimeSource so tests can fast-forward refills
// deterministically instead of sleeping, per spec §4.4/§9.
package ratelimit

import (
	"math"
	"sync"

	"github.com/unicitylabs/aggregator-proxy/internal/core/ports"
)

const nanosPerSecond = 1e9

// bucket is a single greedy-refill token bucket.
type bucket struct {
	capacity        float64
	refillPerSecond float64 // tokens added per second of elapsed time
	tokens          float64
	lastRefillNanos int64
}

func newBucket(capacity float64, refillPerSecond float64, now int64) *bucket {
	return &bucket{capacity: capacity, refillPerSecond: refillPerSecond, tokens: capacity, lastRefillNanos: now}
}

// refill tops up tokens for elapsed time, capped at capacity.
func (b *bucket) refill(now int64) {
	elapsed := now - b.lastRefillNanos
	if elapsed <= 0 {
		return
	}
	b.tokens = math.Min(b.capacity, b.tokens+float64(elapsed)*b.refillPerSecond/nanosPerSecond)
	b.lastRefillNanos = now
}

// nanosToOneToken returns how many nanoseconds until at least one
// token is available, given the bucket is currently empty.
func (b *bucket) nanosToOneToken() int64 {
	if b.refillPerSecond <= 0 {
		return math.MaxInt64
	}
	deficit := 1 - b.tokens
	if deficit <= 0 {
		return 0
	}
	return int64(math.Ceil(deficit * nanosPerSecond / b.refillPerSecond))
}

type pair struct {
	mu  sync.Mutex
	sec *bucket
	day *bucket
}

// Limiter implements ports.RateLimiter.
type Limiter struct {
	clock ports.TimeSource
	mu    sync.Mutex
	pairs map[string]*pair
}

// New creates a Limiter driven by clock.
func New(clock ports.TimeSource) *Limiter {
	return &Limiter{clock: clock, pairs: make(map[string]*pair)}
}

func (l *Limiter) pairFor(key string, rps, rpd int) *pair {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.pairs[key]
	if !ok {
		now := l.clock.NanoTime()
		p = &pair{
			sec: newBucket(float64(rps), float64(rps), now),
			day: newBucket(float64(rpd), float64(rpd)/86400, now),
		}
		l.pairs[key] = p
		return p
	}

	// A plan change is reflected by rebuilding the pair on next
	// reference with the new capacities — spec §4.4 "old bucket is
	// discarded on next reference after the cache-forced reload".
	if p.sec.capacity != float64(rps) || p.day.capacity != float64(rpd) {
		now := l.clock.NanoTime()
		p = &pair{
			sec: newBucket(float64(rps), float64(rps), now),
			day: newBucket(float64(rpd), float64(rpd)/86400, now),
		}
		l.pairs[key] = p
	}
	return p
}

// TryConsume attempts to take one token from both buckets atomically
// w.r.t. the pair. Denied iff either bucket has <1 token after refill.
func (l *Limiter) TryConsume(key string, rps, rpd int) ports.ConsumeResult {
	p := l.pairFor(key, rps, rpd)

	p.mu.Lock()
	defer p.mu.Unlock()

	now := l.clock.NanoTime()
	p.sec.refill(now)
	p.day.refill(now)

	if p.sec.tokens < 1 || p.day.tokens < 1 {
		retrySecs := int64(math.Ceil(float64(maxInt64(p.sec.nanosToOneToken(), p.day.nanosToOneToken())) / nanosPerSecond))
		if retrySecs < 1 {
			retrySecs = 1
		}
		return ports.ConsumeResult{
			Allowed:        false,
			RemainingS:     p.sec.tokens,
			RemainingD:     p.day.tokens,
			RetryAfterSecs: retrySecs,
		}
	}

	p.sec.tokens--
	p.day.tokens--

	return ports.ConsumeResult{
		Allowed:    true,
		RemainingS: p.sec.tokens,
		RemainingD: p.day.tokens,
	}
}

// Evict discards the bucket pair for key.
func (l *Limiter) Evict(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.pairs, key)
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
