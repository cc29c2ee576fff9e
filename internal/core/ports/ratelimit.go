package ports

// ConsumeResult is returned by RateLimiter.TryConsume.
type ConsumeResult struct {
	Allowed        bool
	RemainingS     float64 // tokens remaining in the per-second bucket after consume
	RemainingD     float64 // tokens remaining in the per-day bucket after consume
	RetryAfterSecs int64   // only meaningful when Allowed=false
}

// Remaining reports the minimum of the two bucket remainders, the value
// the pipeline surfaces as X-RateLimit-Remaining.
func (r ConsumeResult) Remaining() float64 {
	if r.RemainingS < r.RemainingD {
		return r.RemainingS
	}
	return r.RemainingD
}

// RateLimiter enforces a dual token-bucket (per-second and per-day) per
// API key, built lazily on first reference and keyed off an injectable
// TimeSource so tests can fast-forward refills deterministically.
type RateLimiter interface {
	// TryConsume attempts to take one token from both the key's
	// per-second and per-day buckets, creating the bucket pair with
	// capacity (rps, rpd) on first reference.
	TryConsume(key string, rps, rpd int) ConsumeResult
	// Evict discards the bucket pair for key, e.g. after a plan change
	// invalidates the cached limits.
	Evict(key string)
}
