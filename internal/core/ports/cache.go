package ports

import "context"

// KeyLimits is the pair of rate-limit budgets a cache lookup yields for
// an effective key.
type KeyLimits struct {
	RPS int
	RPD int
}

// KeyCache sits in front of KeyStore: key -> (rps, rpd) or a negative
// entry, each valid for a TTL. Admin writes MUST invalidate the specific
// entry so a newly created or upgraded key isn't rejected for up to the
// full TTL.
type KeyCache interface {
	// Lookup returns the cached limits for key, and ok=false if there is
	// no live entry (caller must consult KeyStore on a miss).
	Lookup(ctx context.Context, key string) (limits KeyLimits, effective bool, ok bool)
	// StorePositive caches an effective key's limits.
	StorePositive(key string, limits KeyLimits)
	// StoreNegative caches that key is not currently effective.
	StoreNegative(key string)
	// Invalidate drops any cached entry for key, positive or negative.
	Invalidate(key string)
}
