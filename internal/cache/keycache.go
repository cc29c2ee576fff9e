// Package cache implements ports.KeyCache, a TTL-evicting front for
// KeyStore lookups, per spec §3/§4.2.
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/unicitylabs/aggregator-proxy/internal/core/ports"
)

const (
	// DefaultTTL is the 60s cache entry lifetime spec §3 specifies.
	DefaultTTL = 60 * time.Second
	// cleanupInterval matches the 5-minute sweep spec §5 names; the
	// underlying expirable.LRU performs its own lazy+periodic eviction
	// internally, so nothing in this package references this constant.
	cleanupInterval = 5 * time.Minute
)

type entry struct {
	limits    ports.KeyLimits
	effective bool
}

// KeyCache implements ports.KeyCache over hashicorp/golang-lru/v2's
// expirable LRU, avoiding a hand-rolled map+ticker for the TTL/eviction
// bookkeeping spec §3 describes.
type KeyCache struct {
	lru *expirable.LRU[string, entry]
}

// New creates a KeyCache with the given TTL and maximum size (0 = no
// size limit besides TTL-driven eviction).
func New(ttl time.Duration, size int) *KeyCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &KeyCache{lru: expirable.NewLRU[string, entry](size, nil, ttl)}
}

// NewDefault creates a KeyCache with spec's 60s TTL and unbounded size.
func NewDefault() *KeyCache {
	return New(DefaultTTL, 0)
}

// Lookup returns the cached limits for key, and ok=false on a cache
// miss (caller must consult KeyStore).
func (c *KeyCache) Lookup(_ context.Context, key string) (ports.KeyLimits, bool, bool) {
	e, ok := c.lru.Get(key)
	if !ok {
		return ports.KeyLimits{}, false, false
	}
	return e.limits, e.effective, true
}

// StorePositive caches an effective key's limits.
func (c *KeyCache) StorePositive(key string, limits ports.KeyLimits) {
	c.lru.Add(key, entry{limits: limits, effective: true})
}

// StoreNegative caches that key is not currently effective.
func (c *KeyCache) StoreNegative(key string) {
	c.lru.Add(key, entry{effective: false})
}

// Invalidate drops any cached entry for key, positive or negative, so
// admin writes take effect immediately rather than after TTL.
func (c *KeyCache) Invalidate(key string) {
	c.lru.Remove(key)
}
