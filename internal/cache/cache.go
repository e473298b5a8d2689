// Package cache memoizes serialized /report responses at the HTTP host
// boundary. It never participates in the routing core's purity contract:
// a cache miss falls through to a fresh report computation, and a Redis
// error falls back to the in-memory copy before that — caching only saves
// recomputation, it never changes what gets computed.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache stores and retrieves opaque byte payloads (a serialized report)
// under a string key, with a per-entry TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// MemoryCache is an in-process Cache, used when no Redis address is
// configured and as the safety net when a RedisCache call fails.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

// Get returns the cached value for key if present and unexpired.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

// Set stores value under key for the given TTL.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
}
