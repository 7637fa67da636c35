// Package discovery runs the element discovery pipeline: a cached
// native walk through a short-lived helper subprocess, joined with the
// browser content supplement, plus focus watching and cache prefetch.
package discovery

import (
	"sync"
	"time"

	"github.com/keyclick/keyclick/internal/model"
)

// cacheEntry holds one native discovery result with its capture time.
type cacheEntry struct {
	result     model.DiscoveryResult
	capturedAt time.Time
}

// ResultCache caches the native half of a discovery per pid. The
// browser supplement is never cached. A ttl of 0 disables caching.
type ResultCache struct {
	mu      sync.Mutex
	entries map[int]cacheEntry
	ttl     time.Duration

	now func() time.Time
}

// NewResultCache creates a cache with the given ttl.
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		entries: make(map[int]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached result for pid while it is still fresh. An
// entry is fresh strictly under the ttl; at or past it, it is a miss.
// Failing to take the lock is also a miss, never a wait.
func (c *ResultCache) Get(pid int) (model.DiscoveryResult, bool) {
	if !c.mu.TryLock() {
		return model.DiscoveryResult{}, false
	}
	defer c.mu.Unlock()

	if c.ttl <= 0 {
		return model.DiscoveryResult{}, false
	}
	entry, ok := c.entries[pid]
	if !ok {
		return model.DiscoveryResult{}, false
	}
	if c.now().Sub(entry.capturedAt) >= c.ttl {
		delete(c.entries, pid)
		return model.DiscoveryResult{}, false
	}
	return entry.result, true
}

// Put stores a result for pid, stamped now.
func (c *ResultCache) Put(pid int, result model.DiscoveryResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ttl <= 0 {
		return
	}
	c.entries[pid] = cacheEntry{result: result, capturedAt: c.now()}
}

// SetTTL changes the ttl at runtime. Existing entries are judged
// against the new value on their next lookup.
func (c *ResultCache) SetTTL(ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ttl = ttl
}

// Invalidate removes the entry for pid.
func (c *ResultCache) Invalidate(pid int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, pid)
}

// InvalidateAll clears the entire cache.
func (c *ResultCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int]cacheEntry)
}
