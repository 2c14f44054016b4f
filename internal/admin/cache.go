package admin

import (
	"sync"
	"time"
)

type cacheEntry struct {
	isAdmin   bool
	expiresAt time.Time
}

// StatusCache memoizes admin lookups per user id. Entries expire after the
// TTL and are dropped on sign-out.
type StatusCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[int]cacheEntry
	now     func() time.Time
}

func NewStatusCache(ttl time.Duration) *StatusCache {
	return &StatusCache{
		ttl:     ttl,
		entries: make(map[int]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached status and whether a live entry exists.
func (c *StatusCache) Get(userID int) (bool, bool) {
	c.mu.RLock()
	e, ok := c.entries[userID]
	c.mu.RUnlock()
	if !ok {
		return false, false
	}
	if !c.now().Before(e.expiresAt) {
		c.Invalidate(userID)
		return false, false
	}
	return e.isAdmin, true
}

func (c *StatusCache) Set(userID int, isAdmin bool) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = cacheEntry{isAdmin: isAdmin, expiresAt: c.now().Add(c.ttl)}
}

func (c *StatusCache) Invalidate(userID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}

func (c *StatusCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int]cacheEntry)
}

func (c *StatusCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
