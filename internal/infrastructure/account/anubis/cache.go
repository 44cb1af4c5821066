package anubis

import (
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/user"
)

type cachedPrincipal struct {
	principal user.Principal
	expiresAt time.Time
}

// principalCache holds verified principals keyed by token hash. A negative
// ttl disables caching.
type principalCache struct {
	mu         sync.Mutex
	entries    map[string]cachedPrincipal
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func newPrincipalCache(ttl time.Duration, maxEntries int) *principalCache {
	return &principalCache{
		entries:    make(map[string]cachedPrincipal),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *principalCache) Get(key string) (user.Principal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.entries[key]
	if !ok {
		return user.Principal{}, false
	}
	if !item.expiresAt.After(c.now()) {
		delete(c.entries, key)
		return user.Principal{}, false
	}
	return item.principal, true
}

func (c *principalCache) Set(key string, principal user.Principal) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictLocked(now)
	}
	c.entries[key] = cachedPrincipal{principal: principal, expiresAt: now.Add(c.ttl)}
}

// evictLocked drops expired entries, then the entry closest to expiry if the
// cache is still full.
func (c *principalCache) evictLocked(now time.Time) {
	var (
		oldestKey string
		oldestAt  time.Time
	)
	for key, item := range c.entries {
		if !item.expiresAt.After(now) {
			delete(c.entries, key)
			continue
		}
		if oldestKey == "" || item.expiresAt.Before(oldestAt) {
			oldestKey, oldestAt = key, item.expiresAt
		}
	}
	if len(c.entries) >= c.maxEntries && oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
