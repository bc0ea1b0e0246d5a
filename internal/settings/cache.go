package settings

import (
	"sync"
	"time"

	"solarsmart/internal/model"
)

// cacheEntry is the last settings value read from the store.
type cacheEntry struct {
	value     model.Settings
	expiresAt time.Time
}

// cache holds the current settings for a short TTL so each calculation
// does not hit the database. A zero TTL disables it.
//
// gen is bumped on every clear. A read that started before a clear must
// not repopulate the cache with the value it loaded.
type cache struct {
	mu    sync.RWMutex
	entry *cacheEntry
	gen   uint64
	ttl   time.Duration
	now   func() time.Time
}

func newCache(ttl time.Duration) *cache {
	return &cache{ttl: ttl, now: time.Now}
}

// get returns the cached value, or the generation to hand to set on a miss.
func (c *cache) get() (model.Settings, uint64, bool) {
	if c == nil || c.ttl <= 0 {
		return model.Settings{}, 0, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil || c.now().After(c.entry.expiresAt) {
		return model.Settings{}, c.gen, false
	}
	return c.entry.value, c.gen, true
}

// set stores s unless the cache was cleared since gen was observed.
func (c *cache) set(s model.Settings, gen uint64) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.entry = &cacheEntry{value: s, expiresAt: c.now().Add(c.ttl)}
}

func (c *cache) clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
	c.gen++
}
