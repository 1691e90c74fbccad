package api

import (
	"sync"
	"time"

	"github.com/mtlprog/verusns/internal/domain"
)

type cacheEntry struct {
	detail    domain.CurrencyDetail
	expiresAt time.Time
}

// detailCache holds successful currency lookups of the currencies endpoint.
// A nil cache misses every lookup and stores nothing. Discovery endpoints never use it.
type detailCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func newDetailCache(ttl time.Duration) *detailCache {
	return &detailCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *detailCache) get(key string) (domain.CurrencyDetail, bool) {
	if c == nil {
		return domain.CurrencyDetail{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || c.now().After(entry.expiresAt) {
		return domain.CurrencyDetail{}, false
	}
	return entry.detail, true
}

func (c *detailCache) set(key string, detail domain.CurrencyDetail) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{
		detail:    detail,
		expiresAt: now.Add(c.ttl),
	}
}
