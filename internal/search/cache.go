package search

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// CacheEntry is a stored search result.
type CacheEntry struct {
	ID        string
	Result    Result
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ResultCache keeps recent search results in memory so that they can be
// displayed and exported after the search request has returned. Nothing is
// persisted; entries expire after the TTL.
type ResultCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewResultCache(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ResultCache{
		store: make(map[string]*CacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Put stores res under a new id and returns the entry. Expired entries are
// pruned on every Put.
func (c *ResultCache) Put(res Result) CacheEntry {
	now := c.now()
	entry := &CacheEntry{
		ID:        uuid.NewString(),
		Result:    res,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.store {
		if now.After(e.ExpiresAt) {
			delete(c.store, key)
		}
	}
	c.store[entry.ID] = entry
	return *entry
}

// Get retrieves a cached result if available and not expired.
func (c *ResultCache) Get(id string) (CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[id]
	if !ok || c.now().After(entry.ExpiresAt) {
		return CacheEntry{}, false
	}
	return *entry, true
}

// Len counts stored entries, including expired ones not yet pruned.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}
