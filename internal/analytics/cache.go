package analytics

import (
	"sort"
	"sync"
	"time"
)

// ttlCache is a thread-safe keyed cache for derived analytics views. Entries
// older than the TTL are treated as misses and overwritten on the next put;
// there is no proactive eviction because the key space is tiny (one entry per
// analytics kind and filter signature).
type ttlCache struct {
	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	data     any
	storedAt time.Time
}

func newTTLCache(ttl time.Duration) *ttlCache {
	return &ttlCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// get returns the cached value for key if it is still fresh at now.
func (c *ttlCache) get(key string, now time.Time) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || now.Sub(e.storedAt) >= c.ttl {
		return nil, false
	}
	return e.data, true
}

func (c *ttlCache) put(key string, data any, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{data: data, storedAt: now}
}

func (c *ttlCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// CacheStatus describes the cache contents for the introspection endpoint.
type CacheStatus struct {
	Size    int               `json:"size"`
	Keys    []string          `json:"keys"`
	Entries []CacheEntryStats `json:"entries"`
}

// CacheEntryStats is one cache entry's introspection view.
type CacheEntryStats struct {
	Key        string    `json:"key"`
	Timestamp  time.Time `json:"timestamp"`
	AgeSeconds float64   `json:"age"`
}

// status snapshots the cache contents at now, keys sorted for stable output.
func (c *ttlCache) status(now time.Time) CacheStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := CacheStatus{Size: len(c.entries)}
	for key := range c.entries {
		st.Keys = append(st.Keys, key)
	}
	sort.Strings(st.Keys)
	for _, key := range st.Keys {
		e := c.entries[key]
		st.Entries = append(st.Entries, CacheEntryStats{
			Key:        key,
			Timestamp:  e.storedAt,
			AgeSeconds: now.Sub(e.storedAt).Seconds(),
		})
	}
	return st
}
