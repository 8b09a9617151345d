package panchang

import (
	"sync"
	"time"

	"github.com/chrissnell/astrotime/pkg/astro"
)

type cacheKey struct {
	zone string
	loc  astro.GeoLocation
}

// Cache memoises snapshots by truncating instants to a fixed resolution.
// Only the current resolution bucket is kept; moving to a new bucket
// discards the old entries.
type Cache struct {
	mu         sync.Mutex
	resolution time.Duration
	bucket     time.Time
	entries    map[cacheKey]Snapshot
	hits       uint64
	misses     uint64
}

// NewCache creates a snapshot cache. A resolution of zero or less disables
// caching.
func NewCache(resolution time.Duration) *Cache {
	return &Cache{
		resolution: resolution,
		entries:    make(map[cacheKey]Snapshot),
	}
}

// Snapshot returns the snapshot for t truncated to the cache resolution.
func (c *Cache) Snapshot(t time.Time, loc astro.GeoLocation) Snapshot {
	if c.resolution <= 0 {
		return NewSnapshot(t, loc)
	}

	at := t.Truncate(c.resolution)
	key := cacheKey{zone: t.Location().String(), loc: loc}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !at.Equal(c.bucket) {
		c.bucket = at
		c.entries = make(map[cacheKey]Snapshot)
	} else if s, ok := c.entries[key]; ok {
		c.hits++
		return s
	}

	c.misses++
	s := NewSnapshot(at, loc)
	c.entries[key] = s
	return s
}

// Stats returns the hit and miss counts since creation
func (c *Cache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
