package services

import (
	"time"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/business"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rcrowley/go-metrics"
)

// CacheOptions bounds a session cache by entry count and age
type CacheOptions struct {
	TTL  time.Duration
	Size int
}

// DefaultCacheOptions returns the shared eviction policy: 1024 entries, 5 minutes
func DefaultCacheOptions() CacheOptions {
	return CacheOptions{TTL: constants.DefaultCacheTTL, Size: constants.DefaultCacheSize}
}

func (o CacheOptions) normalized() CacheOptions {
	if o.TTL <= 0 {
		o.TTL = constants.DefaultCacheTTL
	}
	if o.Size <= 0 {
		o.Size = constants.DefaultCacheSize
	}
	return o
}

// ttlCache is a size-bounded LRU whose entries also expire after a TTL.
// The underlying LRU is safe for concurrent use.
type ttlCache[V any] struct {
	entries *expirable.LRU[string, business.CacheEntry[V]]
	ttl     time.Duration
	hits    metrics.Counter
	misses  metrics.Counter
	now     func() time.Time
}

func newTTLCache[V any](name string, opts CacheOptions, registry metrics.Registry) *ttlCache[V] {
	opts = opts.normalized()
	return &ttlCache[V]{
		entries: expirable.NewLRU[string, business.CacheEntry[V]](opts.Size, nil, opts.TTL),
		ttl:     opts.TTL,
		hits:    newCounter(registry, metricCacheHits, name),
		misses:  newCounter(registry, metricCacheMisses, name),
		now:     time.Now,
	}
}

// Get returns the cached value when present and not expired
func (c *ttlCache[V]) Get(key string) (V, bool) {
	entry, ok := c.entries.Get(key)
	if !ok || entry.Expired(c.now()) {
		if ok {
			c.entries.Remove(key)
		}
		c.misses.Inc(1)
		var zero V
		return zero, false
	}
	c.hits.Inc(1)
	return entry.Value, true
}

// Set stores a value under key
func (c *ttlCache[V]) Set(key string, value V) {
	c.entries.Add(key, business.CacheEntry[V]{
		Key:       key,
		Value:     value,
		CreatedAt: c.now(),
		TTL:       c.ttl,
	})
}

// Purge drops every entry
func (c *ttlCache[V]) Purge() {
	c.entries.Purge()
}

// Stats reports hit/miss counters and the current entry count
func (c *ttlCache[V]) Stats() business.CacheStats {
	stats := business.CacheStats{
		Hits:    c.hits.Count(),
		Misses:  c.misses.Count(),
		Entries: c.entries.Len(),
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}
	return stats
}
