package business

import "time"

// CacheEntry stores a cached value with its insertion time and TTL
type CacheEntry[V any] struct {
	Key       string        `json:"key"`
	Value     V             `json:"value"`
	CreatedAt time.Time     `json:"created_at"`
	TTL       time.Duration `json:"ttl"`
}

// Expired reports whether the entry outlived its TTL at the given time
func (e CacheEntry[V]) Expired(now time.Time) bool {
	return e.TTL > 0 && now.Sub(e.CreatedAt) >= e.TTL
}

// CacheStats reports cache performance metrics
type CacheStats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Entries int     `json:"entries"`
	HitRate float64 `json:"hit_rate"`
}
