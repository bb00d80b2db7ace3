package cache

import (
	"sync"
	"time"
)

// cacheItem holds a value and the moment it goes stale
type cacheItem[V any] struct {
	value      V
	expiration time.Time
}

// MemoryCache is a thread-safe in-memory store whose entries expire after
// a period without access. It backs per-client state such as rate
// limiter buckets, never search results.
type MemoryCache[V any] struct {
	data    map[string]cacheItem[V]
	mutex   sync.Mutex
	idleTTL time.Duration
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// NewMemoryCache creates a cache that drops entries idle for longer than
// idleTTL. A positive sweepInterval starts a background sweep; call Close
// to stop it.
func NewMemoryCache[V any](idleTTL, sweepInterval time.Duration) *MemoryCache[V] {
	cache := &MemoryCache[V]{
		data:    make(map[string]cacheItem[V]),
		idleTTL: idleTTL,
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	if sweepInterval > 0 {
		go cache.cleanupExpired(sweepInterval)
	}

	return cache
}

// GetOrCreate returns the live value for key, creating it with create when
// absent or expired. Either way the entry's idle timer restarts.
func (c *MemoryCache[V]) GetOrCreate(key string, create func() V) V {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	item, exists := c.data[key]
	if !exists || now.After(item.expiration) {
		item.value = create()
	}
	item.expiration = now.Add(c.idleTTL)
	c.data[key] = item

	return item.value
}

// Sweep removes every expired entry and returns how many were dropped
func (c *MemoryCache[V]) Sweep() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	removed := 0
	for key, item := range c.data {
		if now.After(item.expiration) {
			delete(c.data, key)
			removed++
		}
	}
	return removed
}

// cleanupExpired sweeps periodically until Close is called
func (c *MemoryCache[V]) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

// Close stops the background sweep. It is safe to call more than once.
func (c *MemoryCache[V]) Close() {
	c.once.Do(func() { close(c.stop) })
}

// Size returns the current number of items in the cache, expired or not
func (c *MemoryCache[V]) Size() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.data)
}
