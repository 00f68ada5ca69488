package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"twittertext/internal/domain"
)

// MemoryCache keeps analyses in memory until their TTL passes.
type MemoryCache struct {
	entries sync.Map
	ttl     time.Duration
	now     func() time.Time
	size    atomic.Int64
	stop    chan struct{}
	once    sync.Once
}

type cacheEntry struct {
	analysis  *domain.Analysis
	expiresAt time.Time
}

// NewMemoryCache returns a cache with the given TTL and starts a sweeper
// that removes expired entries every sweep interval.
func NewMemoryCache(ttl, sweep time.Duration) *MemoryCache {
	c := &MemoryCache{ttl: ttl, now: time.Now, stop: make(chan struct{})}
	if sweep > 0 {
		go c.sweepEvery(sweep)
	}
	return c
}

// Get returns the analysis stored under key if it has not expired.
func (c *MemoryCache) Get(key string) (*domain.Analysis, bool) {
	value, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}
	entry := value.(*cacheEntry)
	if c.now().After(entry.expiresAt) {
		c.delete(key)
		return nil, false
	}
	return entry.analysis, true
}

// Set stores analysis under key for one TTL.
func (c *MemoryCache) Set(key string, analysis *domain.Analysis) {
	entry := &cacheEntry{analysis: analysis, expiresAt: c.now().Add(c.ttl)}
	if _, loaded := c.entries.Swap(key, entry); !loaded {
		c.size.Add(1)
	}
}

// Len returns the number of stored entries, expired or not.
func (c *MemoryCache) Len() int { return int(c.size.Load()) }

// Close stops the sweeper.
func (c *MemoryCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *MemoryCache) delete(key string) {
	if _, loaded := c.entries.LoadAndDelete(key); loaded {
		c.size.Add(-1)
	}
}

// Sweep removes every expired entry.
func (c *MemoryCache) Sweep() {
	now := c.now()
	c.entries.Range(func(key, value any) bool {
		if now.After(value.(*cacheEntry).expiresAt) {
			c.delete(key.(string))
		}
		return true
	})
}

func (c *MemoryCache) sweepEvery(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.Sweep()
		case <-c.stop:
			return
		}
	}
}
