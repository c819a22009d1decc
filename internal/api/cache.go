package api

import (
	"time"

	"github.com/dgraph-io/ristretto"
)

// docCache keeps assembled documents for a short TTL.
type docCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func newDocCache(ttl time.Duration) (*docCache, error) {
	if ttl <= 0 {
		return nil, nil
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100_000,
		MaxCost:     10_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &docCache{cache: cache, ttl: ttl}, nil
}

func (c *docCache) get(key string) (interface{}, bool) {
	if c == nil {
		return nil, false
	}
	return c.cache.Get(key)
}

func (c *docCache) set(key string, value interface{}) {
	if c == nil {
		return
	}
	c.cache.SetWithTTL(key, value, 1, c.ttl)
}

// wait blocks until buffered writes are applied.
func (c *docCache) wait() {
	if c != nil {
		c.cache.Wait()
	}
}

func (c *docCache) close() {
	if c != nil {
		c.cache.Close()
	}
}
