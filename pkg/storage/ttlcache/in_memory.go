package ttlcache

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/samber/mo"
)

var _ TTLCache = (*InMemoryTTLCache)(nil)

type InMemoryTTLCache struct {
	cache *cache.Cache
}

func NewInMemoryTTLCache() *InMemoryTTLCache {
	return &InMemoryTTLCache{
		cache: cache.New(cache.NoExpiration, time.Minute),
	}
}

func (c *InMemoryTTLCache) Get(_ context.Context, key string) (mo.Option[string], error) {
	value, found := c.cache.Get(key)
	if !found {
		return mo.None[string](), nil
	}

	str, ok := value.(string)
	if !ok {
		return mo.None[string](), nil
	}

	return mo.Some(str), nil
}

// Set stores value under key. A ttl of zero or less keeps the value forever.
func (c *InMemoryTTLCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}

	c.cache.Set(key, value, ttl)

	return nil
}
