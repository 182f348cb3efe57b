package ttlcache

import (
	"context"
	"time"

	"github.com/redis/rueidis"
	"github.com/samber/mo"
)

var _ TTLCache = (*RueidisTTLCache)(nil)

type RueidisTTLCache struct {
	rueidis rueidis.Client
}

func NewRueidisTTLCache(client rueidis.Client) *RueidisTTLCache {
	return &RueidisTTLCache{
		rueidis: client,
	}
}

func (c *RueidisTTLCache) Get(ctx context.Context, key string) (mo.Option[string], error) {
	getCmd := c.rueidis.B().
		Get().
		Key(key).
		Build()

	str, err := c.rueidis.Do(ctx, getCmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return mo.None[string](), nil
		}

		return mo.None[string](), err
	}

	return mo.Some(str), nil
}

// Set stores value under key. A ttl of zero or less keeps the value forever,
// ttls that are not whole seconds are sent with millisecond precision.
func (c *RueidisTTLCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	var setCmd rueidis.Completed

	switch {
	case ttl > 0 && ttl%time.Second == 0:
		setCmd = c.rueidis.B().
			Set().
			Key(key).
			Value(value).
			ExSeconds(int64(ttl / time.Second)).
			Build()
	case ttl > 0:
		setCmd = c.rueidis.B().
			Set().
			Key(key).
			Value(value).
			PxMilliseconds(max(ttl.Milliseconds(), 1)).
			Build()
	default:
		setCmd = c.rueidis.B().
			Set().
			Key(key).
			Value(value).
			Build()
	}

	return c.rueidis.Do(ctx, setCmd).Error()
}
