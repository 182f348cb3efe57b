package turbobunny

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/nekomeowww/turbobunny/pkg/redis"
	"github.com/nekomeowww/turbobunny/pkg/storage/ttlcache"
)

// RateLimiter counts dispatches per client within a sliding period.
type RateLimiter struct {
	ttlcache    ttlcache.TTLCache
	rate        int64
	perDuration time.Duration
}

func NewRateLimiter(cache ttlcache.TTLCache, rate int64, perDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		ttlcache:    cache,
		rate:        rate,
		perDuration: perDuration,
	}
}

func (r *RateLimiter) Enabled() bool {
	return r != nil && r.rate > 0 && r.perDuration > 0
}

func (r *RateLimiter) Period() time.Duration {
	return r.perDuration
}

func (r *RateLimiter) couldCountRateLimitFor(ctx context.Context, key string) (int64, bool, error) {
	if !r.Enabled() {
		return 0, true, nil
	}

	countedRateStr, err := r.ttlcache.Get(ctx, key)
	if err != nil {
		return 0, false, err
	}

	countedRate, _ := strconv.ParseInt(countedRateStr.OrEmpty(), 10, 64)
	if countedRate >= r.rate {
		return countedRate, false, nil
	}

	countedRate++

	err = r.ttlcache.Set(ctx, key, fmt.Sprintf("%d", countedRate), r.perDuration)
	if err != nil {
		return countedRate, false, err
	}

	return countedRate, true, nil
}

// RateLimitForDispatch counts one dispatch for identity on platform and
// reports whether it is still within the limit.
func (r *RateLimiter) RateLimitForDispatch(ctx context.Context, platform Platform, identity string) (int64, bool, error) {
	return r.couldCountRateLimitFor(ctx, redis.CommandRateLimitCounter2.Format(platform, identity))
}
