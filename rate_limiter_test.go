package turbobunny

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekomeowww/turbobunny/pkg/storage/ttlcache"
)

func TestRateLimitForDispatch(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		limiter := NewRateLimiter(ttlcache.NewInMemoryTTLCache(), 0, time.Minute)

		for i := 0; i < 10; i++ {
			_, ok, err := limiter.RateLimitForDispatch(context.Background(), PlatformHTTP, "127.0.0.1")
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})

	t.Run("Limited", func(t *testing.T) {
		limiter := NewRateLimiter(ttlcache.NewInMemoryTTLCache(), 2, time.Minute)

		count, ok, err := limiter.RateLimitForDispatch(context.Background(), PlatformHTTP, "127.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(1), count)

		count, ok, err = limiter.RateLimitForDispatch(context.Background(), PlatformHTTP, "127.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(2), count)

		count, ok, err = limiter.RateLimitForDispatch(context.Background(), PlatformHTTP, "127.0.0.1")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, int64(2), count)
	})

	t.Run("SeparateClientsAndPlatforms", func(t *testing.T) {
		limiter := NewRateLimiter(ttlcache.NewInMemoryTTLCache(), 1, time.Minute)

		_, ok, err := limiter.RateLimitForDispatch(context.Background(), PlatformHTTP, "a")
		require.NoError(t, err)
		assert.True(t, ok)

		_, ok, err = limiter.RateLimitForDispatch(context.Background(), PlatformHTTP, "b")
		require.NoError(t, err)
		assert.True(t, ok)

		_, ok, err = limiter.RateLimitForDispatch(context.Background(), PlatformTelegram, "a")
		require.NoError(t, err)
		assert.True(t, ok)

		_, ok, err = limiter.RateLimitForDispatch(context.Background(), PlatformHTTP, "a")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRateLimitPeriodExpires(t *testing.T) {
	for _, period := range []time.Duration{time.Second, 300 * time.Millisecond, 1500 * time.Millisecond} {
		t.Run(period.String(), func(t *testing.T) {
			limiter := NewRateLimiter(ttlcache.NewInMemoryTTLCache(), 1, period)

			_, ok, err := limiter.RateLimitForDispatch(context.Background(), PlatformHTTP, "127.0.0.1")
			require.NoError(t, err)
			assert.True(t, ok)

			_, ok, err = limiter.RateLimitForDispatch(context.Background(), PlatformHTTP, "127.0.0.1")
			require.NoError(t, err)
			assert.False(t, ok)

			time.Sleep(period + 200*time.Millisecond)

			count, ok, err := limiter.RateLimitForDispatch(context.Background(), PlatformHTTP, "127.0.0.1")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, int64(1), count)
		})
	}
}

func TestRateLimitPeriodIsNotTruncated(t *testing.T) {
	limiter := NewRateLimiter(ttlcache.NewInMemoryTTLCache(), 1, 1500*time.Millisecond)

	_, ok, err := limiter.RateLimitForDispatch(context.Background(), PlatformHTTP, "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)

	time.Sleep(1100 * time.Millisecond)

	_, ok, err = limiter.RateLimitForDispatch(context.Background(), PlatformHTTP, "127.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFullNameFromFirstAndLastName(t *testing.T) {
	assert.Equal(t, "Neko Meow", FullNameFromFirstAndLastName("Neko", "Meow"))
	assert.Equal(t, "Neko", FullNameFromFirstAndLastName("Neko", ""))
	assert.Equal(t, "Meow", FullNameFromFirstAndLastName("", "Meow"))
}
