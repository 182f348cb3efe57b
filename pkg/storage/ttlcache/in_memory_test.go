package ttlcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTTLCache(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		c := NewInMemoryTTLCache()

		value, err := c.Get(context.Background(), "missing")
		require.NoError(t, err)
		assert.True(t, value.IsAbsent())
	})

	t.Run("SetGet", func(t *testing.T) {
		c := NewInMemoryTTLCache()

		require.NoError(t, c.Set(context.Background(), "key", "value", time.Minute))
		require.NoError(t, c.Set(context.Background(), "forever", "value", 0))

		value, err := c.Get(context.Background(), "key")
		require.NoError(t, err)
		assert.Equal(t, "value", value.OrEmpty())

		value, err = c.Get(context.Background(), "forever")
		require.NoError(t, err)
		assert.Equal(t, "value", value.OrEmpty())
	})

	t.Run("Expired", func(t *testing.T) {
		c := NewInMemoryTTLCache()

		require.NoError(t, c.Set(context.Background(), "key", "value", 10*time.Millisecond))
		time.Sleep(50 * time.Millisecond)

		value, err := c.Get(context.Background(), "key")
		require.NoError(t, err)
		assert.True(t, value.IsAbsent())
	})
}
