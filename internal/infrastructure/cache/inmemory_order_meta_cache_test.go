package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vatid/backend/internal/infrastructure/config"
)

func TestInMemoryOrderMetaCache(t *testing.T) {
	c := NewInMemoryOrderMetaCache()
	defer c.Close()

	ctx := context.Background()

	t.Run("miss on unknown order", func(t *testing.T) {
		meta, ok, err := c.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, meta)
	})

	t.Run("returns stored meta", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "order-1", map[string]string{"vat_number": "DE123"}, time.Hour))

		meta, ok, err := c.Get(ctx, "order-1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "DE123", meta["vat_number"])
	})

	t.Run("stored meta is a copy", func(t *testing.T) {
		src := map[string]string{"vat_number": "FR1"}
		require.NoError(t, c.Set(ctx, "order-2", src, time.Hour))
		src["vat_number"] = "changed"

		meta, _, err := c.Get(ctx, "order-2")
		require.NoError(t, err)
		meta["other"] = "x"

		again, _, err := c.Get(ctx, "order-2")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"vat_number": "FR1"}, again)
	})

	t.Run("empty meta is a hit", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "order-3", nil, time.Hour))

		meta, ok, err := c.Get(ctx, "order-3")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, meta)
	})

	t.Run("delete removes entry", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "order-4", map[string]string{"a": "b"}, time.Hour))
		require.NoError(t, c.Delete(ctx, "order-4"))

		_, ok, err := c.Get(ctx, "order-4")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestInMemoryOrderMetaCache_Expiry(t *testing.T) {
	c := NewInMemoryOrderMetaCache()
	defer c.Close()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "order-1", map[string]string{"vat_number": "DE1"}, time.Minute))
	require.NoError(t, c.Set(ctx, "order-2", map[string]string{"vat_number": "DE2"}, time.Hour))

	now = now.Add(2 * time.Minute)

	_, ok, err := c.Get(ctx, "order-1")
	require.NoError(t, err)
	assert.False(t, ok, "expired entry should miss")

	c.cleanup()
	assert.Equal(t, 1, c.Size())

	_, ok, err = c.Get(ctx, "order-2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInMemoryOrderMetaCache_CloseTwice(t *testing.T) {
	c := NewInMemoryOrderMetaCache()
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestNopOrderMetaCache(t *testing.T) {
	var c OrderMetaCache = NopOrderMetaCache{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "order-1", map[string]string{"a": "b"}, time.Hour))
	_, ok, err := c.Get(ctx, "order-1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Delete(ctx, "order-1"))
	assert.NoError(t, c.Close())
}

func TestRedisOrderMetaCache_Key(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	c := NewRedisOrderMetaCacheWithClient(client, "")
	assert.Equal(t, "vatid:order_meta:42", c.key("42"))

	custom := NewRedisOrderMetaCacheWithClient(client, "test:")
	assert.Equal(t, "test:42", custom.key("42"))
}

func TestRedisOrderMetaCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	c := NewRedisOrderMetaCacheWithClient(client, "")
	defer c.Close()

	ctx := context.Background()
	_, ok, err := c.Get(ctx, "order-1")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, c.Set(ctx, "order-1", map[string]string{"a": "b"}, time.Minute))
	assert.Error(t, c.Delete(ctx, "order-1"))
}

func TestFactory_Create(t *testing.T) {
	ctx := context.Background()
	unreachable := config.RedisConfig{Host: "127.0.0.1", Port: 1}

	t.Run("disabled returns nop", func(t *testing.T) {
		c, err := NewFactory(config.CacheConfig{Enabled: false}, unreachable).Create(ctx)
		require.NoError(t, err)
		assert.IsType(t, NopOrderMetaCache{}, c)
	})

	t.Run("memory backend", func(t *testing.T) {
		c, err := NewFactory(config.CacheConfig{Enabled: true, Backend: "memory"}, unreachable).Create(ctx)
		require.NoError(t, err)
		defer c.Close()
		assert.IsType(t, &InMemoryOrderMetaCache{}, c)
	})

	t.Run("redis unavailable falls back", func(t *testing.T) {
		f := NewFactory(config.CacheConfig{Enabled: true, Backend: "redis"}, unreachable, WithLogger(zap.NewNop()))
		c, err := f.Create(ctx)
		require.NoError(t, err)
		defer c.Close()
		assert.IsType(t, &InMemoryOrderMetaCache{}, c)
	})

	t.Run("redis unavailable without fallback", func(t *testing.T) {
		f := NewFactory(config.CacheConfig{Enabled: true, Backend: "redis"}, unreachable, WithInMemoryFallback(false))
		_, err := f.Create(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Redis required")
	})
}
