package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces order meta keys in Redis
const DefaultKeyPrefix = "vatid:order_meta:"

// RedisOrderMetaCache implements OrderMetaCache using Redis
// This is suitable for distributed deployments where multiple instances
// need to share cached order meta
type RedisOrderMetaCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisOrderMetaCache connects to Redis and verifies the connection
func NewRedisOrderMetaCache(ctx context.Context, cfg RedisConfig) (*RedisOrderMetaCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisOrderMetaCacheWithClient(client, ""), nil
}

// NewRedisOrderMetaCacheWithClient creates a cache with an existing Redis client
func NewRedisOrderMetaCacheWithClient(client *redis.Client, keyPrefix string) *RedisOrderMetaCache {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &RedisOrderMetaCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (c *RedisOrderMetaCache) key(orderID string) string {
	return c.keyPrefix + orderID
}

// Get loads the cached meta for an order
func (c *RedisOrderMetaCache) Get(ctx context.Context, orderID string) (map[string]string, bool, error) {
	raw, err := c.client.Get(ctx, c.key(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read order meta from cache: %w", err)
	}

	meta := map[string]string{}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached order meta: %w", err)
	}
	return meta, true, nil
}

// Set stores meta as a JSON object for ttl
func (c *RedisOrderMetaCache) Set(ctx context.Context, orderID string, meta map[string]string, ttl time.Duration) error {
	raw, err := json.Marshal(cloneMeta(meta))
	if err != nil {
		return fmt.Errorf("failed to encode order meta: %w", err)
	}
	if err := c.client.Set(ctx, c.key(orderID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write order meta to cache: %w", err)
	}
	return nil
}

// Delete removes the cached meta for an order
func (c *RedisOrderMetaCache) Delete(ctx context.Context, orderID string) error {
	if err := c.client.Del(ctx, c.key(orderID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cached order meta: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisOrderMetaCache) Close() error {
	return c.client.Close()
}

var _ OrderMetaCache = (*RedisOrderMetaCache)(nil)
