package cache

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vatid/backend/internal/infrastructure/config"
)

// Factory creates order meta caches based on configuration
type Factory struct {
	cacheConfig           config.CacheConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache when Redis is unavailable
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory
func NewFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		cacheConfig:           cacheCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Create returns the cache selected by configuration.
// A disabled cache is a NopOrderMetaCache.
func (f *Factory) Create(ctx context.Context) (OrderMetaCache, error) {
	if !f.cacheConfig.Enabled {
		return NopOrderMetaCache{}, nil
	}

	if f.cacheConfig.Backend != "redis" {
		f.logger.Info("using in-memory order meta cache")
		return NewInMemoryOrderMetaCache(), nil
	}

	c, err := NewRedisOrderMetaCache(ctx, RedisConfig{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err == nil {
		f.logger.Info("using Redis order meta cache", zap.String("addr", f.redisConfig.Addr()))
		return c, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for order meta cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory order meta cache",
		zap.Error(err),
	)
	return NewInMemoryOrderMetaCache(), nil
}
