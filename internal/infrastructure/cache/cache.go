// Package cache holds read-through caches for order meta data.
package cache

import (
	"context"
	"maps"
	"time"
)

// OrderMetaCache stores a snapshot of an order's meta data keyed by order ID.
// A miss is reported with ok=false and a nil error.
type OrderMetaCache interface {
	Get(ctx context.Context, orderID string) (meta map[string]string, ok bool, err error)
	Set(ctx context.Context, orderID string, meta map[string]string, ttl time.Duration) error
	Delete(ctx context.Context, orderID string) error
	Close() error
}

// NopOrderMetaCache never stores anything
type NopOrderMetaCache struct{}

func (NopOrderMetaCache) Get(context.Context, string) (map[string]string, bool, error) {
	return nil, false, nil
}

func (NopOrderMetaCache) Set(context.Context, string, map[string]string, time.Duration) error {
	return nil
}

func (NopOrderMetaCache) Delete(context.Context, string) error { return nil }

func (NopOrderMetaCache) Close() error { return nil }

func cloneMeta(meta map[string]string) map[string]string {
	if meta == nil {
		return map[string]string{}
	}
	return maps.Clone(meta)
}

var _ OrderMetaCache = NopOrderMetaCache{}
