package cache

import (
	"context"
	"sync"
	"time"
)

// entry represents a cached meta snapshot with expiration
type entry struct {
	meta      map[string]string
	expiresAt time.Time
}

// InMemoryOrderMetaCache implements OrderMetaCache using an in-memory map
// This is suitable for single-instance deployments and testing
type InMemoryOrderMetaCache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryOrderMetaCache creates a new in-memory cache
// It starts a background goroutine to clean up expired entries
func NewInMemoryOrderMetaCache() *InMemoryOrderMetaCache {
	c := &InMemoryOrderMetaCache{
		entries:  make(map[string]entry),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop(5 * time.Minute)

	return c
}

// Get returns a copy of the cached meta for an order
func (c *InMemoryOrderMetaCache) Get(_ context.Context, orderID string) (map[string]string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[orderID]
	if !exists || !c.now().Before(e.expiresAt) {
		return nil, false, nil
	}
	return cloneMeta(e.meta), true, nil
}

// Set stores a copy of meta for ttl
func (c *InMemoryOrderMetaCache) Set(_ context.Context, orderID string, meta map[string]string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[orderID] = entry{
		meta:      cloneMeta(meta),
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

// Delete removes the entry for an order
func (c *InMemoryOrderMetaCache) Delete(_ context.Context, orderID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, orderID)
	return nil
}

// Close stops the cleanup goroutine and releases resources
// Safe to call multiple times
func (c *InMemoryOrderMetaCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (c *InMemoryOrderMetaCache) cleanupLoop(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired entries from the cache
func (c *InMemoryOrderMetaCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for id, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, id)
		}
	}
}

// Size returns the number of entries in the cache (for testing/monitoring)
func (c *InMemoryOrderMetaCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ OrderMetaCache = (*InMemoryOrderMetaCache)(nil)
