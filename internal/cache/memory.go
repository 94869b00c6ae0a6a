package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/avelines/newspulse/internal/metrics"
)

// MemoryCache is the process-local single-slot cache. Reads before expiry
// return the slot as-is; reads after expiry recompute and overwrite it.
// Compute runs outside the lock, so two callers hitting an expired slot
// both recompute and the last write wins.
type MemoryCache struct {
	mu    sync.RWMutex
	slot  *Entry
	ttl   time.Duration
	clock clockwork.Clock
}

func NewMemoryCache(ttl time.Duration, clock clockwork.Clock) *MemoryCache {
	return &MemoryCache{ttl: ttl, clock: clock}
}

func (c *MemoryCache) GetOrCompute(ctx context.Context, compute ComputeFunc) (Entry, error) {
	c.mu.RLock()
	if c.slot != nil && c.clock.Now().Before(c.slot.ExpiresAt) {
		entry := *c.slot
		c.mu.RUnlock()
		metrics.CacheReadsTotal.WithLabelValues("hit").Inc()
		return entry, nil
	}
	c.mu.RUnlock()

	metrics.CacheReadsTotal.WithLabelValues("miss").Inc()

	entry, err := compute(ctx)
	if err != nil {
		return Entry{}, err
	}
	entry.ExpiresAt = c.clock.Now().Add(c.ttl)

	c.mu.Lock()
	c.slot = &entry
	c.mu.Unlock()

	return entry, nil
}
