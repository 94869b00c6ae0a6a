package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/avelines/newspulse/internal/metrics"
)

const defaultValkeyKey = "newspulse:analyzed_feed"

// ValkeyCache keeps the cached batch in Valkey under a single key with a
// server-side TTL, so the cache survives restarts and is shared across
// replicas. Same last-writer-wins contract as the memory cache.
type ValkeyCache struct {
	client valkey.Client
	key    string
	ttl    time.Duration
}

func NewValkeyCache(client valkey.Client, ttl time.Duration) *ValkeyCache {
	return &ValkeyCache{client: client, key: defaultValkeyKey, ttl: ttl}
}

func (c *ValkeyCache) GetOrCompute(ctx context.Context, compute ComputeFunc) (Entry, error) {
	res := c.client.Do(ctx, c.client.B().Get().Key(c.key).Build())
	if data, err := res.AsBytes(); err == nil {
		var entry Entry
		if err := json.Unmarshal(data, &entry); err == nil {
			metrics.CacheReadsTotal.WithLabelValues("hit").Inc()
			return entry, nil
		}
		slog.Warn("[ValkeyCache] Dropping undecodable cache entry",
			slog.String("key", c.key))
	}

	metrics.CacheReadsTotal.WithLabelValues("miss").Inc()

	entry, err := compute(ctx)
	if err != nil {
		return Entry{}, err
	}
	entry.ExpiresAt = time.Now().Add(c.ttl)

	// Store is best effort; a failed write just means the next read
	// recomputes again.
	data, err := json.Marshal(entry)
	if err != nil {
		slog.Error("[ValkeyCache] Failed to encode cache entry",
			slog.String("error", err.Error()))
		return entry, nil
	}
	setCmd := c.client.B().Set().Key(c.key).Value(string(data)).Ex(c.ttl).Build()
	if err := c.client.Do(ctx, setCmd).Error(); err != nil {
		slog.Warn("[ValkeyCache] Failed to store cache entry",
			slog.String("key", c.key),
			slog.String("error", err.Error()))
	}

	return entry, nil
}
