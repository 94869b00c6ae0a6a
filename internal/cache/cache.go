// Package cache memoizes the most recent scored batch and its aggregate
// for a fixed time window.
package cache

import (
	"context"
	"time"

	"github.com/avelines/newspulse/internal/models"
)

// Entry is one cached batch: the scored articles, their aggregate, and the
// wall-clock expiry. Replaced wholesale on recompute.
type Entry struct {
	Articles  []models.ScoredArticle `json:"articles"`
	Stats     models.AggregateStats  `json:"stats"`
	ExpiresAt time.Time              `json:"expires_at"`
}

// ComputeFunc produces a fresh entry; the cache fills in ExpiresAt.
type ComputeFunc func(ctx context.Context) (Entry, error)

// Cache serves the cached entry while it is fresh and recomputes through
// compute once it expired. Overlapping recomputes may race; last writer
// wins, both results are valid.
type Cache interface {
	GetOrCompute(ctx context.Context, compute ComputeFunc) (Entry, error)
}
