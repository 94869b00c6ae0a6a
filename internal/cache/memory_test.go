package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelines/newspulse/internal/models"
)

// countingCompute returns a different batch on every invocation, so a test
// can tell a cached read from a recompute.
type countingCompute struct {
	calls int
}

func (c *countingCompute) compute(ctx context.Context) (Entry, error) {
	c.calls++
	title := fmt.Sprintf("batch-%d", c.calls)
	score := float64(c.calls)
	return Entry{
		Articles: []models.ScoredArticle{{
			Article:     models.Article{Title: title, Link: "https://example.com/" + title},
			ScoreResult: models.ScoreResult{SentimentScore: &score},
		}},
		Stats: models.AggregateStats{Count: 1, AvgScore: score},
	}, nil
}

func TestMemoryCacheServesWithinTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewMemoryCache(10*time.Minute, clock)
	source := &countingCompute{}

	first, err := c.GetOrCompute(context.Background(), source.compute)
	require.NoError(t, err)

	clock.Advance(5 * time.Minute)

	// The underlying data has "changed" (compute would return batch-2),
	// but the cached slot still serves the original batch.
	second, err := c.GetOrCompute(context.Background(), source.compute)
	require.NoError(t, err)

	assert.Equal(t, 1, source.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, "batch-1", second.Articles[0].Title)
}

func TestMemoryCacheRecomputesAfterExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewMemoryCache(10*time.Minute, clock)
	source := &countingCompute{}

	_, err := c.GetOrCompute(context.Background(), source.compute)
	require.NoError(t, err)

	clock.Advance(11 * time.Minute)

	refreshed, err := c.GetOrCompute(context.Background(), source.compute)
	require.NoError(t, err)

	assert.Equal(t, 2, source.calls)
	assert.Equal(t, "batch-2", refreshed.Articles[0].Title)
}

func TestMemoryCacheComputeErrorNotCached(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewMemoryCache(10*time.Minute, clock)

	calls := 0
	failing := func(ctx context.Context) (Entry, error) {
		calls++
		return Entry{}, fmt.Errorf("fetch exploded")
	}

	_, err := c.GetOrCompute(context.Background(), failing)
	require.Error(t, err)

	_, err = c.GetOrCompute(context.Background(), failing)
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestMemoryCacheSetsExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewMemoryCache(10*time.Minute, clock)
	source := &countingCompute{}

	entry, err := c.GetOrCompute(context.Background(), source.compute)
	require.NoError(t, err)

	assert.Equal(t, clock.Now().Add(10*time.Minute), entry.ExpiresAt)
}
