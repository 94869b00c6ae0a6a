// Package pipeline scores deduplicated article batches in bounded
// concurrent waves, tolerating per-item failure.
package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avelines/newspulse/internal/metrics"
	"github.com/avelines/newspulse/internal/models"
)

// DefaultChunkSize bounds the external-call fan-out per wave.
const DefaultChunkSize = 8

// Scorer scores a single text. Implementations must never panic the batch;
// the pipeline recovers per-item panics regardless.
type Scorer interface {
	Classify(ctx context.Context, text string) models.ScoreResult
}

type Pipeline struct {
	scorer    Scorer
	chunkSize int
}

func New(scorer Scorer, chunkSize int) *Pipeline {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Pipeline{scorer: scorer, chunkSize: chunkSize}
}

// Process dedups the batch, scores it chunk by chunk, and returns one
// ScoredArticle per deduplicated input in the dedup order. Items whose
// scoring step failed stay in the output with nil score fields. Waves run
// sequentially; concurrency exists only within a wave, so at most chunkSize
// external calls are outstanding at any instant.
func (p *Pipeline) Process(ctx context.Context, articles []models.Article) []models.ScoredArticle {
	batchID := uuid.NewString()
	start := time.Now()

	deduped := Dedup(articles)

	// Results land at their original index, not in completion order.
	results := make([]models.ScoredArticle, len(deduped))

	for waveStart := 0; waveStart < len(deduped); waveStart += p.chunkSize {
		waveEnd := waveStart + p.chunkSize
		if waveEnd > len(deduped) {
			waveEnd = len(deduped)
		}

		var wg sync.WaitGroup
		for i := waveStart; i < waveEnd; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				results[idx] = p.scoreOne(ctx, deduped[idx])
			}(i)
		}
		wg.Wait()
	}

	metrics.ItemsScoredTotal.Add(float64(len(results)))
	slog.Info("[Pipeline] Batch scored",
		slog.String("batch_id", batchID),
		slog.Int("raw_items", len(articles)),
		slog.Int("scored_items", len(results)),
		slog.Duration("elapsed", time.Since(start)))

	return results
}

// scoreOne isolates a single item's scoring step. A panic leaves the item
// in the batch with nil score fields instead of aborting its siblings.
func (p *Pipeline) scoreOne(ctx context.Context, article models.Article) (out models.ScoredArticle) {
	out.Article = article
	defer func() {
		if r := recover(); r != nil {
			metrics.ScoreFailuresTotal.Inc()
			out.ScoreResult = models.ScoreResult{}
			slog.Error("[Pipeline] Scoring failed, keeping item with empty score",
				slog.String("content_id", article.ContentID),
				slog.Any("panic", r))
		}
	}()
	out.ScoreResult = p.scorer.Classify(ctx, article.CombinedText)
	return out
}

// Dedup keeps the first occurrence per dedup key, preserving first-seen
// order.
func Dedup(articles []models.Article) []models.Article {
	seen := make(map[string]struct{}, len(articles))
	deduped := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		key := a.DedupKey()
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, a)
	}
	return deduped
}

// SortByRecency orders scored articles newest first; items without a
// publication date sink to the end. Stable, applied once after reassembly.
func SortByRecency(articles []models.ScoredArticle) {
	sort.SliceStable(articles, func(i, j int) bool {
		pi, pj := articles[i].PubDate, articles[j].PubDate
		switch {
		case pi == nil:
			return false
		case pj == nil:
			return true
		default:
			return pi.After(*pj)
		}
	})
}

// Truncate keeps at most limit items; limit <= 0 keeps everything.
func Truncate(articles []models.ScoredArticle, limit int) []models.ScoredArticle {
	if limit <= 0 || len(articles) <= limit {
		return articles
	}
	return articles[:limit]
}
