package server

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avelines/newspulse/internal/aggregation"
	"github.com/avelines/newspulse/internal/cache"
	"github.com/avelines/newspulse/internal/db"
	"github.com/avelines/newspulse/internal/models"
	"github.com/avelines/newspulse/internal/pipeline"
)

// ItemSource supplies the raw articles for a batch. The feed fetcher is
// the production implementation; tests stub it.
type ItemSource interface {
	Fetch(ctx context.Context) []models.Article
}

// BatchPublisher pushes a scored batch to downstream consumers.
type BatchPublisher interface {
	PublishBatch(batchID string, batch []models.ScoredArticle) error
}

// NewsService runs the full fetch -> dedup/score -> sort -> aggregate flow
// behind the batch cache. Store and publisher are optional; either being
// nil just skips that hand-off.
type NewsService struct {
	source    ItemSource
	pipeline  *pipeline.Pipeline
	cache     cache.Cache
	store     *db.Store
	publisher BatchPublisher
	itemLimit int
}

func NewNewsService(source ItemSource, p *pipeline.Pipeline, c cache.Cache, store *db.Store, publisher BatchPublisher, itemLimit int) *NewsService {
	return &NewsService{
		source:    source,
		pipeline:  p,
		cache:     c,
		store:     store,
		publisher: publisher,
		itemLimit: itemLimit,
	}
}

// AnalyzedFeed returns the current scored batch and its aggregate, cached
// for the configured TTL.
func (s *NewsService) AnalyzedFeed(ctx context.Context) (cache.Entry, error) {
	return s.cache.GetOrCompute(ctx, s.refresh)
}

// refresh recomputes one full batch. Collaborator hand-offs (storage,
// stream) are best effort and never fail the batch.
func (s *NewsService) refresh(ctx context.Context) (cache.Entry, error) {
	articles := s.source.Fetch(ctx)

	scored := s.pipeline.Process(ctx, articles)
	pipeline.SortByRecency(scored)
	scored = pipeline.Truncate(scored, s.itemLimit)

	stats := aggregation.Aggregate(scored)

	if s.store != nil {
		if err := s.store.StoreScoredArticles(ctx, scored); err != nil {
			slog.Warn("[NewsService] Failed to store scored batch",
				slog.String("error", err.Error()))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishBatch(uuid.NewString(), scored); err != nil {
			slog.Warn("[NewsService] Failed to publish scored batch",
				slog.String("error", err.Error()))
		}
	}

	return cache.Entry{Articles: scored, Stats: stats}, nil
}
