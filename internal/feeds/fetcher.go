// Package feeds fetches the configured syndication sources and turns their
// items into raw articles for the scoring pipeline.
package feeds

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/avelines/newspulse/internal/models"
)

const (
	DefaultRecencyWindow = 7 * 24 * time.Hour
	DefaultPerFeedLimit  = 25
)

// Source is one configured syndication feed.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type Fetcher struct {
	parser        *gofeed.Parser
	sources       []Source
	recencyWindow time.Duration
	perFeedLimit  int
	now           func() time.Time
}

func NewFetcher(sources []Source, recencyWindow time.Duration, perFeedLimit int) *Fetcher {
	if recencyWindow <= 0 {
		recencyWindow = DefaultRecencyWindow
	}
	if perFeedLimit <= 0 {
		perFeedLimit = DefaultPerFeedLimit
	}
	return &Fetcher{
		parser:        gofeed.NewParser(),
		sources:       sources,
		recencyWindow: recencyWindow,
		perFeedLimit:  perFeedLimit,
		now:           time.Now,
	}
}

// Fetch pulls every configured source. Sources fail independently: a feed
// that cannot be fetched or parsed yields zero items and a log line, never
// a batch failure.
func (f *Fetcher) Fetch(ctx context.Context) []models.Article {
	var articles []models.Article

	for _, source := range f.sources {
		feed, err := f.parser.ParseURLWithContext(source.URL, ctx)
		if err != nil {
			slog.Error("[Fetcher] Failed to fetch source, skipping",
				slog.String("source", source.Name),
				slog.String("url", source.URL),
				slog.String("error", err.Error()))
			continue
		}

		sourceName := source.Name
		if sourceName == "" {
			sourceName = feed.Title
		}

		kept := 0
		for _, item := range feed.Items {
			if kept >= f.perFeedLimit {
				break
			}
			if !f.isRecent(item.PublishedParsed) {
				continue
			}
			articles = append(articles, f.toArticle(sourceName, item))
			kept++
		}

		slog.Info("[Fetcher] Source fetched",
			slog.String("source", sourceName),
			slog.Int("items", kept))
	}

	return articles
}

func (f *Fetcher) toArticle(sourceName string, item *gofeed.Item) models.Article {
	var pubDate *time.Time
	if item.PublishedParsed != nil {
		t := *item.PublishedParsed
		pubDate = &t
	}

	return models.Article{
		ContentID:    models.GenerateContentID(item.Title, sourceName, item.Link),
		Source:       sourceName,
		Title:        item.Title,
		Link:         item.Link,
		PubDate:      pubDate,
		CombinedText: CombinedText(item.Title, item.Description),
	}
}

// isRecent keeps items published within the recency window, rejecting
// missing and future-dated timestamps.
func (f *Fetcher) isRecent(published *time.Time) bool {
	if published == nil {
		return false
	}
	now := f.now()
	return !published.After(now) && published.After(now.Add(-f.recencyWindow))
}
