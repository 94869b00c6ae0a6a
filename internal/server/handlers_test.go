package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelines/newspulse/internal/cache"
	"github.com/avelines/newspulse/internal/models"
)

type stubFeedProvider struct {
	entry cache.Entry
	err   error
}

func (s *stubFeedProvider) AnalyzedFeed(ctx context.Context) (cache.Entry, error) {
	return s.entry, s.err
}

func sampleEntry() cache.Entry {
	score := 0.42
	confidence := 0.8
	return cache.Entry{
		Articles: []models.ScoredArticle{{
			Article: models.Article{
				Title: "Ceasefire holds",
				Link:  "https://example.com/ceasefire",
			},
			ScoreResult: models.ScoreResult{
				SentimentScore: &score,
				Confidence:     &confidence,
				ScoreSource:    models.ScoreSourceLexicon,
			},
		}},
		Stats: models.AggregateStats{Count: 1, AvgScore: 0.42},
	}
}

func doRequest(t *testing.T, handler echo.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	return rec
}

func TestGetNews(t *testing.T) {
	h := NewHandler(&stubFeedProvider{entry: sampleEntry()})

	rec := doRequest(t, h.GetNews, "/api/news")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Articles []models.ScoredArticle `json:"articles"`
		Stats    models.AggregateStats  `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Articles, 1)
	assert.Equal(t, "Ceasefire holds", body.Articles[0].Title)
	assert.Equal(t, 1, body.Stats.Count)
}

func TestGetNewsError(t *testing.T) {
	h := NewHandler(&stubFeedProvider{err: fmt.Errorf("sources unavailable")})

	rec := doRequest(t, h.GetNews, "/api/news")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to load news sources")
}

func TestGetTrends(t *testing.T) {
	h := NewHandler(&stubFeedProvider{entry: sampleEntry()})

	rec := doRequest(t, h.GetTrends, "/api/trends")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ceasefire")
}

func TestGetHealth(t *testing.T) {
	h := NewHandler(&stubFeedProvider{})

	rec := doRequest(t, h.GetHealth, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
