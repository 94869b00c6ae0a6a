package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avelines/newspulse/internal/cache"
	"github.com/avelines/newspulse/internal/trends"
)

// FeedProvider is what the handlers need from the service layer.
type FeedProvider interface {
	AnalyzedFeed(ctx context.Context) (cache.Entry, error)
}

type Handler struct {
	feed FeedProvider
}

func NewHandler(feed FeedProvider) *Handler {
	return &Handler{feed: feed}
}

func (h *Handler) GetNews(c echo.Context) error {
	entry, err := h.feed.AnalyzedFeed(c.Request().Context())
	if err != nil {
		slog.Error("[Server] Failed to load analyzed feed",
			slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to load news sources",
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"articles": entry.Articles,
		"stats":    entry.Stats,
	})
}

func (h *Handler) GetTrends(c echo.Context) error {
	entry, err := h.feed.AnalyzedFeed(c.Request().Context())
	if err != nil {
		slog.Error("[Server] Failed to load analyzed feed",
			slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to load news sources",
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"trends": trends.TopTerms(entry.Articles, trends.DefaultTopK),
	})
}

func (h *Handler) GetHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
