package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/avelines/newspulse/config"
	"github.com/avelines/newspulse/internal/cache"
	"github.com/avelines/newspulse/internal/clients"
	"github.com/avelines/newspulse/internal/db"
	"github.com/avelines/newspulse/internal/feeds"
	"github.com/avelines/newspulse/internal/logging"
	"github.com/avelines/newspulse/internal/pipeline"
	"github.com/avelines/newspulse/internal/scoring"
	"github.com/avelines/newspulse/internal/server"
)

func main() {
	logging.InitLogger()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	config.LoadEnv(env)

	cfg := config.FromEnv()

	sources, err := config.LoadSources(cfg.SourcesFile)
	if err != nil {
		slog.Error("[Main] Failed to load feed sources",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewRealClock()

	budget := scoring.NewCallBudget(cfg.MaxExternalCalls, cfg.ExternalCallWindow, clock)
	budget.Start(ctx)

	var external scoring.ExternalScorer
	if openAIClient := clients.NewOpenAIClient(cfg.OpenAIAPIKey); openAIClient != nil {
		external = scoring.NewOpenAIScorer(openAIClient, cfg.OpenAIModel)
	}
	classifier := scoring.NewClassifier(external, budget, cfg.MinEscalationLength)

	fetcher := feeds.NewFetcher(sources, cfg.RecencyWindow, cfg.PerFeedLimit)
	batchPipeline := pipeline.New(classifier, cfg.ChunkSize)

	var batchCache cache.Cache = cache.NewMemoryCache(cfg.CacheTTL, clock)
	if cfg.ValkeyAddr != "" {
		valkeyClient, err := clients.NewValkeyClient(cfg.ValkeyAddr, cfg.ValkeyPassword, cfg.ValkeyTLS)
		if err != nil {
			slog.Warn("[Main] Valkey unavailable, using in-memory cache",
				slog.String("error", err.Error()))
		} else {
			defer valkeyClient.Close()
			batchCache = cache.NewValkeyCache(valkeyClient, cfg.CacheTTL)
		}
	}

	var store *db.Store
	if cfg.DynamoTable != "" {
		dynamoClient, err := clients.NewDynamoDBClient(ctx, cfg.AWSRegion, cfg.AWSEndpoint)
		if err != nil {
			slog.Warn("[Main] DynamoDB unavailable, storage disabled",
				slog.String("error", err.Error()))
		} else {
			store = db.NewStore(dynamoClient, cfg.DynamoTable)
		}
	}

	var publisher server.BatchPublisher
	if cfg.KafkaBroker != "" {
		kafkaPublisher, err := clients.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
		if err != nil {
			slog.Warn("[Main] Kafka unavailable, batch publishing disabled",
				slog.String("error", err.Error()))
		} else {
			defer kafkaPublisher.Close()
			publisher = kafkaPublisher
		}
	}

	service := server.NewNewsService(fetcher, batchPipeline, batchCache, store, publisher, cfg.ItemLimit)
	srv := server.New(server.NewHandler(service), cfg.Port)

	go func() {
		slog.Info("[Main] Server starting", slog.Int("port", cfg.Port))
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server failed", slog.String("error", err.Error()))
			cancel()
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		slog.Info("[Main] Shutdown signal received")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Graceful shutdown failed", slog.String("error", err.Error()))
	}
	slog.Info("[Main] Server stopped")
}
