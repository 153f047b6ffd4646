package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/shopsmart-labs/shopsmart-backend/api/routes"
	"github.com/shopsmart-labs/shopsmart-backend/internal/cartopt"
	"github.com/shopsmart-labs/shopsmart-backend/internal/delivery"
	"github.com/shopsmart-labs/shopsmart-backend/internal/ranking"
	"github.com/shopsmart-labs/shopsmart-backend/internal/search"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/answers"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/completion"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/config"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/geo"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/logger"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/metrics"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/redis"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/retail"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	pipelineMetrics := metrics.NewPipelineMetrics(registry)

	var cache *redis.Client
	if cfg.Redis.Enabled() {
		cache, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis, continuing without cache", err)
			cache = nil
		} else {
			defer func() {
				if err := cache.Close(); err != nil {
					logg.Error(context.Background(), "error closing redis", err)
				}
			}()
		}
	}

	var suggestionClient search.SuggestionClient
	if cfg.Answers.Enabled() {
		client, err := answers.NewClient(
			cfg.Answers.APIKey,
			answers.WithBaseURL(cfg.Answers.BaseURL),
			answers.WithMaxSuggestions(cfg.Search.MaxSuggestions),
		)
		if err != nil {
			logg.Error(context.Background(), "failed to create answers client", err)
			os.Exit(1)
		}
		suggestionClient = client
	}

	var listingClient search.ListingClient
	if cfg.Retail.Enabled() {
		client, err := retail.NewClient(cfg.Retail.APIKey, retail.WithBaseURL(cfg.Retail.BaseURL))
		if err != nil {
			logg.Error(context.Background(), "failed to create retail client", err)
			os.Exit(1)
		}
		listingClient = client
	}

	var queryCompletion search.CompletionClient
	var rankCompletion ranking.CompletionClient
	if cfg.Completion.Enabled() {
		client, err := completion.NewClient(
			cfg.Completion.APIKey,
			completion.WithBaseURL(cfg.Completion.BaseURL),
			completion.WithModel(cfg.Completion.Model),
		)
		if err != nil {
			logg.Error(context.Background(), "failed to create completion client", err)
			os.Exit(1)
		}
		queryCompletion = client
		rankCompletion = client
	}

	var geocoder delivery.Geocoder
	if cfg.Geo.Enabled() {
		client, err := geo.NewClient(cfg.Geo.APIKey, geo.WithBaseURL(cfg.Geo.BaseURL))
		if err != nil {
			logg.Error(context.Background(), "failed to create geo client", err)
			os.Exit(1)
		}
		geocoder = client
	}

	var searchCache search.Cache
	var cachePinger redis.Pinger
	if cache != nil {
		searchCache = cache
		cachePinger = cache
	}

	searchService, err := search.NewService(search.ServiceParams{
		Suggestions:   suggestionClient,
		Listings:      listingClient,
		Completion:    queryCompletion,
		Cache:         searchCache,
		Logger:        logg,
		Metrics:       pipelineMetrics,
		MaxCandidates: cfg.Search.MaxCandidates,
		ResultCount:   cfg.Retail.ResultCount,
		CallDelay:     cfg.Retail.CallDelay,
		CallTimeout:   cfg.Retail.Timeout,
		CacheTTL:      cfg.Redis.CacheTTL,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create search service", err)
		os.Exit(1)
	}

	rankingService, err := ranking.NewService(ranking.ServiceParams{
		Completion:  rankCompletion,
		Logger:      logg,
		Metrics:     pipelineMetrics,
		CallTimeout: cfg.Completion.Timeout,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create ranking service", err)
		os.Exit(1)
	}

	deliveryService, err := delivery.NewService(delivery.ServiceParams{
		Geo:     geocoder,
		Logger:  logg,
		Metrics: pipelineMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create delivery service", err)
		os.Exit(1)
	}

	cartService, err := cartopt.NewService(cartopt.ServiceParams{
		Logger:  logg,
		Metrics: pipelineMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			cachePinger,
			registry,
			searchService,
			rankingService,
			deliveryService,
			cartService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
