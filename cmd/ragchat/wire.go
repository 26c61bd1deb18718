package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ragchat/internal/config"
	"ragchat/internal/domain"
	"ragchat/internal/fetch"
	"ragchat/internal/logging"
	"ragchat/internal/metrics"
	"ragchat/internal/retriever"
	"ragchat/internal/search"
	"ragchat/internal/service"
	"ragchat/internal/session"
	"ragchat/internal/summarizer"
)

type app struct {
	cfg     *config.AppConfig
	logger  *zap.Logger
	metrics *metrics.Metrics
	service *service.RAGServiceImpl
}

func loadConfig(path string) (*config.AppConfig, error) {
	if path == "" {
		cfg, _, err := config.LoadDefault()
		return cfg, err
	}
	return config.Load(path)
}

// buildApp assembles the components named in the config. overrides run
// after loading, before anything is constructed.
func buildApp(ctx context.Context, cfgPath string, overrides ...func(*config.AppConfig)) (*app, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	for _, o := range overrides {
		o(cfg)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	store := session.NewStore()
	m := metrics.New(store.Len)

	var enricher search.Enricher
	if cfg.Fetch.Enabled {
		enricher = fetch.New(cfg.Fetch, logger, m)
	}
	provider := search.New(ctx, cfg.Search, enricher, logger, m)

	var sum domain.Summarizer
	switch cfg.Summarizer.Type {
	case "extractive", "":
		sum = summarizer.NewExtractiveSummarizer(summarizer.WithQueryBoost(cfg.Summarizer.QueryBoost))
	default:
		return nil, fmt.Errorf("unknown summarizer: %s", cfg.Summarizer.Type)
	}

	svc := service.NewRAGService(provider, sum, store, retriever.New(), service.Options{
		DefaultLimit:        cfg.Search.DefaultLimit,
		MaxSentences:        cfg.Summarizer.MaxSentences,
		MergeSessionSources: cfg.Chat.MergeSessionSources,
		MaxMergedSources:    cfg.Chat.MaxMergedSources,
		MinSimilarity:       cfg.Chat.MinSimilarity,
	}, logger, m)

	return &app{cfg: cfg, logger: logger, metrics: m, service: svc}, nil
}
