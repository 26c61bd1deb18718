// Package search provides the web search backends used to gather documents.
package search

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"ragchat/internal/config"
	"ragchat/internal/domain"
	"ragchat/internal/metrics"
)

// Provider is the search backend seen by the orchestrators.
type Provider = domain.SearchProvider

// Enricher replaces snippet bodies with full article text.
type Enricher interface {
	Enrich(ctx context.Context, docs []domain.Document) []domain.Document
}

var placeholderKeys = map[string]bool{
	"changeme":    true,
	"change_me":   true,
	"replace_me":  true,
	"replaceme":   true,
	"none":        true,
	"null":        true,
	"test":        true,
	"dummy":       true,
	"placeholder": true,
	"api_key":     true,
	"apikey":      true,
	"your_key":    true,
}

// IsPlaceholderKey reports whether key is empty or an obvious template value.
func IsPlaceholderKey(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" || placeholderKeys[k] {
		return true
	}
	if strings.HasPrefix(k, "your_") || strings.HasPrefix(k, "your-") {
		return true
	}
	if strings.HasPrefix(k, "<") && strings.HasSuffix(k, ">") {
		return true
	}
	return strings.Trim(k, "x") == ""
}

// New picks the provider once from configuration. It never fails: any
// condition that rules out live search yields the mock provider.
func New(ctx context.Context, cfg config.SearchConfig, enricher Enricher, logger *zap.Logger, m *metrics.Metrics) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	mock := NewMock()

	switch strings.ToLower(cfg.Type) {
	case "mock":
		logger.Info("search provider selected", zap.String("provider", mock.Name()))
		return mock
	case "serpapi", "auto", "":
	default:
		logger.Warn("unknown search type, using mock", zap.String("type", cfg.Type))
		return mock
	}

	key := cfg.ResolveAPIKey()
	if IsPlaceholderKey(key) {
		logger.Info("no usable search API key, using mock", zap.String("env", cfg.APIKeyEnv))
		return mock
	}

	live := NewSerpAPI(cfg, key, logger)
	if cfg.HealthCheck {
		probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		_, err := live.Search(probeCtx, "health check", 1)
		cancel()
		if err != nil {
			logger.Warn("search health check failed, using mock", zap.Error(err))
			return mock
		}
	}

	var primary Provider = live
	if enricher != nil {
		primary = &Enriched{inner: live, enricher: enricher}
	}
	logger.Info("search provider selected", zap.String("provider", live.Name()), zap.Bool("enrich", enricher != nil))
	return NewFallback(primary, mock, logger, m)
}

// Enriched decorates a provider with article extraction.
type Enriched struct {
	inner    Provider
	enricher Enricher
}

func NewEnriched(inner Provider, enricher Enricher) *Enriched {
	return &Enriched{inner: inner, enricher: enricher}
}

func (e *Enriched) Name() string { return e.inner.Name() }

func (e *Enriched) Search(ctx context.Context, query string, limit int) ([]domain.Document, error) {
	docs, err := e.inner.Search(ctx, query, limit)
	if err != nil || len(docs) == 0 {
		return docs, err
	}
	return e.enricher.Enrich(ctx, docs), nil
}
