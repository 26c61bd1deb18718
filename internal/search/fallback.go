package search

import (
	"context"

	"go.uber.org/zap"

	"ragchat/internal/domain"
	"ragchat/internal/metrics"
)

// Fallback answers from secondary whenever primary fails.
type Fallback struct {
	primary   domain.SearchProvider
	secondary domain.SearchProvider
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

func NewFallback(primary, secondary domain.SearchProvider, logger *zap.Logger, m *metrics.Metrics) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{primary: primary, secondary: secondary, logger: logger, metrics: m}
}

func (f *Fallback) Name() string { return f.primary.Name() + "+" + f.secondary.Name() }

func (f *Fallback) Search(ctx context.Context, query string, limit int) ([]domain.Document, error) {
	docs, err := f.primary.Search(ctx, query, limit)
	if err == nil {
		return docs, nil
	}
	f.logger.Warn("live search failed, using mock results",
		zap.String("provider", f.primary.Name()),
		zap.String("query", query),
		zap.Error(err))
	f.metrics.SearchFallback()
	return f.secondary.Search(ctx, query, limit)
}
