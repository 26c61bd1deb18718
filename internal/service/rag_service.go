package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"ragchat/internal/domain"
	"ragchat/internal/metrics"
)

// SourceRanker picks the documents most similar to a query.
type SourceRanker interface {
	Relevant(query string, docs []domain.Document, topK int, minScore float64) ([]domain.Document, error)
}

// Options tunes the orchestration.
type Options struct {
	DefaultLimit        int
	MaxSentences        int
	MergeSessionSources bool
	MaxMergedSources    int
	MinSimilarity       float64
}

type RAGServiceImpl struct {
	provider   domain.SearchProvider
	summarizer domain.Summarizer
	store      domain.SessionStore
	ranker     SourceRanker
	opts       Options
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

var _ domain.RAGService = (*RAGServiceImpl)(nil)

func NewRAGService(provider domain.SearchProvider, summarizer domain.Summarizer, store domain.SessionStore, ranker SourceRanker, opts Options, logger *zap.Logger, m *metrics.Metrics) *RAGServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 6
	}
	return &RAGServiceImpl{
		provider:   provider,
		summarizer: summarizer,
		store:      store,
		ranker:     ranker,
		opts:       opts,
		logger:     logger,
		metrics:    m,
	}
}

// Ask searches, summarizes and opens a new session seeded with the exchange.
func (s *RAGServiceImpl) Ask(ctx context.Context, query string) (res domain.AskResult, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveRequest("ask", start, err) }()

	q := strings.TrimSpace(query)
	if q == "" {
		return domain.AskResult{}, domain.ErrInvalidQuery
	}
	docs, err := s.provider.Search(ctx, q, s.opts.DefaultLimit)
	if err != nil {
		return domain.AskResult{}, fmt.Errorf("search %q: %w", q, err)
	}
	answer := s.summarizer.Summarize(q, docs, s.opts.MaxSentences)

	id, err := s.store.Create([]domain.Turn{domain.UserTurn(q), domain.BotTurn(answer)}, docs)
	if err != nil {
		return domain.AskResult{}, fmt.Errorf("create session: %w", err)
	}
	s.logger.Info("ask answered",
		zap.String("session_id", id),
		zap.String("provider", s.provider.Name()),
		zap.Int("sources", len(docs)),
		zap.Duration("took", time.Since(start)))

	return domain.AskResult{Answer: answer, Sources: domain.SourcesOf(docs), SessionID: id}, nil
}

// Chat answers a follow-up inside an existing session.
func (s *RAGServiceImpl) Chat(ctx context.Context, sessionID, query string) (res domain.ChatResult, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveRequest("chat", start, err) }()

	q := strings.TrimSpace(query)
	if q == "" {
		return domain.ChatResult{}, domain.ErrInvalidQuery
	}
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return domain.ChatResult{}, domain.ErrMissingSession
	}
	sources, err := s.store.Sources(id)
	if err != nil {
		return domain.ChatResult{}, err
	}

	answer, path, err := s.answerFollowUp(ctx, q, sources)
	if err != nil {
		return domain.ChatResult{}, err
	}
	if err := s.store.Append(id, domain.UserTurn(q), domain.BotTurn(answer)); err != nil {
		return domain.ChatResult{}, err
	}
	s.logger.Info("chat answered",
		zap.String("session_id", id),
		zap.String("path", path),
		zap.Duration("took", time.Since(start)))

	return domain.ChatResult{Answer: answer, SessionID: id}, nil
}

// History returns the transcript of a session, oldest turn first.
func (s *RAGServiceImpl) History(sessionID string) ([]domain.Turn, error) {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return nil, domain.ErrMissingSession
	}
	return s.store.History(id)
}

func (s *RAGServiceImpl) answerFollowUp(ctx context.Context, q string, sources []domain.Document) (string, string, error) {
	if a, b, ok := detectTwoLinks(q); ok && inRange(a, sources) && inRange(b, sources) {
		return s.compareSources(q, a, b, sources), "compare", nil
	}
	if idx, ok := detectLinkIndex(q); ok && inRange(idx, sources) {
		return s.summarizer.Summarize(q, []domain.Document{withBody(sources[idx-1])}, s.opts.MaxSentences), "link", nil
	}

	docs, err := s.provider.Search(ctx, q, s.opts.DefaultLimit)
	if err != nil {
		return "", "", fmt.Errorf("search %q: %w", q, err)
	}
	if s.opts.MergeSessionSources && s.ranker != nil && s.opts.MaxMergedSources > 0 {
		related, err := s.ranker.Relevant(q, sources, s.opts.MaxMergedSources, s.opts.MinSimilarity)
		if err != nil {
			s.logger.Warn("ranking session sources failed", zap.Error(err))
		}
		docs = mergeByURL(docs, related)
	}
	return s.summarizer.Summarize(q, docs, s.opts.MaxSentences), "search", nil
}

func (s *RAGServiceImpl) compareSources(q string, a, b int, sources []domain.Document) string {
	parts := make([]string, 0, 2)
	for _, idx := range []int{a, b} {
		doc := sources[idx-1]
		summary := s.summarizer.Summarize(q, []domain.Document{withBody(doc)}, s.opts.MaxSentences)
		parts = append(parts, fmt.Sprintf("Source #%d (%s): %s", idx, doc.Title, summary))
	}
	return strings.Join(parts, "\n\n")
}

func inRange(idx int, sources []domain.Document) bool {
	return idx >= 1 && idx <= len(sources)
}

// withBody falls back to the snippet for documents that never got a body.
func withBody(d domain.Document) domain.Document {
	if strings.TrimSpace(d.Body) == "" {
		d.Body = d.Snippet
	}
	return d
}

func mergeByURL(primary, extra []domain.Document) []domain.Document {
	if len(extra) == 0 {
		return primary
	}
	seen := make(map[string]bool, len(primary)+len(extra))
	out := make([]domain.Document, 0, len(primary)+len(extra))
	for _, group := range [][]domain.Document{primary, extra} {
		for _, d := range group {
			if d.URL != "" {
				if seen[d.URL] {
					continue
				}
				seen[d.URL] = true
			}
			out = append(out, d)
		}
	}
	return out
}
