// Package fetch downloads result pages and extracts their readable text.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ragchat/internal/config"
	"ragchat/internal/domain"
	"ragchat/internal/metrics"
)

var (
	ErrEmptyArticle = errors.New("no readable content")
	ErrNotHTML      = errors.New("not an html page")
)

// minReadBytes floors the per-page read budget so small max_chars values
// still leave room for markup around the article.
const minReadBytes = 1 << 20

type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxChars    int
	concurrency int
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

func New(cfg config.FetchConfig, logger *zap.Logger, m *metrics.Metrics) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Fetcher{
		client:      &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
		userAgent:   cfg.UserAgent,
		maxChars:    cfg.MaxChars,
		concurrency: concurrency,
		logger:      logger,
		metrics:     m,
	}
}

// Article downloads link and returns its main text with whitespace collapsed,
// truncated to the configured character budget.
func (f *Fetcher) Article(ctx context.Context, link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid url %q", link)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", err
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", link, resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !isHTML(ct) {
		return "", fmt.Errorf("fetch %s: %w (%s)", link, ErrNotHTML, ct)
	}

	article, err := readability.FromReader(io.LimitReader(resp.Body, f.readLimit()), u)
	if err != nil {
		return "", fmt.Errorf("readability %s: %w", link, err)
	}
	text := strings.Join(strings.Fields(article.TextContent), " ")
	if text == "" {
		return "", ErrEmptyArticle
	}
	return truncate(text, f.maxChars), nil
}

// Enrich replaces each document's body with the extracted article text.
// Documents whose page cannot be fetched keep their existing body. Order is preserved.
func (f *Fetcher) Enrich(ctx context.Context, docs []domain.Document) []domain.Document {
	out := make([]domain.Document, len(docs))
	copy(out, docs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i := range out {
		if out[i].URL == "" {
			continue
		}
		i := i
		g.Go(func() error {
			text, err := f.Article(gctx, out[i].URL)
			if err != nil {
				f.metrics.Fetch(false)
				f.logger.Debug("article fetch failed", zap.String("url", out[i].URL), zap.Error(err))
				return nil
			}
			f.metrics.Fetch(true)
			out[i].Body = text
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (f *Fetcher) readLimit() int64 {
	n := int64(f.maxChars) * 32
	if n < minReadBytes {
		n = minReadBytes
	}
	return n
}

func isHTML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "text/html" || mt == "application/xhtml+xml"
}

func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max]))
}
