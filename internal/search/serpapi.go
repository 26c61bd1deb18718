package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"ragchat/internal/config"
	"ragchat/internal/domain"
)

// noResultsMarker is the error SerpApi reports for a query with zero hits.
const noResultsMarker = "hasn't returned any results"

// SerpAPI queries the SerpApi JSON endpoint.
type SerpAPI struct {
	endpoint   string
	apiKey     string
	engine     string
	country    string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

type serpResponse struct {
	Error          string `json:"error"`
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

func NewSerpAPI(cfg config.SearchConfig, apiKey string, logger *zap.Logger) *SerpAPI {
	if logger == nil {
		logger = zap.NewNop()
	}
	rps := cfg.RatePerSec
	limiter := rate.NewLimiter(rate.Inf, 1)
	if rps > 0 {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return &SerpAPI{
		endpoint:   cfg.Endpoint,
		apiKey:     apiKey,
		engine:     cfg.Engine,
		country:    cfg.Country,
		language:   cfg.Language,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
		limiter:    limiter,
		logger:     logger,
	}
}

func (s *SerpAPI) Name() string { return "serpapi" }

func (s *SerpAPI) Search(ctx context.Context, query string, limit int) ([]domain.Document, error) {
	if limit <= 0 {
		return nil, nil
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrProviderUnavailable, err)
	}

	params := url.Values{}
	params.Set("engine", s.engine)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(limit))
	if s.country != "" {
		params.Set("gl", s.country)
	}
	if s.language != "" {
		params.Set("hl", s.language)
	}
	params.Set("api_key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrProviderUnavailable, err)
	}
	s.logger.Debug("serpapi request", zap.String("query", query), zap.Int("num", limit))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrProviderUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrProviderUnavailable, err)
	}
	if payload.Error != "" {
		if strings.Contains(payload.Error, noResultsMarker) {
			return []domain.Document{}, nil
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrProviderUnavailable, payload.Error)
	}

	docs := make([]domain.Document, 0, min(limit, len(payload.OrganicResults)))
	for _, r := range payload.OrganicResults {
		if len(docs) == limit {
			break
		}
		docs = append(docs, domain.Document{
			Title:   strings.TrimSpace(r.Title),
			URL:     strings.TrimSpace(r.Link),
			Snippet: strings.TrimSpace(r.Snippet),
			Body:    strings.TrimSpace(r.Snippet),
		})
	}
	return docs, nil
}
