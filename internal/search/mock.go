package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"ragchat/internal/domain"
)

var mockBodies = []string{
	"%[1]s is a widely discussed topic. This overview covers the main ideas behind %[1]s. " +
		"Most introductions start with a short definition and a few examples.",
	"Experts describe %[1]s from several angles. Historical background helps explain why %[1]s matters today. " +
		"Recent work has refined the common understanding.",
	"Practical guides about %[1]s focus on everyday use. Common questions concern costs and trade-offs. " +
		"A checklist is often the quickest way to get started with %[1]s.",
}

// Mock synthesizes results locally. Output depends only on the query and limit.
type Mock struct{}

func NewMock() *Mock { return &Mock{} }

func (m *Mock) Name() string { return "mock" }

func (m *Mock) Search(_ context.Context, query string, limit int) ([]domain.Document, error) {
	if limit <= 0 {
		return nil, nil
	}
	q := strings.TrimSpace(query)
	docs := make([]domain.Document, 0, limit)
	for i := 1; i <= limit; i++ {
		snippet := fmt.Sprintf("Mock snippet %d about %s.", i, q)
		docs = append(docs, domain.Document{
			Title:   fmt.Sprintf("Mock Result %d: %s", i, q),
			URL:     fmt.Sprintf("https://example.com/mock/%d?q=%s", i, url.QueryEscape(q)),
			Snippet: snippet,
			Body:    fmt.Sprintf(mockBodies[(i-1)%len(mockBodies)], q),
		})
	}
	return docs, nil
}
