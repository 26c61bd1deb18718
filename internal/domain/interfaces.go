package domain

import (
	"context"
	"time"
)

// Document is a single search result as returned by a provider.
// Body is the text considered during summarization; Snippet is shown to users.
type Document struct {
	Title   string
	URL     string
	Snippet string
	Body    string
}

// Source is the user-facing subset of a Document.
type Source struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Sender identifies who produced a turn.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Turn is one message of a session transcript.
type Turn struct {
	Sender    Sender
	Text      string
	Timestamp time.Time
}

// UserTurn and BotTurn build turns stamped with the current time.
func UserTurn(text string) Turn { return Turn{Sender: SenderUser, Text: text, Timestamp: time.Now()} }
func BotTurn(text string) Turn  { return Turn{Sender: SenderBot, Text: text, Timestamp: time.Now()} }

// ScoredDocument is a document matched by similarity search.
type ScoredDocument struct {
	Document Document
	Index    int
	Score    float64
}

// AskResult is the outcome of a fresh query.
type AskResult struct {
	Answer    string
	Sources   []Source
	SessionID string
}

// ChatResult is the outcome of a follow-up query.
type ChatResult struct {
	Answer    string
	SessionID string
}

// SourcesOf projects documents to their user-facing form, keeping order.
func SourcesOf(docs []Document) []Source {
	out := make([]Source, 0, len(docs))
	for _, d := range docs {
		out = append(out, Source{URL: d.URL, Title: d.Title, Snippet: d.Snippet})
	}
	return out
}

// SearchProvider turns a query into ranked candidate documents.
type SearchProvider interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]Document, error)
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// Splitter segments free text into sentences.
type Splitter interface {
	Split(text string) []string
}

// VectorStore persists document vectors and supports similarity search.
type VectorStore interface {
	Init(dimension int) error
	Upsert(docs []Document, vectors [][]float64) error
	Search(vector []float64, topK int) ([]ScoredDocument, error)
	Clear() error
}

// Summarizer builds an extractive answer from documents. It never fails.
type Summarizer interface {
	Summarize(query string, docs []Document, maxSentences int) string
}

// SessionStore keeps conversation transcripts keyed by session id.
type SessionStore interface {
	Create(turns []Turn, sources []Document) (string, error)
	Append(id string, turns ...Turn) error
	History(id string) ([]Turn, error)
	Sources(id string) ([]Document, error)
	Len() int
}

// RAGService defines the operations exposed by the application core.
type RAGService interface {
	Ask(ctx context.Context, query string) (AskResult, error)
	Chat(ctx context.Context, sessionID, query string) (ChatResult, error)
	History(sessionID string) ([]Turn, error)
}
