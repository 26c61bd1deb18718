// Package retriever ranks a small, ad-hoc set of documents against a query
// with TF-IDF vectors held in a throwaway in-memory vector store.
package retriever

import (
	"errors"
	"fmt"
	"strings"

	"ragchat/internal/domain"
	"ragchat/internal/embedding/tfidf"
	"ragchat/internal/vectorstore/memory"
)

// Retriever builds a fresh embedder and store per call, so it is safe for
// concurrent use.
type Retriever struct {
	newEmbedder func() domain.Embedder
	newStore    func() domain.VectorStore
}

func New() *Retriever {
	return &Retriever{
		newEmbedder: func() domain.Embedder { return tfidf.NewEmbedder() },
		newStore:    func() domain.VectorStore { return memory.NewStorage() },
	}
}

// Relevant returns up to topK docs whose similarity to query is at least
// minScore, best first.
func (r *Retriever) Relevant(query string, docs []domain.Document, topK int, minScore float64) ([]domain.Document, error) {
	if len(docs) == 0 || topK <= 0 || strings.TrimSpace(query) == "" {
		return nil, nil
	}
	corpus := make([]string, len(docs))
	for i, d := range docs {
		corpus[i] = documentText(d)
	}
	emb := r.newEmbedder()
	if err := emb.Prepare(corpus); err != nil {
		if errors.Is(err, tfidf.ErrNoTerms) {
			return nil, nil
		}
		return nil, fmt.Errorf("prepare embedder: %w", err)
	}
	store := r.newStore()
	if err := store.Init(emb.Dimension()); err != nil {
		return nil, err
	}
	vectors := make([][]float64, len(corpus))
	for i, text := range corpus {
		vec, err := emb.Embed(text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	if err := store.Upsert(docs, vectors); err != nil {
		return nil, err
	}
	qvec, err := emb.Embed(query)
	if err != nil {
		return nil, err
	}
	hits, err := store.Search(qvec, topK)
	if err != nil {
		return nil, err
	}
	var out []domain.Document
	for _, h := range hits {
		if h.Score <= 0 || h.Score < minScore {
			continue
		}
		out = append(out, h.Document)
	}
	return out, nil
}

func documentText(d domain.Document) string {
	if strings.TrimSpace(d.Body) != "" {
		return d.Title + ". " + d.Body
	}
	return d.Title + ". " + d.Snippet
}
