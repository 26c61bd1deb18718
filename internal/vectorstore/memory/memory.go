package memory

import (
	"errors"
	"sort"
	"sync"

	"ragchat/internal/domain"
)

// Storage is a simple in-memory vector store using brute-force cosine similarity.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float64
	docs      []domain.Document
}

func NewStorage() *Storage { return &Storage{} }

func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.vectors = nil
	s.docs = nil
	return nil
}

func (s *Storage) Upsert(docs []domain.Document, vectors [][]float64) error {
	if len(docs) != len(vectors) {
		return errors.New("documents and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	s.docs = append(s.docs, docs...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

// Search returns the topK documents by cosine similarity, best first. Equal
// scores keep insertion order.
func (s *Storage) Search(vector []float64, topK int) ([]domain.ScoredDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 5
	}
	// vectors are assumed L2-normalized
	results := make([]domain.ScoredDocument, len(s.vectors))
	for i := range s.vectors {
		results[i] = domain.ScoredDocument{Document: s.docs[i], Index: i, Score: dot(s.vectors[i], vector)}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK], nil
}

func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors = nil
	s.docs = nil
	return nil
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
