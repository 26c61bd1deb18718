package tfidf

import (
	"errors"
	"math"
	"sort"

	"ragchat/internal/textutil"
)

// ErrNoTerms is returned by Prepare when the corpus holds no significant terms.
var ErrNoTerms = errors.New("no terms found in corpus")

// Embedder implements a simple TF-IDF vectorizer.
// It builds a vocabulary from the corpus and computes IDF values.
// An Embedder is not safe for concurrent Prepare calls; build one per corpus.
type Embedder struct {
	vocabulary map[string]int
	idf        []float64
	dimension  int
	prepared   bool
}

// NewEmbedder creates an unprepared TF-IDF embedder.
func NewEmbedder() *Embedder {
	return &Embedder{vocabulary: make(map[string]int)}
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "tfidf" }

// Prepare builds the vocabulary and IDF values from the provided corpus.
func (e *Embedder) Prepare(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("empty corpus for TF-IDF prepare")
	}
	df := make(map[string]int)
	for _, text := range corpus {
		for tok := range textutil.TermSet(text) {
			df[tok]++
		}
	}
	// Create stable ordering for vocabulary
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) == 0 {
		return ErrNoTerms
	}
	e.vocabulary = make(map[string]int, len(terms))
	e.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		e.vocabulary[term] = i
		// Smoothed IDF
		e.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	e.dimension = len(terms)
	e.prepared = true
	return nil
}

// Dimension returns the dimensionality of the produced embedding vectors.
func (e *Embedder) Dimension() int { return e.dimension }

// Embed computes the L2-normalized TF-IDF embedding for the given text.
// Terms outside the vocabulary are ignored; text with none yields a zero vector.
func (e *Embedder) Embed(text string) ([]float64, error) {
	if !e.prepared {
		return nil, errors.New("tfidf embedder not prepared")
	}
	vec := make([]float64, e.dimension)
	tf := make(map[int]int)
	total := 0
	for _, tok := range textutil.Terms(text) {
		if idx, ok := e.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec, nil
	}
	for idx, count := range tf {
		vec[idx] = float64(count) / float64(total) * e.idf[idx]
	}
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}
