package summarizer

import (
	"math"
	"sort"
	"strings"

	"ragchat/internal/chunker"
	"ragchat/internal/domain"
	"ragchat/internal/textutil"
)

// NoInformationAnswer is returned when no document carries any text.
const NoInformationAnswer = "No relevant information was found for this query."

const paragraphBreak = "\n\n"

// ExtractiveSummarizer ranks sentences across documents by word frequency
// (stopwords filtered), boosts sentences that mention the query's own terms,
// and stitches the winners back together in reading order.
type ExtractiveSummarizer struct {
	splitter   domain.Splitter
	queryBoost float64
}

// Option customizes an ExtractiveSummarizer.
type Option func(*ExtractiveSummarizer)

// WithQueryBoost sets the per-matched-query-term score multiplier increment.
func WithQueryBoost(boost float64) Option {
	return func(s *ExtractiveSummarizer) {
		if boost >= 0 {
			s.queryBoost = boost
		}
	}
}

// WithSplitter replaces the default sentence splitter.
func WithSplitter(sp domain.Splitter) Option {
	return func(s *ExtractiveSummarizer) {
		if sp != nil {
			s.splitter = sp
		}
	}
}

// NewExtractiveSummarizer creates a query-biased frequency summarizer.
func NewExtractiveSummarizer(opts ...Option) *ExtractiveSummarizer {
	s := &ExtractiveSummarizer{
		splitter:   chunker.NewSentenceSplitter(),
		queryBoost: 1.0,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type sentence struct {
	doc   int
	pos   int
	text  string
	score float64
}

// Summarize returns up to maxSentences sentences drawn from the bodies of docs.
func (s *ExtractiveSummarizer) Summarize(query string, docs []domain.Document, maxSentences int) string {
	sentences := s.collect(docs)
	if len(sentences) == 0 {
		return NoInformationAnswer
	}
	if maxSentences <= 0 {
		return ""
	}

	// Term frequencies over every sentence, normalized by the most frequent term
	freq := map[string]float64{}
	tokens := make([][]string, len(sentences))
	for i, sent := range sentences {
		tokens[i] = textutil.Tokens(sent.text)
		for _, tok := range tokens[i] {
			if textutil.IsStopword(tok) {
				continue
			}
			freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}

	queryTerms := textutil.TermSet(query)
	for i := range sentences {
		score := 0.0
		matched := map[string]struct{}{}
		for _, tok := range tokens[i] {
			if v, ok := freq[tok]; ok {
				score += v
			}
			if _, ok := queryTerms[tok]; ok {
				matched[tok] = struct{}{}
			}
		}
		// Normalize by sentence length to avoid bias
		if l := float64(len(tokens[i])); l > 0 {
			score /= math.Sqrt(l)
		}
		score *= 1 + s.queryBoost*float64(len(matched))
		sentences[i].score = score
	}

	ranked := make([]sentence, len(sentences))
	copy(ranked, sentences)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if ranked[i].doc != ranked[j].doc {
			return ranked[i].doc < ranked[j].doc
		}
		return ranked[i].pos < ranked[j].pos
	})
	if maxSentences > len(ranked) {
		maxSentences = len(ranked)
	}
	selected := ranked[:maxSentences]

	// Keep original order among selected
	sort.Slice(selected, func(i, j int) bool {
		if selected[i].doc != selected[j].doc {
			return selected[i].doc < selected[j].doc
		}
		return selected[i].pos < selected[j].pos
	})
	var b strings.Builder
	for i, sent := range selected {
		if i > 0 {
			if sent.doc != selected[i-1].doc {
				b.WriteString(paragraphBreak)
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString(sent.text)
	}
	return b.String()
}

// collect splits every body into positioned sentences, dropping repeats of a
// sentence already seen earlier in rank order.
func (s *ExtractiveSummarizer) collect(docs []domain.Document) []sentence {
	var out []sentence
	seen := map[string]struct{}{}
	for d, doc := range docs {
		if strings.TrimSpace(doc.Body) == "" {
			continue
		}
		for p, text := range s.splitter.Split(doc.Body) {
			key := strings.ToLower(text)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, sentence{doc: d, pos: p, text: text})
		}
	}
	return out
}
