// Package textutil holds the tokenizer and stopword list shared by the
// summarizer and the TF-IDF embedder so both score the same terms.
package textutil

import (
	"regexp"
	"strings"
)

var wordRe = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)*`)

// Tokens returns the lowercase word tokens of text, stopwords included.
func Tokens(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// Terms returns the lowercase tokens of text with stopwords removed.
func Terms(text string) []string {
	raw := Tokens(text)
	out := raw[:0]
	for _, t := range raw {
		if IsStopword(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// TermSet returns the distinct significant terms of text.
func TermSet(text string) map[string]struct{} {
	terms := Terms(text)
	m := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		m[t] = struct{}{}
	}
	return m
}

// IsStopword reports whether tok (already lowercased) is a function word.
func IsStopword(tok string) bool {
	_, ok := stopwords[tok]
	return ok
}

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
		"what", "which", "who", "whom", "whose", "when", "where", "why", "how", "do", "does", "did", "has", "have", "had", "i", "me", "my", "you", "your", "he", "she", "his", "her", "we", "our", "they", "their", "its", "not", "no", "there", "here", "also", "would", "could", "may", "might", "tell", "explain",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
