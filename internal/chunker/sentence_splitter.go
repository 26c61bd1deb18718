package chunker

import (
	"strings"
	"unicode"
)

// SentenceSplitter segments text at terminal punctuation (., ! or ?) that is
// followed by whitespace or the end of the text. Abbreviation-like dots inside
// tokens ("3.14", "e.g.x") never end a sentence.
type SentenceSplitter struct{}

func NewSentenceSplitter() *SentenceSplitter { return &SentenceSplitter{} }

// Split returns the non-blank sentences of text in order, with inner
// whitespace collapsed to single spaces.
func (s *SentenceSplitter) Split(text string) []string {
	runes := []rune(text)
	var out []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		j := i
		for j+1 < len(runes) && isTerminal(runes[j+1]) {
			j++
		}
		if j+1 == len(runes) || unicode.IsSpace(runes[j+1]) {
			out = appendSentence(out, string(runes[start:j+1]))
			start = j + 1
		}
		i = j
	}
	if start < len(runes) {
		out = appendSentence(out, string(runes[start:]))
	}
	return out
}

func isTerminal(r rune) bool { return r == '.' || r == '!' || r == '?' }

func appendSentence(out []string, raw string) []string {
	sent := strings.Join(strings.Fields(raw), " ")
	if sent == "" {
		return out
	}
	return append(out, sent)
}
