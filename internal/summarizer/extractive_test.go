package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ragchat/internal/domain"
)

func photosynthesisDocs() []domain.Document {
	return []domain.Document{
		{Title: "Doc 1", Body: "Photosynthesis converts light into energy. Plants are green. Energy is stored as glucose."},
		{Title: "Doc 2", Body: ""},
	}
}

func TestSummarizeFavorsQueryTerms(t *testing.T) {
	s := NewExtractiveSummarizer()

	got := s.Summarize("What is photosynthesis?", photosynthesisDocs(), 2)
	assert.Equal(t, "Photosynthesis converts light into energy. Energy is stored as glucose.", got)

	got = s.Summarize("photosynthesis energy", photosynthesisDocs(), 2)
	assert.Equal(t, "Photosynthesis converts light into energy. Energy is stored as glucose.", got)
}

func TestSummarizeSentencesAcrossTwoDocuments(t *testing.T) {
	docs := []domain.Document{
		{Title: "Doc 1", Body: "Photosynthesis converts light into energy. Plants are green."},
		{Title: "Doc 2", Body: "Energy is stored as glucose."},
	}
	got := NewExtractiveSummarizer().Summarize("photosynthesis energy", docs, 2)
	assert.Equal(t, "Photosynthesis converts light into energy.\n\nEnergy is stored as glucose.", got)
}

func TestSummarizeQueryBoostChangesSelection(t *testing.T) {
	docs := []domain.Document{{Body: "Cats chase mice and cats nap often. Dogs bark."}}

	plain := NewExtractiveSummarizer(WithQueryBoost(0)).Summarize("dogs", docs, 1)
	assert.Equal(t, "Cats chase mice and cats nap often.", plain)

	boosted := NewExtractiveSummarizer(WithQueryBoost(3)).Summarize("dogs", docs, 1)
	assert.Equal(t, "Dogs bark.", boosted)
}

func TestSummarizeNoInformation(t *testing.T) {
	s := NewExtractiveSummarizer()
	assert.Equal(t, NoInformationAnswer, s.Summarize("anything", nil, 3))
	assert.Equal(t, NoInformationAnswer, s.Summarize("anything", []domain.Document{{Body: ""}, {Body: "  \n "}}, 3))
}

func TestSummarizeSentenceBounds(t *testing.T) {
	s := NewExtractiveSummarizer()
	docs := []domain.Document{{Body: "Alpha beta. Gamma delta. Alpha gamma."}}

	assert.Equal(t, "", s.Summarize("alpha", docs, 0))
	assert.Equal(t, "", s.Summarize("alpha", docs, -2))

	all := s.Summarize("alpha", docs, 50)
	assert.Equal(t, "Alpha beta. Gamma delta. Alpha gamma.", all)
}

func TestSummarizeDropsDuplicateSentences(t *testing.T) {
	s := NewExtractiveSummarizer()
	docs := []domain.Document{
		{Body: "Rust is a language. Go is simple."},
		{Body: "go is  simple. Go has goroutines."},
	}
	got := s.Summarize("go", docs, 10)
	assert.Equal(t, 1, strings.Count(strings.ToLower(got), "go is simple."))
	assert.Equal(t, "Rust is a language. Go is simple.\n\nGo has goroutines.", got)
}

func TestSummarizeParagraphBreakBetweenDocuments(t *testing.T) {
	s := NewExtractiveSummarizer()
	docs := []domain.Document{
		{Body: "Solar panels convert sunlight. Solar output varies."},
		{Body: "Wind turbines convert wind. Solar farms need land."},
	}
	got := s.Summarize("solar", docs, 3)
	parts := strings.Split(got, "\n\n")
	assert.Len(t, parts, 2)
	assert.Equal(t, "Solar panels convert sunlight. Solar output varies.", parts[0])
	assert.Equal(t, "Solar farms need land.", parts[1])
}

func TestSummarizeTiesKeepDocumentOrder(t *testing.T) {
	s := NewExtractiveSummarizer()
	docs := []domain.Document{
		{Body: "Zebra stripes."},
		{Body: "Tiger stripes."},
		{Body: "Panda spots."},
	}
	// The first two score identically; document order decides.
	got := s.Summarize("", docs, 1)
	assert.Equal(t, "Zebra stripes.", got)
}

func TestSummarizeIsDeterministic(t *testing.T) {
	s := NewExtractiveSummarizer()
	docs := []domain.Document{
		{Body: "One fish. Two fish. Red fish. Blue fish."},
		{Body: "Fish swim in water. Water is wet."},
	}
	first := s.Summarize("fish water", docs, 3)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, s.Summarize("fish water", docs, 3))
	}
}
