package retriever

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragchat/internal/domain"
)

var corpus = []domain.Document{
	{Title: "Photosynthesis basics", URL: "u1", Body: "Plants turn sunlight into chemical energy."},
	{Title: "Stock market report", URL: "u2", Body: "Shares closed higher after strong earnings."},
	{Title: "Chlorophyll", URL: "u3", Snippet: "Chlorophyll absorbs sunlight in leaves."},
}

func TestRelevantRanksBestFirst(t *testing.T) {
	r := New()
	got, err := r.Relevant("how do leaves use sunlight", corpus, 3, 0.01)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "u3", got[0].URL)
	for _, d := range got {
		assert.NotEqual(t, "u2", d.URL)
	}
}

func TestRelevantHonorsTopK(t *testing.T) {
	got, err := New().Relevant("sunlight", corpus, 1, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRelevantEmptyCases(t *testing.T) {
	r := New()
	got, err := r.Relevant("sunlight", nil, 3, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = r.Relevant("   ", corpus, 3, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = r.Relevant("zebra", corpus, 3, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = r.Relevant("sunlight", []domain.Document{{Title: "the", Body: "and of"}}, 3, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
