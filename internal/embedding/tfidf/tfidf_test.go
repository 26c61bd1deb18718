package tfidf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedRequiresPrepare(t *testing.T) {
	_, err := NewEmbedder().Embed("anything")
	assert.Error(t, err)
}

func TestPrepareRejectsStopwordOnlyCorpus(t *testing.T) {
	e := NewEmbedder()
	assert.Error(t, e.Prepare(nil))
	assert.ErrorIs(t, e.Prepare([]string{"the and of", "is it"}), ErrNoTerms)
}

func TestEmbedNormalizedAndSimilar(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare([]string{
		"Photosynthesis converts light into chemical energy.",
		"The stock market closed higher today.",
	}))
	assert.Equal(t, 10, e.Dimension())

	v, err := e.Embed("light energy")
	require.NoError(t, err)
	norm := 0.0
	for _, x := range v {
		norm += x * x
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)

	zero, err := e.Embed("unrelated words only")
	require.NoError(t, err)
	for _, x := range zero {
		assert.Zero(t, x)
	}
}
