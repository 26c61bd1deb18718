package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragchat/internal/domain"
)

func TestStorageSearchOrdersByScore(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(2))
	docs := []domain.Document{{Title: "a"}, {Title: "b"}, {Title: "c"}}
	require.NoError(t, s.Upsert(docs, [][]float64{{1, 0}, {0, 1}, {0.6, 0.8}}))

	res, err := s.Search([]float64{0, 1}, 2)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "b", res[0].Document.Title)
	assert.Equal(t, 1, res[0].Index)
	assert.Equal(t, "c", res[1].Document.Title)
	assert.InDelta(t, 0.8, res[1].Score, 1e-9)
}

func TestStorageRejectsBadInput(t *testing.T) {
	s := NewStorage()
	assert.Error(t, s.Init(0))
	require.NoError(t, s.Init(3))
	assert.Error(t, s.Upsert([]domain.Document{{}}, nil))
	assert.Error(t, s.Upsert([]domain.Document{{}}, [][]float64{{1, 2}}))
}

func TestStorageClear(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(1))
	require.NoError(t, s.Upsert([]domain.Document{{}}, [][]float64{{1}}))
	require.NoError(t, s.Clear())
	res, err := s.Search([]float64{1}, 3)
	require.NoError(t, err)
	assert.Empty(t, res)
}
