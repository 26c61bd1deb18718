package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragchat/internal/config"
)

func TestBuildAppWithMockSearch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  type: mock\nfetch:\n  enabled: false\nlog:\n  level: error\n"), 0o644))

	a, err := buildApp(context.Background(), path)
	require.NoError(t, err)

	res, err := a.service.Ask(context.Background(), "electric cars")
	require.NoError(t, err)
	assert.Len(t, res.Sources, a.cfg.Search.DefaultLimit)
	assert.NotEmpty(t, res.Answer)

	turns, err := a.service.History(res.SessionID)
	require.NoError(t, err)
	assert.Len(t, turns, 2)
}

func TestBuildAppRejectsUnknownSummarizer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  type: mock\n"), 0o644))

	_, err := buildApp(context.Background(), path, func(c *config.AppConfig) { c.Summarizer.Type = "abstractive" })
	assert.Error(t, err)
}
