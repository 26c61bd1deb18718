package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"ragchat/internal/config"
)

func TestNew(t *testing.T) {
	l, err := New(config.LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New(config.LogConfig{Level: "WARN", Format: "console"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))

	_, err = New(config.LogConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)
	_, err = New(config.LogConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}
