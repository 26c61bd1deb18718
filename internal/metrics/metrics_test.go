package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New(func() int { return 7 })
	m.ObserveRequest("ask", time.Now(), nil)
	m.ObserveRequest("ask", time.Now(), errors.New("boom"))
	m.SearchFallback()
	m.Fetch(true)
	m.Fetch(false)
	m.Fetch(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("ask", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("ask", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbacks))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.fetches.WithLabelValues("error")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.sessions))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("chat", time.Now(), nil)
		m.SearchFallback()
		m.Fetch(true)
	})
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New(nil)
	m.SearchFallback()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "ragchat_search_fallbacks_total 1")
	assert.Contains(t, string(body), "ragchat_sessions 0")
}
