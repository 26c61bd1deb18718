package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragchat/internal/config"
	"ragchat/internal/domain"
	"ragchat/internal/metrics"
)

const paragraph = "Photosynthesis is the process by which green plants, algae and some bacteria " +
	"convert light energy into chemical energy. During this process the chloroplasts " +
	"capture sunlight and use it to turn water and carbon dioxide into glucose and oxygen, " +
	"which sustains nearly every food chain on the planet."

func articleServer(t *testing.T) *httptest.Server {
	t.Helper()
	page := fmt.Sprintf(`<!doctype html><html><head><title>Photosynthesis explained</title></head>
<body><nav><a href="/">Home</a></nav>
<article><h1>Photosynthesis explained</h1><p>%s</p><p>%s</p><p>%s</p></article>
<footer>Copyright</footer></body></html>`, paragraph, paragraph, paragraph)

	mux := http.NewServeMux()
	mux.HandleFunc("/article", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ragchat-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/report.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7 binary"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(maxChars int) config.FetchConfig {
	return config.FetchConfig{Enabled: true, TimeoutSecs: 5, MaxChars: maxChars, Concurrency: 2, UserAgent: "ragchat-test"}
}

func TestArticleExtractsText(t *testing.T) {
	srv := articleServer(t)
	f := New(testConfig(6000), nil, nil)

	text, err := f.Article(context.Background(), srv.URL+"/article")
	require.NoError(t, err)
	assert.Contains(t, text, "convert light energy into chemical energy")
	assert.NotContains(t, text, "\n")
}

func TestArticleTruncates(t *testing.T) {
	srv := articleServer(t)
	f := New(testConfig(40), nil, nil)

	text, err := f.Article(context.Background(), srv.URL+"/article")
	require.NoError(t, err)
	assert.LessOrEqual(t, utf8.RuneCountInString(text), 40)
}

func TestArticleErrors(t *testing.T) {
	srv := articleServer(t)
	f := New(testConfig(6000), nil, nil)

	_, err := f.Article(context.Background(), srv.URL+"/missing")
	assert.Error(t, err)
	_, err = f.Article(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestArticleRejectsNonHTML(t *testing.T) {
	srv := articleServer(t)
	f := New(testConfig(6000), nil, nil)

	_, err := f.Article(context.Background(), srv.URL+"/report.pdf")
	assert.ErrorIs(t, err, ErrNotHTML)
}

func TestArticleStopsReadingHugePages(t *testing.T) {
	const total = 64 << 20
	var written atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		head := fmt.Sprintf("<html><body><article><p>%s</p><p>%s</p><p>%s</p></article><div>", paragraph, paragraph, paragraph)
		n, err := w.Write([]byte(head))
		written.Add(int64(n))
		if err != nil {
			return
		}
		chunk := []byte(strings.Repeat("x", 64<<10))
		for written.Load() < total {
			n, err := w.Write(chunk)
			written.Add(int64(n))
			if err != nil {
				return
			}
		}
	}))

	f := New(testConfig(6000), nil, nil)
	text, err := f.Article(context.Background(), srv.URL)
	srv.Close()
	require.NoError(t, err)
	assert.Contains(t, text, "chloroplasts")
	assert.Less(t, written.Load(), int64(total))
}

func TestReadLimit(t *testing.T) {
	assert.Equal(t, int64(minReadBytes), New(testConfig(100), nil, nil).readLimit())
	assert.Equal(t, int64(64000*32), New(testConfig(64000), nil, nil).readLimit())
	assert.True(t, isHTML("text/html; charset=utf-8"))
	assert.True(t, isHTML("application/xhtml+xml"))
	assert.False(t, isHTML("application/pdf"))
}

func TestEnrichKeepsOrderAndFallsBack(t *testing.T) {
	srv := articleServer(t)
	m := metrics.New(nil)
	f := New(testConfig(6000), nil, m)

	docs := []domain.Document{
		{Title: "a", URL: srv.URL + "/article", Snippet: "snippet a", Body: "snippet a"},
		{Title: "b", URL: srv.URL + "/missing", Snippet: "snippet b", Body: "snippet b"},
		{Title: "c", Snippet: "snippet c", Body: "snippet c"},
	}
	out := f.Enrich(context.Background(), docs)
	require.Len(t, out, 3)

	assert.Equal(t, "a", out[0].Title)
	assert.True(t, strings.Contains(out[0].Body, "chloroplasts"))
	assert.Equal(t, "snippet b", out[1].Body)
	assert.Equal(t, "snippet c", out[2].Body)
	// input slice is untouched
	assert.Equal(t, "snippet a", docs[0].Body)
}

func TestTruncateRuneSafe(t *testing.T) {
	assert.Equal(t, "héllo", truncate("héllo wörld", 5))
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "abc", truncate("abc", 0))
}
