package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/SayaAndy/lightbox-docs/internal/site"
	"github.com/SayaAndy/lightbox-docs/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySource struct {
	mu    sync.Mutex
	docs  map[string]string
	reads int
}

func (m *memorySource) List(ctx context.Context) ([]source.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := make([]source.Document, 0, len(m.docs))
	for name := range m.docs {
		docs = append(docs, source.Document{Name: name})
	}
	return docs, nil
}

func (m *memorySource) Read(ctx context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	content, ok := m.docs[name]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", name, source.ErrNotFound)
	}
	return []byte(content), nil
}

func newTestServer(t *testing.T, docs map[string]string) (*Server, *memorySource) {
	t.Helper()
	src := &memorySource{docs: docs}
	b, err := site.NewBuilder(src)
	require.NoError(t, err)
	s, err := NewServer(b, time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { s.cache.Close() })
	return s, src
}

func get(t *testing.T, s *Server, target string) (*http.Response, string) {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestServePage(t *testing.T) {
	s, _ := newTestServer(t, map[string]string{
		"index":        "# Home\n",
		"trips/sunset": ".. lightbox::\n   :thumb: /t.png\n   :large: /l.png\n   :align: center\n",
	})

	resp, body := get(t, s, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, `<h1 id="home">Home</h1>`)

	resp, body = get(t, s, "/trips/sunset.html")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `<div class="lightbox-block align-center">`)
}

func TestServeNotFound(t *testing.T) {
	s, _ := newTestServer(t, map[string]string{
		"draft": "---\ndraft: true\n---\nsecret\n",
	})

	resp, body := get(t, s, "/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "failed to find 'missing' page", body)

	resp, _ = get(t, s, "/draft")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServeCachesAndPurges(t *testing.T) {
	s, src := newTestServer(t, map[string]string{"index": "hello\n"})

	resp, _ := get(t, s, "/")
	assert.Equal(t, "MISS", resp.Header.Get(cacheHeader))
	s.cache.Wait()

	resp, body := get(t, s, "/index")
	assert.Equal(t, "HIT", resp.Header.Get(cacheHeader))
	assert.Contains(t, body, "<p>hello</p>")
	assert.Equal(t, 1, src.reads)

	purge, err := s.App().Test(httptest.NewRequest(http.MethodPost, "/-/purge", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, purge.StatusCode)

	resp, _ = get(t, s, "/")
	assert.Equal(t, "MISS", resp.Header.Get(cacheHeader))
	assert.Equal(t, 2, src.reads)
}

func TestPurgeNamedPages(t *testing.T) {
	s, src := newTestServer(t, map[string]string{"a": "a\n", "b": "b\n"})

	get(t, s, "/a")
	get(t, s, "/b")
	s.cache.Wait()

	s.Purge("a")

	resp, _ := get(t, s, "/a")
	assert.Equal(t, "MISS", resp.Header.Get(cacheHeader))
	resp, _ = get(t, s, "/b")
	assert.Equal(t, "HIT", resp.Header.Get(cacheHeader))
	assert.Equal(t, 3, src.reads)
}

func TestPageName(t *testing.T) {
	cases := map[string]string{
		"":                  "index",
		"/":                 "index",
		"index.html":        "index",
		"trips/sunset":      "trips/sunset",
		"trips/sunset.html": "trips/sunset",
		"trips/":            "trips/index",
	}
	for in, want := range cases {
		assert.Equal(t, want, pageName(in), in)
	}
}
