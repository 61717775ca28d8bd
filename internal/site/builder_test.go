package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SayaAndy/lightbox-docs/internal/directive"
	"github.com/SayaAndy/lightbox-docs/internal/lightbox"
	"github.com/SayaAndy/lightbox-docs/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySource map[string]string

func (m memorySource) List(ctx context.Context) ([]source.Document, error) {
	docs := make([]source.Document, 0, len(m))
	for name := range m {
		docs = append(docs, source.Document{Name: name, ModTime: time.Unix(0, 0)})
	}
	return docs, nil
}

func (m memorySource) Read(ctx context.Context, name string) ([]byte, error) {
	content, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", name, source.ErrNotFound)
	}
	return []byte(content), nil
}

const gallery = `---
title: Sunset trip
description: Evening photos
---
# Day one

.. lightbox::
   :thumb: /img/t.png
   :large: /img/l.png
   :align: center
   :caption: Sunset

.. lightbox::
   :thumb: /a.png
   :large: /b.png
   :div_class: gallery
   :align: right

That's all.
`

func newTestBuilder(t *testing.T, src source.Source, opts ...Option) *Builder {
	t.Helper()
	b, err := NewBuilder(src, opts...)
	require.NoError(t, err)
	return b
}

func TestBuilderRegistersLightbox(t *testing.T) {
	b := newTestBuilder(t, memorySource{})
	assert.Equal(t, []string{lightbox.Name}, b.Directives())
}

func TestConvertLightbox(t *testing.T) {
	ids := []string{"id-1", "id-2"}
	next := 0
	b := newTestBuilder(t, memorySource{}, WithLightbox(lightbox.New(lightbox.WithIDGenerator(func() string {
		id := ids[next]
		next++
		return id
	}))))

	out, err := b.Convert([]byte(".. lightbox::\n   :thumb: /t.png\n   :large: /l.png\n"))
	require.NoError(t, err)

	want := `<div class="lightbox-block align-left">` +
		`  <a href="#id-1" title="Click to view large image">` +
		`    <img src="/t.png" alt="Click to view large image" class=""/>` +
		`  </a>` +
		`  <a href="#_" class="lightbox" id="id-1"      title="Click to close">` +
		`    <img alt="Click to close" src="/l.png"/>` +
		`  </a>` +
		`  <p class="lightbox-caption ">Click to view large image</p>` +
		`  <div class="lightbox-divider"></div>` +
		`</div>` + "\n"
	assert.Equal(t, want, out)

	out, err = b.Convert([]byte(".. lightbox::\n   :thumb: /t.png\n   :large: /l.png\n"))
	require.NoError(t, err)
	assert.Contains(t, out, `id="id-2"`)
}

func TestRenderPage(t *testing.T) {
	b := newTestBuilder(t, memorySource{"trips/sunset": gallery})

	page, err := b.RenderPage(context.Background(), "trips/sunset")
	require.NoError(t, err)
	out := string(page)

	assert.Contains(t, out, "<title>Sunset trip</title>")
	assert.Contains(t, out, `<meta name="description" content="Evening photos">`)
	assert.Contains(t, out, `<h1 id="day-one">Day one</h1>`)
	assert.Contains(t, out, `<div class="lightbox-block align-center">`)
	assert.Contains(t, out, `<p class="lightbox-caption ">Sunset</p>`)
	assert.Contains(t, out, `<div class="lightbox-block gallery align-right">`)
	assert.Contains(t, out, "<p>That's all.</p>")
	assert.Equal(t, 2, strings.Count(out, `class="lightbox-divider"`))
}

func TestRenderPageDirectiveErrorDoesNotAbort(t *testing.T) {
	doc := ".. lightbox::\n   :large: /l.png\n\n.. lightbox::\n   :thumb: /t.png\n   :large: /l.png\n   :align: middle\n\n.. lightbox::\n   :thumb: /ok.png\n   :large: /ok-large.png\n"
	b := newTestBuilder(t, memorySource{"index": doc})

	page, err := b.RenderPage(context.Background(), "index")
	require.NoError(t, err)
	out := string(page)

	assert.Contains(t, out, "<title>index</title>")
	assert.Contains(t, out, "Thumb argument is required.")
	assert.Contains(t, out, "System Message: ERROR (line 1)")
	assert.Contains(t, out, "&quot;middle&quot; unknown; choose from &quot;left&quot;, &quot;center&quot;, or &quot;right&quot;")
	assert.Contains(t, out, "System Message: ERROR (line 4)")
	assert.Contains(t, out, `<img src="/ok.png"`)
	assert.Equal(t, 1, strings.Count(out, "lightbox-block"))
}

func TestRenderPageLogPolicy(t *testing.T) {
	doc := ".. lightbox::\n   :large: /l.png\n\ntext\n"
	b := newTestBuilder(t, memorySource{"index": doc}, WithErrorPolicy(directive.ErrorPolicyLog))

	page, err := b.RenderPage(context.Background(), "index")
	require.NoError(t, err)
	assert.NotContains(t, string(page), "system-message")
	assert.Contains(t, string(page), "<p>text</p>")
}

func TestRenderPageErrors(t *testing.T) {
	b := newTestBuilder(t, memorySource{
		"draft":  "---\ndraft: true\n---\nhidden\n",
		"broken": "---\ntitle: [oops\n---\nbody\n",
	})

	_, err := b.RenderPage(context.Background(), "draft")
	assert.ErrorIs(t, err, ErrDraft)

	_, err = b.RenderPage(context.Background(), "missing")
	assert.ErrorIs(t, err, source.ErrNotFound)

	_, err = b.RenderPage(context.Background(), "broken")
	assert.ErrorContains(t, err, "failed to parse YAML frontmatter")
}

func TestRenderPageCustomLayout(t *testing.T) {
	layout := filepath.Join(t.TempDir(), "layout.html")
	require.NoError(t, os.WriteFile(layout, []byte(`<article data-name="{{.Name}}">{{.Body}}</article>`), 0o644))

	b := newTestBuilder(t, memorySource{"index": "hello\n"}, WithLayoutFiles(layout))

	page, err := b.RenderPage(context.Background(), "index")
	require.NoError(t, err)
	assert.Equal(t, "<article data-name=\"index\"><p>hello</p>\n</article>", string(page))
}

func TestBuild(t *testing.T) {
	out := t.TempDir()
	b := newTestBuilder(t, memorySource{
		"index":        "# Home\n",
		"trips/sunset": gallery,
		"draft":        "---\ndraft: true\n---\n",
		"broken":       "---\ntitle: [oops\n---\n",
	})

	stats, err := b.Build(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, Stats{Written: 2, Skipped: 1, Failed: 1}, stats)

	page, err := os.ReadFile(filepath.Join(out, "trips", "sunset.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "lightbox-block gallery align-right")

	assert.FileExists(t, filepath.Join(out, "index.html"))
	assert.NoFileExists(t, filepath.Join(out, "draft.html"))
	assert.NoFileExists(t, filepath.Join(out, "broken.html"))
}
