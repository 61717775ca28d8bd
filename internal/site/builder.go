// Package site turns markdown documents into HTML pages with the directive
// extension enabled.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/SayaAndy/lightbox-docs/internal/directive"
	"github.com/SayaAndy/lightbox-docs/internal/frontmatter"
	"github.com/SayaAndy/lightbox-docs/internal/lightbox"
	"github.com/SayaAndy/lightbox-docs/internal/source"
	"github.com/SayaAndy/lightbox-docs/internal/templatemanager"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrDraft is returned by RenderPage for documents marked as drafts.
var ErrDraft = errors.New("document is a draft")

const DefaultLayoutName = "page"

const defaultLayout = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{- if .Description}}
<meta name="description" content="{{.Description}}">
{{- end}}
<link rel="stylesheet" href="/lightbox.css">
</head>
<body>
<main>
{{.Body}}
</main>
{{- if not .PublishedTime.IsZero}}
<footer><time>{{date "2006-01-02" .PublishedTime}}</time></footer>
{{- end}}
</body>
</html>
`

type Builder struct {
	md       goldmark.Markdown
	registry *directive.Registry
	src      source.Source
	tm       *templatemanager.TemplateManager
}

type Option func(*builderOptions)

type builderOptions struct {
	policy      directive.ErrorPolicy
	layoutFiles []string
	lightbox    *lightbox.Directive
}

func WithErrorPolicy(policy directive.ErrorPolicy) Option {
	return func(o *builderOptions) {
		o.policy = policy
	}
}

// WithLayoutFiles replaces the built-in page layout; the first file is executed.
func WithLayoutFiles(files ...string) Option {
	return func(o *builderOptions) {
		o.layoutFiles = files
	}
}

// WithLightbox registers d instead of a default lightbox directive.
func WithLightbox(d *lightbox.Directive) Option {
	return func(o *builderOptions) {
		o.lightbox = d
	}
}

func NewBuilder(src source.Source, opts ...Option) (*Builder, error) {
	o := &builderOptions{policy: directive.ErrorPolicyInline, lightbox: lightbox.New()}
	for _, opt := range opts {
		opt(o)
	}

	registry := directive.NewRegistry()
	o.lightbox.Register(registry)

	layout := templatemanager.TemplateManagerTemplates{Name: DefaultLayoutName, Text: defaultLayout}
	if len(o.layoutFiles) > 0 {
		layout = templatemanager.TemplateManagerTemplates{Name: DefaultLayoutName, Files: o.layoutFiles}
	}
	tm, err := templatemanager.NewTemplateManager(layout)
	if err != nil {
		return nil, fmt.Errorf("fail to initialize template manager: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			directive.NewExtension(registry, directive.WithErrorPolicy(o.policy)),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
		),
	)

	return &Builder{md: md, registry: registry, src: src, tm: tm}, nil
}

// Directives returns the names of the registered directives.
func (b *Builder) Directives() []string {
	return b.registry.Names()
}

// Convert renders a markdown body to an HTML fragment.
func (b *Builder) Convert(markdown []byte) (string, error) {
	var buf bytes.Buffer
	if err := b.md.Convert(markdown, &buf); err != nil {
		return "", fmt.Errorf("convert source context from md to html: %w", err)
	}
	return buf.String(), nil
}

type pageData struct {
	Name          string
	Title         string
	Description   string
	PublishedTime time.Time
	Body          template.HTML
}

// RenderPage reads the named document and renders it into the page layout.
func (b *Builder) RenderPage(ctx context.Context, name string) ([]byte, error) {
	content, err := b.src.Read(ctx, name)
	if err != nil {
		return nil, err
	}

	metadata, markdown, err := frontmatter.ParseFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if metadata == nil {
		metadata = &frontmatter.Metadata{}
	}
	if metadata.Draft {
		return nil, fmt.Errorf("%s: %w", name, ErrDraft)
	}

	body, err := b.Convert(markdown)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}

	title := metadata.Title
	if title == "" {
		title = path.Base(name)
	}

	return b.tm.Render(DefaultLayoutName, pageData{
		Name:          name,
		Title:         title,
		Description:   metadata.Description,
		PublishedTime: metadata.PublishedTime,
		Body:          template.HTML(body),
	})
}

type Stats struct {
	Written int
	Skipped int
	Failed  int
}

// Build renders every document of the source into outDir as <name>.html.
// A failing document is logged and counted; the rest of the build continues.
func (b *Builder) Build(ctx context.Context, outDir string) (Stats, error) {
	var stats Stats

	docs, err := b.src.List(ctx)
	if err != nil {
		return stats, fmt.Errorf("list documents: %w", err)
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		page, err := b.RenderPage(ctx, doc.Name)
		if errors.Is(err, ErrDraft) {
			slog.Debug("skip draft document", slog.String("document", doc.Name))
			stats.Skipped++
			continue
		}
		if err != nil {
			slog.Error("failed to render document", slog.String("document", doc.Name), slog.String("error", err.Error()))
			stats.Failed++
			continue
		}

		target := filepath.Join(outDir, filepath.FromSlash(doc.Name)+".html")
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return stats, fmt.Errorf("create output directory: %w", err)
		}
		if err := os.WriteFile(target, page, 0o644); err != nil {
			return stats, fmt.Errorf("write %s: %w", target, err)
		}

		slog.Debug("document written", slog.String("document", doc.Name), slog.String("path", target))
		stats.Written++
	}

	return stats, nil
}
