package directive

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Extension that combines parser and renderer
type Extension struct {
	registry *Registry
	policy   ErrorPolicy
}

type Option func(*Extension)

func WithErrorPolicy(policy ErrorPolicy) Option {
	return func(e *Extension) {
		e.policy = policy
	}
}

func NewExtension(registry *Registry, opts ...Option) goldmark.Extender {
	e := &Extension{registry: registry, policy: ErrorPolicyInline}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(NewParser(e.registry), 500),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(NewHTMLRenderer(e.policy), 500),
		),
	)
}
