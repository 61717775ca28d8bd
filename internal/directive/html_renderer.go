package directive

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// ErrorPolicy decides what a failed directive leaves in the output document.
type ErrorPolicy string

const (
	// ErrorPolicyInline renders an escaped system message where the directive stood.
	ErrorPolicyInline ErrorPolicy = "inline"
	// ErrorPolicyLog drops the directive from the output; the failure is only logged.
	ErrorPolicyLog ErrorPolicy = "log"
)

func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch ErrorPolicy(strings.ToLower(s)) {
	case "", ErrorPolicyInline:
		return ErrorPolicyInline, nil
	case ErrorPolicyLog:
		return ErrorPolicyLog, nil
	}
	return "", fmt.Errorf("unknown directive error policy %q", s)
}

type HTMLRenderer struct {
	html.Config
	policy ErrorPolicy
}

func NewHTMLRenderer(policy ErrorPolicy, opts ...html.Option) renderer.NodeRenderer {
	r := &HTMLRenderer{
		Config: html.NewConfig(),
		policy: policy,
	}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

func (r *HTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindBlock, r.renderBlock)
}

func (r *HTMLRenderer) renderBlock(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	block := n.(*Block)
	if block.Err == nil {
		_, _ = w.WriteString(block.HTML)
		_ = w.WriteByte('\n')
		return ast.WalkSkipChildren, nil
	}

	if r.policy == ErrorPolicyLog {
		return ast.WalkSkipChildren, nil
	}

	_, _ = w.WriteString(`<div class="system-message">`)
	_, _ = fmt.Fprintf(w, `<p class="system-message-title">System Message: ERROR (line %d)</p>`, block.Line)
	_, _ = w.WriteString(`<p>`)
	_, _ = w.Write(util.EscapeHTML([]byte(block.Err.Error())))
	_, _ = w.WriteString("</p></div>\n")

	return ast.WalkSkipChildren, nil
}
