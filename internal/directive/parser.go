package directive

import (
	"bytes"
	"log/slog"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	headerRe = regexp.MustCompile(`^\.\.\s+([A-Za-z0-9][A-Za-z0-9_\-]*)::(?:\s+(.*))?$`)
	optionRe = regexp.MustCompile(`^:([^:\s]+):(?:\s+(.*))?$`)
)

// Parser opens a Block on lines of the form ".. name::" and collects the indented ":key: value" lines that follow.
// The directive is executed against the registry when the block closes.
type Parser struct {
	registry *Registry
}

func NewParser(registry *Registry) parser.BlockParser {
	return &Parser{registry: registry}
}

func (p *Parser) Trigger() []byte {
	return []byte{'.'}
}

func (p *Parser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()

	trimmed := bytes.TrimSpace(line)
	if !bytes.HasPrefix(trimmed, []byte("..")) {
		return nil, parser.NoChildren
	}

	parts := headerRe.FindSubmatch(trimmed)
	if len(parts) < 2 {
		return nil, parser.NoChildren
	}

	block := &Block{
		Name:    string(parts[1]),
		Options: make(Options),
		start:   segment.Start,
	}
	if len(parts) > 2 {
		block.Args = string(bytes.TrimSpace(parts[2]))
	}

	return block, parser.NoChildren
}

func (p *Parser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, _ := reader.PeekLine()
	if util.IsBlank(line) {
		return parser.Close
	}

	indent := indentWidth(line)
	if indent == 0 {
		return parser.Close
	}

	block := node.(*Block)
	trimmed := strings.TrimSpace(string(line))

	if parts := optionRe.FindStringSubmatch(trimmed); parts != nil && !block.hasContent {
		name := parts[1]
		if _, ok := block.Options[name]; ok {
			p.fail(block, &DuplicateOptionError{Option: name})
		}
		block.Options[name] = strings.TrimSpace(parts[2])
		block.optIndent = indent
		block.lastOption = name
		return parser.Continue | parser.NoChildren
	}

	switch {
	case block.lastOption != "" && indent > block.optIndent && !block.hasContent:
		prev := block.Options[block.lastOption]
		if prev != "" {
			prev += " "
		}
		block.Options[block.lastOption] = prev + trimmed
	case strings.HasPrefix(trimmed, ":") && !block.hasContent:
		p.fail(block, &MalformedOptionError{Text: trimmed})
	default:
		block.hasContent = true
		p.fail(block, &ContentNotAllowedError{})
	}

	return parser.Continue | parser.NoChildren
}

func (p *Parser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	block := node.(*Block)
	block.Line = bytes.Count(reader.Source()[:block.start], []byte{'\n'}) + 1

	if block.Err == nil {
		block.HTML, block.Err = p.registry.Run(block.Name, block.Options)
	}

	if block.Err != nil {
		block.Err = &DirectiveError{Directive: block.Name, Line: block.Line, Err: block.Err}
		slog.Warn("directive failed",
			slog.String("directive", block.Name),
			slog.Int("line", block.Line),
			slog.String("error", block.Err.Error()),
		)
	}
}

func (p *Parser) CanInterruptParagraph() bool {
	return true
}

func (p *Parser) CanAcceptIndentedLine() bool {
	return false
}

// fail keeps the first error seen while collecting the block.
func (p *Parser) fail(block *Block, err error) {
	if block.Err == nil {
		block.Err = err
	}
}

func indentWidth(line []byte) int {
	w := 0
	for _, c := range line {
		switch c {
		case ' ':
			w++
		case '\t':
			w += 4 - w%4
		default:
			return w
		}
	}
	return w
}
