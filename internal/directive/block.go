package directive

import (
	"strconv"

	"github.com/yuin/goldmark/ast"
)

// Block represents a directive occurrence in the AST.
// HTML holds the expansion produced by the handler; Err is set instead when the directive failed.
type Block struct {
	ast.BaseBlock
	Name    string
	Args    string
	Options Options
	Line    int
	HTML    string
	Err     error

	start      int
	optIndent  int
	lastOption string
	hasContent bool
}

var KindBlock = ast.NewNodeKind("DirectiveBlock")

// Dump implements ast.Node.Dump
func (n *Block) Dump(source []byte, level int) {
	kv := map[string]string{
		"Name": n.Name,
		"Line": strconv.Itoa(n.Line),
	}
	for k, v := range n.Options {
		kv[":"+k+":"] = v
	}
	if n.Err != nil {
		kv["Error"] = n.Err.Error()
	}
	ast.DumpHelper(n, source, level, kv, nil)
}

// Kind implements ast.Node.Kind
func (n *Block) Kind() ast.NodeKind {
	return KindBlock
}
