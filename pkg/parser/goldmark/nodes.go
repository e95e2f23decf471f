package goldmark

import (
	"strconv"

	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/mdmath/pkg/dollarmath"
)

// KindMathInline is the node kind for `$...$` and inline `$$...$$` math.
var KindMathInline = ast.NewNodeKind("MathInline")

// KindMathBlock is the node kind for `$$` block math.
var KindMathBlock = ast.NewNodeKind("MathBlock")

// MathInline is an inline math node. It has no children; the content lives
// in the token.
type MathInline struct {
	ast.BaseInline

	Token dollarmath.Token
}

// NewMathInline creates an inline math node for tok.
func NewMathInline(tok dollarmath.Token) *MathInline {
	return &MathInline{Token: tok}
}

// Kind implements ast.Node.
func (n *MathInline) Kind() ast.NodeKind {
	return KindMathInline
}

// Dump implements ast.Node.
func (n *MathInline) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Kind":    n.Token.Kind.String(),
		"Content": strconv.Quote(n.Token.Content),
	}, nil)
}

// MathBlock is a display math block.
type MathBlock struct {
	ast.BaseBlock

	Token dollarmath.Token

	// closingLine is the source line holding the closing `$$`.
	closingLine int
}

// NewMathBlock creates a block math node for tok.
func NewMathBlock(tok dollarmath.Token) *MathBlock {
	return &MathBlock{Token: tok, closingLine: tok.Lines.End - 1}
}

// Kind implements ast.Node.
func (n *MathBlock) Kind() ast.NodeKind {
	return KindMathBlock
}

// IsRaw reports that the block content is not parsed as Markdown.
func (n *MathBlock) IsRaw() bool {
	return true
}

// Dump implements ast.Node.
func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Kind":    n.Token.Kind.String(),
		"Label":   n.Token.Label,
		"Content": strconv.Quote(n.Token.Content),
	}, nil)
}
