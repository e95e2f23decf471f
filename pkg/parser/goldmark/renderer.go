package goldmark

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdmath/pkg/dollarmath"
)

// RenderErrorHandler is notified when the math renderer fails on a token.
// The escaped diagnostic has already been written in place of the math.
type RenderErrorHandler func(tok dollarmath.Token, err error)

// mathRenderer writes math nodes through a dollarmath.Bridge.
type mathRenderer struct {
	bridge  dollarmath.Bridge
	onError RenderErrorHandler
}

// NewMathRenderer returns an HTML node renderer for math nodes.
//
//nolint:ireturn // goldmark registers renderers by interface.
func NewMathRenderer(bridge dollarmath.Bridge, onError RenderErrorHandler) renderer.NodeRenderer {
	return &mathRenderer{bridge: bridge, onError: onError}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *mathRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMathInline, r.renderInline)
	reg.Register(KindMathBlock, r.renderBlock)
}

func (r *mathRenderer) renderInline(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	node, ok := n.(*MathInline)
	if !ok {
		return ast.WalkContinue, nil
	}
	r.write(w, node.Token)
	return ast.WalkSkipChildren, nil
}

func (r *mathRenderer) renderBlock(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	node, ok := n.(*MathBlock)
	if !ok {
		return ast.WalkContinue, nil
	}
	r.write(w, node.Token)
	return ast.WalkSkipChildren, nil
}

func (r *mathRenderer) write(w util.BufWriter, tok dollarmath.Token) {
	res := r.bridge.Render(tok)
	if res.Err != nil && r.onError != nil {
		r.onError(tok, res.Err)
	}
	_, _ = w.WriteString(res.HTML)
}
