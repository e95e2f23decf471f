package goldmark

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdmath/pkg/dollarmath"
)

// inlineParser recognizes `$...$` and `$$...$$` inside paragraphs,
// headings and table cells.
type inlineParser struct {
	opts dollarmath.Options
}

// NewInlineParser returns an inline parser for dollar math.
//
//nolint:ireturn // goldmark registers parsers by interface.
func NewInlineParser(opts dollarmath.Options) parser.InlineParser {
	return &inlineParser{opts: opts}
}

// Trigger implements parser.InlineParser.
func (p *inlineParser) Trigger() []byte {
	return []byte{'$'}
}

// Parse implements parser.InlineParser. The scan runs on the absolute
// document source, limited to the enclosing block, so a span may cross
// soft line breaks.
func (p *inlineParser) Parse(parent ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, seg := block.PeekLine()
	if len(line) == 0 || seg.Padding != 0 {
		return nil
	}

	src := block.Source()
	end := min(blockStop(parent, seg), len(src))
	match, ok := dollarmath.ScanInline(src[:end], seg.Start, p.opts)
	if !ok {
		return nil
	}

	tok := match.Token
	if lines := parent.Lines(); lines.Len() > 1 {
		width := len(tok.Markup)
		tok.Content = joinSegments(src, lines, tok.Span.StartOffset+width, tok.Span.EndOffset-width)
	}

	advanceTo(block, match.Next)
	return NewMathInline(tok)
}

// blockStop returns the offset where the parent block's text ends.
func blockStop(parent ast.Node, seg text.Segment) int {
	lines := parent.Lines()
	if lines == nil || lines.Len() == 0 {
		return seg.Stop
	}
	return max(lines.At(lines.Len()-1).Stop, seg.Stop)
}

// advanceTo moves the reader to the absolute offset target, stepping over
// line boundaries and any container prefixes between them.
func advanceTo(block text.Reader, target int) {
	for {
		line, seg := block.PeekLine()
		if line == nil {
			return
		}
		if target < seg.Stop {
			block.Advance(target - seg.Start)
			return
		}
		block.AdvanceLine()
	}
}
