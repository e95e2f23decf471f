package goldmark

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdmath/pkg/dollarmath"
	"github.com/yaklabco/mdmath/pkg/source"
)

//nolint:gochecknoglobals // goldmark context keys are package-level by convention.
var (
	linesKey    = parser.NewContextKey()
	unclosedKey = parser.NewContextKey()
	emptyKey    = parser.NewContextKey()
)

// blockParser recognizes `$$` display blocks. The whole block is located
// when it opens; later lines are consumed until the closing line.
type blockParser struct {
	opts dollarmath.Options
}

// NewBlockParser returns a block parser for dollar math.
//
//nolint:ireturn // goldmark registers parsers by interface.
func NewBlockParser(opts dollarmath.Options) parser.BlockParser {
	return &blockParser{opts: opts}
}

// Trigger implements parser.BlockParser.
func (p *blockParser) Trigger() []byte {
	return []byte{'$'}
}

// Open implements parser.BlockParser.
func (p *blockParser) Open(_ ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	if pc.BlockOffset() < 0 {
		return nil, parser.NoChildren
	}
	line, seg := reader.PeekLine()
	if line == nil {
		return nil, parser.NoChildren
	}

	src := reader.Source()
	lines := documentLines(pc, src)
	opener := lines.LineOf(seg.Start)
	if opener < 0 {
		return nil, parser.NoChildren
	}

	index := newContainerLines(src, lines, opener, seg.Start)
	win := dollarmath.Window{StartLine: opener, EndLine: index.end}
	match, outcome := dollarmath.ExamineBlock(src, index, win, p.opts)
	switch outcome {
	case dollarmath.BlockMatched:
	case dollarmath.BlockUnclosed:
		recordLine(pc, unclosedKey, src, index.At(opener))
		return nil, parser.NoChildren
	case dollarmath.BlockEmpty:
		recordLine(pc, emptyKey, src, index.At(opener))
		return nil, parser.NoChildren
	case dollarmath.BlockNoOpener:
		return nil, parser.NoChildren
	}

	tok := match.Token
	tok.Content = index.content(tok)
	node := NewMathBlock(tok)
	node.Lines().Append(seg)
	reader.Advance(len(line) - newlineWidth(line))
	return node, parser.NoChildren
}

// Continue implements parser.BlockParser.
func (p *blockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	block, ok := node.(*MathBlock)
	if !ok {
		return parser.Close
	}
	line, seg := reader.PeekLine()
	if line == nil {
		return parser.Close
	}

	current := documentLines(pc, reader.Source()).LineOf(seg.Start)
	if current < 0 || current > block.closingLine {
		return parser.Close
	}

	block.Lines().Append(seg)
	reader.Advance(len(line) - newlineWidth(line))
	if current == block.closingLine {
		return parser.Close
	}
	return parser.Continue | parser.NoChildren
}

// Close implements parser.BlockParser.
func (p *blockParser) Close(ast.Node, text.Reader, parser.Context) {}

// CanInterruptParagraph implements parser.BlockParser.
func (p *blockParser) CanInterruptParagraph() bool {
	return true
}

// CanAcceptIndentedLine implements parser.BlockParser.
func (p *blockParser) CanAcceptIndentedLine() bool {
	return false
}

// documentLines returns the line index of the document being parsed,
// building it on first use when the caller did not seed the context.
func documentLines(pc parser.Context, src []byte) source.Lines {
	if lines, ok := pc.Get(linesKey).(source.Lines); ok {
		return lines
	}
	lines := source.BuildLines(src)
	pc.Set(linesKey, lines)
	return lines
}

// recordLine remembers a `$$` line the block scanner rejected, so it can
// be reported after parsing.
func recordLine(pc parser.Context, key parser.ContextKey, src []byte, line source.LineInfo) {
	start := line.ContentStart()
	if start+2 > line.NewlineStart || string(src[start:start+2]) != dollarmath.MarkupDouble {
		return
	}
	r := source.Range{StartOffset: start, EndOffset: line.NewlineStart}
	ranges, _ := pc.Get(key).([]source.Range)
	if n := len(ranges); n > 0 && ranges[n-1] == r {
		return
	}
	pc.Set(key, append(ranges, r))
}

// UnclosedBlocks returns the ranges of `$$` lines that found no closing
// line during the parse that used pc.
func UnclosedBlocks(pc parser.Context) []source.Range {
	ranges, _ := pc.Get(unclosedKey).([]source.Range)
	return ranges
}

// EmptyBlocks returns the ranges of `$$` lines whose block closed with no
// content in between, such as `$$$$`.
func EmptyBlocks(pc parser.Context) []source.Range {
	ranges, _ := pc.Get(emptyKey).([]source.Range)
	return ranges
}

func newlineWidth(line []byte) int {
	switch {
	case len(line) >= 2 && line[len(line)-2] == '\r' && line[len(line)-1] == '\n':
		return 2
	case len(line) >= 1 && line[len(line)-1] == '\n':
		return 1
	default:
		return 0
	}
}
