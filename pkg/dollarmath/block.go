package dollarmath

import (
	"bytes"

	"github.com/yaklabco/mdmath/pkg/source"
)

// codeIndent is the relative indentation at which a line becomes an
// indented code block.
const codeIndent = 4

// sameLineMinLength is the trimmed length a first line must exceed before
// it is checked for a closing `$$`. `$$` and `$$$` never close themselves.
const sameLineMinLength = 3

// LineIndex gives the block scanner per-line offsets.
// source.Lines implements it; hosts with container-adjusted lines can
// provide their own.
type LineIndex interface {
	Len() int
	At(i int) source.LineInfo
}

// Window is the line range the block scanner may consume.
type Window struct {
	// StartLine is the candidate opening line.
	StartLine int

	// EndLine is the exclusive upper bound, e.g. the end of the enclosing container.
	EndLine int

	// BlockIndent is the indentation of the enclosing container.
	BlockIndent int
}

// BlockMatch is a successful block scan.
type BlockMatch struct {
	// Token is the recognized block math.
	Token Token

	// NextLine is the index of the first line after the block.
	NextLine int
}

// BlockOutcome says whether a block scan produced a token, and why not.
type BlockOutcome uint8

const (
	BlockMatched   BlockOutcome = iota // a block was recognized
	BlockNoOpener                      // the line does not open a `$$` block
	BlockUnclosed                      // no closing `$$` inside the window
	BlockEmpty                         // closed, but nothing between the delimiters
)

// String returns a short description of the outcome.
func (o BlockOutcome) String() string {
	switch o {
	case BlockMatched:
		return "accepted"
	case BlockNoOpener:
		return "not an opener"
	case BlockUnclosed:
		return "unclosed"
	case BlockEmpty:
		return "empty content"
	default:
		return "unknown"
	}
}

// ScanBlock decides whether the line at win.StartLine opens a `$$` block
// that closes inside the window. On failure nothing is consumed and the
// host should continue with its own block grammar.
func ScanBlock(src []byte, lines LineIndex, win Window, opts Options) (BlockMatch, bool) {
	match, outcome := ExamineBlock(src, lines, win, opts)
	return match, outcome == BlockMatched
}

// ExamineBlock is ScanBlock with the reason for a failed scan. Hosts use it
// to tell a stray `$$` apart from a block that closed around nothing.
func ExamineBlock(src []byte, lines LineIndex, win Window, opts Options) (BlockMatch, BlockOutcome) {
	if win.StartLine < 0 || win.StartLine >= lines.Len() || win.StartLine >= win.EndLine {
		return BlockMatch{}, BlockNoOpener
	}
	first := lines.At(win.StartLine)
	if first.Indent-win.BlockIndent >= codeIndent {
		return BlockMatch{}, BlockNoOpener
	}

	startPos := first.ContentStart()
	lineEnd := first.NewlineStart
	if startPos+2 > lineEnd || src[startPos] != dollar || src[startPos+1] != dollar {
		return BlockMatch{}, BlockNoOpener
	}

	closingLine := win.StartLine
	contentEnd, label, closed := closeSameLine(src, startPos, lineEnd, opts)

	if !closed {
		endLine := min(win.EndLine, lines.Len())
		for next := win.StartLine + 1; next < endLine; next++ {
			line := lines.At(next)
			if line.IsBlank() && !opts.AllowBlankLines {
				break
			}
			start := line.ContentStart()
			if line.NewlineStart-start < 2 {
				continue
			}
			if end, ok := plainCloser(src, start, line.NewlineStart); ok {
				contentEnd, closed = end, true
			} else if opts.AllowLabels {
				contentEnd, label, closed = labelCloser(src, start, line.NewlineStart)
			}
			if closed {
				closingLine = next
				break
			}
		}
	}
	if !closed {
		return BlockMatch{}, BlockUnclosed
	}

	contentStart := startPos + 2
	if contentEnd <= contentStart {
		return BlockMatch{}, BlockEmpty
	}

	tok := Token{
		Kind:    KindBlock,
		Content: string(src[contentStart:contentEnd]),
		Markup:  MarkupDouble,
		Span:    spanOf(startPos, lines.At(closingLine).NewlineStart),
		Lines:   LineRange{Start: win.StartLine, End: closingLine + 1},
	}
	if label != "" {
		if normalized := opts.normalize(label); normalized != "" {
			tok.Kind = KindBlockLabeled
			tok.Label = normalized
		}
	}
	return BlockMatch{Token: tok, NextLine: closingLine + 1}, BlockMatched
}

// closeSameLine tries to close the block on its opening line.
func closeSameLine(src []byte, startPos, lineEnd int, opts Options) (int, string, bool) {
	text := src[startPos:lineEnd]
	if len(bytes.TrimSpace(text)) <= sameLineMinLength {
		return 0, "", false
	}
	if end, ok := plainCloser(src, startPos, lineEnd); ok {
		return end, "", true
	}
	if opts.AllowLabels {
		return labelCloser(src, startPos, lineEnd)
	}
	return 0, "", false
}

// plainCloser checks whether src[start:end] ends with an unescaped `$$`,
// ignoring trailing whitespace, and returns the offset of its first `$`.
func plainCloser(src []byte, start, end int) (int, bool) {
	trimmed := bytes.TrimRight(src[start:end], " \t\v\f\r\n")
	if !bytes.HasSuffix(trimmed, []byte(MarkupDouble)) {
		return 0, false
	}
	closer := start + len(trimmed) - 2
	if IsEscaped(src, closer) {
		return 0, false
	}
	return closer, true
}

// labelCloser runs the label matcher on src[start:end].
func labelCloser(src []byte, start, end int) (int, string, bool) {
	m, ok := MatchLabel(src[start:end], end)
	if !ok || IsEscaped(src, m.ContentEnd) {
		return 0, "", false
	}
	return m.ContentEnd, m.Label, true
}

func spanOf(start, end int) source.Range {
	return source.Range{StartOffset: start, EndOffset: end}
}
