package goldmark

import (
	"strings"

	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdmath/pkg/dollarmath"
	"github.com/yaklabco/mdmath/pkg/source"
)

// maxMarkerIndent is how far a `>` marker may be indented.
const maxMarkerIndent = 3

// containerLines adapts the document line index to the container a math
// block opens in. Prefixes owned by enclosing blockquotes and list items
// are stripped, so the block scanner sees lines the way goldmark hands them
// to block parsers.
type containerLines struct {
	src    []byte
	lines  source.Lines
	opener int
	first  source.LineInfo

	// quotes is the number of `>` markers on the opening line.
	quotes int

	// indent is the list indentation, in bytes, after the last marker.
	indent int

	// end is the first line that no longer belongs to the container.
	end int
}

// newContainerLines builds the adapter for a block opening at offset start
// on line opener. Everything between the line start and start is treated as
// the container prefix.
func newContainerLines(src []byte, lines source.Lines, opener, start int) *containerLines {
	raw := lines.At(opener)
	prefix := src[raw.StartOffset:start]

	c := &containerLines{
		src:    src,
		lines:  lines,
		opener: opener,
		first:  raw.Rebase(src, start),
		end:    lines.Len(),
	}

	rest := prefix
	if idx := strings.LastIndexByte(string(prefix), '>'); idx >= 0 {
		c.quotes = strings.Count(string(prefix), ">")
		rest = prefix[idx+1:]
		if len(rest) > 0 && (rest[0] == ' ' || rest[0] == '\t') {
			rest = rest[1:]
		}
	}
	c.indent = len(rest)
	if !c.nested() {
		return c
	}

	for i := opener + 1; i < lines.Len(); i++ {
		if !c.belongs(i) {
			c.end = i
			break
		}
	}
	return c
}

// nested reports whether the block sits inside a blockquote or list item.
func (c *containerLines) nested() bool {
	return c.quotes > 0 || c.indent > 0
}

// Len implements dollarmath.LineIndex.
func (c *containerLines) Len() int {
	return c.lines.Len()
}

// At implements dollarmath.LineIndex.
func (c *containerLines) At(i int) source.LineInfo {
	if i == c.opener {
		return c.first
	}
	line := c.lines.At(i)
	if !c.nested() || i < c.opener {
		return line
	}
	pos, _ := c.strip(line)
	return line.Rebase(c.src, pos)
}

// belongs reports whether line i still carries the container's prefix.
func (c *containerLines) belongs(i int) bool {
	line := c.lines.At(i)
	pos, ok := c.strip(line)
	if !ok {
		return false
	}
	if c.indent == 0 || line.Rebase(c.src, pos).IsBlank() {
		return true
	}
	// A list item ends at a line indented less than its content.
	return pos-line.StartOffset >= c.quotePrefixLen(line)+c.indent
}

// strip skips the container prefix of line and returns the offset where the
// line's own text starts. ok is false when a `>` marker is missing.
func (c *containerLines) strip(line source.LineInfo) (int, bool) {
	pos := line.StartOffset
	end := line.NewlineStart
	for q := 0; q < c.quotes; q++ {
		pos = skipSpaces(c.src, pos, end, maxMarkerIndent)
		if pos >= end || c.src[pos] != '>' {
			return pos, false
		}
		pos++
		if pos < end && (c.src[pos] == ' ' || c.src[pos] == '\t') {
			pos++
		}
	}
	return skipSpaces(c.src, pos, end, c.indent), true
}

// quotePrefixLen returns the byte length of the `>` markers at the start
// of line.
func (c *containerLines) quotePrefixLen(line source.LineInfo) int {
	if c.quotes == 0 {
		return 0
	}
	saved := c.indent
	c.indent = 0
	pos, _ := c.strip(line)
	c.indent = saved
	return pos - line.StartOffset
}

// content rebuilds the token content from the container-relative lines so
// that nested blocks do not carry their container prefixes.
func (c *containerLines) content(tok dollarmath.Token) string {
	if !c.nested() {
		return tok.Content
	}
	start := tok.Span.StartOffset + len(tok.Markup)
	end := start + len(tok.Content)

	var b strings.Builder
	for i := tok.Lines.Start; i < tok.Lines.End; i++ {
		line := c.At(i)
		from := max(line.StartOffset, start)
		to := min(line.EndOffset, end)
		if from < to {
			b.Write(c.src[from:to])
		}
	}
	return b.String()
}

func skipSpaces(src []byte, pos, end, limit int) int {
	for n := 0; n < limit && pos < end && (src[pos] == ' ' || src[pos] == '\t'); n++ {
		pos++
	}
	return pos
}

// joinSegments returns the text between start and end as seen through segs.
// Gaps between segments are kept when they hold only indentation and
// dropped when they hold container markers such as `>`.
func joinSegments(src []byte, segs *text.Segments, start, end int) string {
	var b strings.Builder
	pos := start
	for i := 0; i < segs.Len() && pos < end; i++ {
		seg := segs.At(i)
		if seg.Stop <= pos {
			continue
		}
		if seg.Start > pos {
			gap := src[pos:min(seg.Start, end)]
			if isIndentation(gap) {
				b.Write(gap)
			}
			pos = seg.Start
		}
		if stop := min(seg.Stop, end); pos < stop {
			b.Write(src[pos:stop])
			pos = stop
		}
	}
	if pos < end {
		b.Write(src[pos:end])
	}
	return b.String()
}

func isIndentation(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}
