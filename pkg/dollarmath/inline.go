package dollarmath

import "bytes"

// dollar is the math delimiter byte.
const dollar = '$'

// InlineMatch is a successful inline scan.
type InlineMatch struct {
	// Token is the recognized inline math.
	Token Token

	// Next is the offset one past the closing delimiter.
	Next int
}

// ScanInline decides whether a `$...$` (or, with DoubleInline, `$$...$$`)
// span starts at pos. The closer is the leftmost unescaped `$` (or `$$`)
// after the opener; if that closer then fails the space or digit rules the
// scan fails rather than searching further.
//
// The search never looks past len(src); hosts bound the window by slicing.
func ScanInline(src []byte, pos int, opts Options) (InlineMatch, bool) {
	if pos < 0 || pos >= len(src) || src[pos] != dollar {
		return InlineMatch{}, false
	}
	if !opts.AllowSpace && isWhitespaceAt(src, pos+1) {
		return InlineMatch{}, false
	}
	if !opts.AllowDigits && isDigitAt(src, pos-1) {
		return InlineMatch{}, false
	}
	if IsEscaped(src, pos) {
		return InlineMatch{}, false
	}

	double := opts.DoubleInline && pos+1 < len(src) && src[pos+1] == dollar
	width := 1
	if double {
		width = 2
	}

	closer, ok := findInlineCloser(src, pos+width, double)
	if !ok {
		return InlineMatch{}, false
	}
	end := closer + width // one past the closing delimiter

	if !opts.AllowSpace && isWhitespaceAt(src, closer-1) {
		return InlineMatch{}, false
	}
	if !opts.AllowDigits && isDigitAt(src, end) {
		return InlineMatch{}, false
	}

	contentStart := pos + width
	if closer <= contentStart {
		return InlineMatch{}, false
	}

	tok := Token{
		Kind:    KindInline,
		Content: string(src[contentStart:closer]),
		Markup:  MarkupSingle,
		Span:    spanOf(pos, end),
	}
	if double {
		tok.Kind = KindInlineDisplay
		tok.Markup = MarkupDouble
	}
	return InlineMatch{Token: tok, Next: end}, true
}

// findInlineCloser returns the offset of the first byte of the closing
// delimiter, searching from `from`.
func findInlineCloser(src []byte, from int, double bool) (int, bool) {
	for from <= len(src) {
		idx := bytes.IndexByte(src[from:], dollar)
		if idx < 0 {
			return 0, false
		}
		candidate := from + idx
		from = candidate + 1
		if IsEscaped(src, candidate) {
			continue
		}
		if double && (candidate+1 >= len(src) || src[candidate+1] != dollar) {
			continue
		}
		return candidate, true
	}
	return 0, false
}

// isWhitespaceAt reports whether src[pos] is Markdown whitespace.
// Out-of-range positions are not whitespace.
func isWhitespaceAt(src []byte, pos int) bool {
	if pos < 0 || pos >= len(src) {
		return false
	}
	switch src[pos] {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// isDigitAt reports whether src[pos] is an ASCII digit.
func isDigitAt(src []byte, pos int) bool {
	if pos < 0 || pos >= len(src) {
		return false
	}
	return src[pos] >= '0' && src[pos] <= '9'
}
