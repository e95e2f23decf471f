package dollarmath

import "github.com/yaklabco/mdmath/pkg/source"

// Kind discriminates the math token variants.
type Kind uint8

const (
	KindInline        Kind = iota // $x$
	KindInlineDisplay             // $$x$$ inside a paragraph
	KindBlock                     // $$ ... $$ on its own lines
	KindBlockLabeled              // $$ ... $$ (label)
)

// String returns the token-stream name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInline:
		return "math_inline"
	case KindInlineDisplay:
		return "math_inline_double"
	case KindBlock:
		return "math_block"
	case KindBlockLabeled:
		return "math_block_label"
	default:
		return "math_unknown"
	}
}

// Markup delimiters recorded on tokens.
const (
	MarkupSingle = "$"
	MarkupDouble = "$$"
)

// LineRange is a 0-based, end-exclusive range of lines.
type LineRange struct {
	Start int
	End   int
}

// Len returns the number of lines in the range.
func (r LineRange) Len() int {
	return r.End - r.Start
}

// Token is a recognized math span or block.
// Tokens are only built for complete matches and are immutable afterwards.
type Token struct {
	// Kind is the matched delimiter variant.
	Kind Kind

	// Content is the raw math between the delimiters. Never empty.
	Content string

	// Label is the normalized label of a KindBlockLabeled token.
	Label string

	// Markup is the delimiter that matched ("$" or "$$").
	Markup string

	// Span is the byte range of the whole construct, delimiters included.
	// For blocks it ends at the end of the closing line (newline excluded).
	Span source.Range

	// Lines is the consumed line range of a block token.
	Lines LineRange
}

// Display reports whether the token renders in display mode.
func (t Token) Display() bool {
	return t.Kind != KindInline
}

// IsBlock reports whether the token came from the block scanner.
func (t Token) IsBlock() bool {
	return t.Kind == KindBlock || t.Kind == KindBlockLabeled
}

// HasLabel reports whether a normalized label is attached.
func (t Token) HasLabel() bool {
	return t.Kind == KindBlockLabeled && t.Label != ""
}
