package dollarmath

import (
	"cmp"
	"errors"
	"fmt"
	"html"
	"strings"
)

// Renderer converts math content to markup. display is true for block and
// `$$...$$` inline tokens.
type Renderer func(content string, display bool) (string, error)

// LabelRenderer produces the anchor markup for a block label.
type LabelRenderer func(label string) string

// ErrRendererPanic wraps a panic recovered from a Renderer.
var ErrRendererPanic = errors.New("renderer panicked")

// Renderer names accepted by LookupRenderer.
const (
	RendererPlaceholder = "placeholder"
	RendererMathJax     = "mathjax"
)

// ErrUnknownRenderer is returned for a renderer name that is not built in.
var ErrUnknownRenderer = errors.New("unknown math renderer")

// LookupRenderer returns the built-in renderer registered under name.
// An empty name selects the placeholder renderer.
func LookupRenderer(name string) (Renderer, error) {
	switch strings.ToLower(name) {
	case "", RendererPlaceholder:
		return PlaceholderRenderer, nil
	case RendererMathJax:
		return MathJaxRenderer, nil
	default:
		return nil, fmt.Errorf("%w: %q (valid: %s, %s)", ErrUnknownRenderer, name,
			RendererPlaceholder, RendererMathJax)
	}
}

// PlaceholderRenderer escapes the content and wraps it in <eq> (inline) or
// <eqn> (display) tags. It stands in when no real math renderer exists.
func PlaceholderRenderer(content string, display bool) (string, error) {
	tag := "eq"
	if display {
		tag = "eqn"
	}
	return "<" + tag + ">" + html.EscapeString(content) + "</" + tag + ">", nil
}

// MathJaxRenderer escapes the content and wraps it in the TeX delimiters a
// client-side MathJax or KaTeX auto-render script looks for.
func MathJaxRenderer(content string, display bool) (string, error) {
	if display {
		return `\[` + html.EscapeString(content) + `\]`, nil
	}
	return `\(` + html.EscapeString(content) + `\)`, nil
}

// PermalinkLabel renders a label as a permalink anchor.
func PermalinkLabel(label string) string {
	return `<a href="#` + html.EscapeString(label) +
		`" class="mathlabel" title="Permalink to this equation">¶</a>`
}

// RenderResult is the outcome of rendering one token.
// When Err is set, HTML holds the escaped `content:message` diagnostic, so
// callers may emit it as is and keep rendering the rest of the document.
type RenderResult struct {
	HTML string
	Err  error
}

// Bridge maps tokens to HTML.
type Bridge struct {
	// Math renders math content. Nil means PlaceholderRenderer.
	Math Renderer

	// Label renders block labels. Nil means PermalinkLabel.
	Label LabelRenderer

	// InlineTag wraps inline tokens. Empty means "span".
	InlineTag string

	// BlockTag wraps block tokens. Empty means "div".
	BlockTag string

	// Class is the class shared by every wrapper, followed by "inline",
	// "display" or "block". Empty means "math".
	Class string
}

// Render renders a single token. A failing or panicking renderer affects
// only this token.
func (b Bridge) Render(tok Token) RenderResult {
	body, err := b.renderMath(tok)
	if err != nil {
		return RenderResult{
			HTML: html.EscapeString(tok.Content + ":" + err.Error()),
			Err:  err,
		}
	}

	inlineTag := cmp.Or(b.InlineTag, "span")
	blockTag := cmp.Or(b.BlockTag, "div")
	class := html.EscapeString(cmp.Or(b.Class, "math"))

	switch tok.Kind {
	case KindBlock:
		return RenderResult{HTML: "<" + blockTag + ` class="` + class + ` block">` + "\n" +
			body + "\n</" + blockTag + ">\n"}
	case KindBlockLabeled:
		label := b.Label
		if label == nil {
			label = PermalinkLabel
		}
		return RenderResult{HTML: "<" + blockTag + ` id="` + html.EscapeString(tok.Label) + `" class="` + class + ` block">` +
			"\n" + label(tok.Label) + "\n" + body + "\n</" + blockTag + ">\n"}
	case KindInlineDisplay:
		return RenderResult{HTML: "<" + inlineTag + ` class="` + class + ` display">` + body + "</" + inlineTag + ">"}
	default:
		return RenderResult{HTML: "<" + inlineTag + ` class="` + class + ` inline">` + body + "</" + inlineTag + ">"}
	}
}

func (b Bridge) renderMath(tok Token) (out string, err error) {
	renderer := b.Math
	if renderer == nil {
		renderer = PlaceholderRenderer
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrRendererPanic, r)
		}
	}()
	content := tok.Content
	if tok.IsBlock() {
		content = strings.TrimSpace(content)
	}
	return renderer(content, tok.Display())
}
