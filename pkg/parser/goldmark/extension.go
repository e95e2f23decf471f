package goldmark

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdmath/pkg/dollarmath"
)

// Parser priorities. The block parser must run ahead of fenced code (700).
const (
	blockPriority    = 690
	inlinePriority   = 150
	rendererPriority = 500
)

// Extension adds dollar math to a goldmark instance.
type Extension struct {
	opts    dollarmath.Options
	bridge  dollarmath.Bridge
	onError RenderErrorHandler
}

// Option configures an Extension.
type Option interface {
	SetOption(e *Extension)
}

type extensionFunc func(e *Extension)

func (fn extensionFunc) SetOption(e *Extension) {
	fn(e)
}

// WithScanOptions sets the scanner options.
func WithScanOptions(opts dollarmath.Options) Option {
	return extensionFunc(func(e *Extension) {
		e.opts = opts
	})
}

// WithMathRenderer sets the function that renders math content.
func WithMathRenderer(fn dollarmath.Renderer) Option {
	return extensionFunc(func(e *Extension) {
		e.bridge.Math = fn
	})
}

// WithLabelRenderer sets the function that renders block labels.
func WithLabelRenderer(fn dollarmath.LabelRenderer) Option {
	return extensionFunc(func(e *Extension) {
		e.bridge.Label = fn
	})
}

// WithMarkup sets the wrapper tags and class of rendered math. Empty
// values keep the defaults ("span", "div" and "math").
func WithMarkup(inlineTag, blockTag, class string) Option {
	return extensionFunc(func(e *Extension) {
		e.bridge.InlineTag = inlineTag
		e.bridge.BlockTag = blockTag
		e.bridge.Class = class
	})
}

// WithRenderErrorHandler registers a callback for renderer failures.
func WithRenderErrorHandler(fn RenderErrorHandler) Option {
	return extensionFunc(func(e *Extension) {
		e.onError = fn
	})
}

// NewExtension creates a math extension. Without options it uses
// dollarmath.DefaultOptions and the placeholder renderer.
func NewExtension(opts ...Option) *Extension {
	e := &Extension{opts: dollarmath.DefaultOptions()}
	for _, o := range opts {
		o.SetOption(e)
	}
	return e
}

// Extend implements goldmark.Extender.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(NewBlockParser(e.opts), blockPriority),
		),
		parser.WithInlineParsers(
			util.Prioritized(NewInlineParser(e.opts), inlinePriority),
		),
	)
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewMathRenderer(e.bridge, e.onError), rendererPriority),
	))
}
