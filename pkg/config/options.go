package config

import (
	"fmt"

	"github.com/yaklabco/mdmath/pkg/dollarmath"
)

// ScanOptions resolves the math section into scanner options. Unset
// booleans fall back to dollarmath.DefaultOptions.
func (m MathConfig) ScanOptions() (dollarmath.Options, error) {
	opts := dollarmath.DefaultOptions()
	opts.AllowSpace = boolOr(m.AllowSpace, opts.AllowSpace)
	opts.AllowDigits = boolOr(m.AllowDigits, opts.AllowDigits)
	opts.DoubleInline = boolOr(m.DoubleInline, opts.DoubleInline)
	opts.AllowLabels = boolOr(m.AllowLabels, opts.AllowLabels)
	opts.AllowBlankLines = boolOr(m.AllowBlankLines, opts.AllowBlankLines)

	normalizer, err := dollarmath.LookupNormalizer(m.LabelNormalizer)
	if err != nil {
		return dollarmath.Options{}, fmt.Errorf("math.label_normalizer: %w", err)
	}
	opts.LabelNormalizer = normalizer

	if err := opts.Validate(); err != nil {
		return dollarmath.Options{}, fmt.Errorf("math options: %w", err)
	}
	return opts, nil
}

// MathRenderer resolves the configured renderer name.
func (r RenderConfig) MathRenderer() (dollarmath.Renderer, error) {
	renderer, err := dollarmath.LookupRenderer(r.Renderer)
	if err != nil {
		return nil, fmt.Errorf("render.renderer: %w", err)
	}
	return renderer, nil
}

func boolOr(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
