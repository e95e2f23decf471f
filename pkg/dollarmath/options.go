package dollarmath

import "errors"

// ErrNilNormalizer is returned by Options.Validate when no label normalizer is set.
var ErrNilNormalizer = errors.New("label normalizer must not be nil")

// Options controls the scanners. Resolve it once per document (or run)
// and share it by value; scanners only read it.
type Options struct {
	// AllowSpace permits whitespace immediately inside inline delimiters, e.g. `$ a $`.
	AllowSpace bool

	// AllowDigits permits a digit immediately outside inline delimiters, e.g. `1$a$` or `$a$2`.
	AllowDigits bool

	// DoubleInline recognizes `$$...$$` in inline context as display math.
	DoubleInline bool

	// AllowLabels lets block closings carry a `(label)` suffix.
	AllowLabels bool

	// AllowBlankLines lets multi-line blocks contain blank lines.
	// When false a blank line ends the search for a closing `$$`.
	AllowBlankLines bool

	// LabelNormalizer maps a raw label to its stored form.
	LabelNormalizer func(string) string
}

// DefaultOptions returns the documented defaults: everything allowed and
// labels hyphenated.
func DefaultOptions() Options {
	return Options{
		AllowSpace:      true,
		AllowDigits:     true,
		DoubleInline:    true,
		AllowLabels:     true,
		AllowBlankLines: true,
		LabelNormalizer: HyphenateLabel,
	}
}

// Validate reports configuration misuse. Call it at setup time.
func (o Options) Validate() error {
	if o.LabelNormalizer == nil {
		return ErrNilNormalizer
	}
	return nil
}

// normalize applies the configured normalizer, tolerating a nil one.
func (o Options) normalize(label string) string {
	if o.LabelNormalizer == nil {
		return HyphenateLabel(label)
	}
	return o.LabelNormalizer(label)
}
