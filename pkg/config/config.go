// Package config defines core configuration types for mdmath.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true if the severity is one of the known levels.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// OutputFormat specifies the output format for scan and check results.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
)

// IsValid returns true if the format is supported.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON:
		return true
	default:
		return false
	}
}

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// MathConfig holds the scanner options. Booleans are pointers so that an
// explicit false in a file overrides a true default during merge.
type MathConfig struct {
	AllowSpace      *bool  `yaml:"allow_space,omitempty"`
	AllowDigits     *bool  `yaml:"allow_digits,omitempty"`
	DoubleInline    *bool  `yaml:"double_inline,omitempty"`
	AllowLabels     *bool  `yaml:"allow_labels,omitempty"`
	AllowBlankLines *bool  `yaml:"allow_blank_lines,omitempty"`
	LabelNormalizer string `yaml:"label_normalizer,omitempty"`
}

// RenderConfig controls HTML output.
type RenderConfig struct {
	// Renderer names the math renderer ("placeholder" or "mathjax").
	Renderer string `yaml:"renderer,omitempty"`

	// OutDir is where rendered HTML is written. Empty means next to the source.
	OutDir string `yaml:"out_dir,omitempty"`

	// InlineTag and BlockTag name the elements wrapping math. Empty means
	// "span" and "div".
	InlineTag string `yaml:"inline_tag,omitempty"`
	BlockTag  string `yaml:"block_tag,omitempty"`

	// Class is the class on every wrapper. Empty means "math".
	Class string `yaml:"class,omitempty"`
}

// Config is the root configuration structure for mdmath.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// SeverityDefault is the severity of diagnostics that have no fixed level.
	SeverityDefault string `yaml:"severity_default"`

	// Math configures the scanners.
	Math MathConfig `yaml:"math"`

	// Render configures HTML output.
	Render RenderConfig `yaml:"render"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Strict turns warnings into a failing exit status.
	Strict bool `yaml:"-"`

	// Stdout prints rendered HTML instead of writing files.
	Stdout bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:          FlavorCommonMark,
		SeverityDefault: string(SeverityWarning),
		Math: MathConfig{
			AllowSpace:      Bool(true),
			AllowDigits:     Bool(true),
			DoubleInline:    Bool(true),
			AllowLabels:     Bool(true),
			AllowBlankLines: Bool(true),
			LabelNormalizer: "hyphen",
		},
		Render: RenderConfig{
			Renderer: "placeholder",
		},
		Format: FormatText,
		Jobs:   0, // 0 means use runtime.NumCPU
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}
