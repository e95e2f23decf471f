package configloader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/mdmath/pkg/config"
	"github.com/yaklabco/mdmath/pkg/dollarmath"
	"github.com/yaklabco/mdmath/pkg/fsutil"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "math.label_normalizer").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Err is the underlying sentinel, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFlavors lists valid flavor values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !knownFlavors[cfg.Flavor] {
		result.addError("flavor", cfg.Flavor,
			fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor), nil)
	}

	if cfg.SeverityDefault != "" && !config.Severity(cfg.SeverityDefault).IsValid() {
		result.addError("severity_default", cfg.SeverityDefault,
			fmt.Sprintf("invalid severity %q; must be one of: error, warning, info", cfg.SeverityDefault), nil)
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format,
			fmt.Sprintf("invalid format %q; must be one of: text, table, json", cfg.Format), nil)
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)", nil)
	}

	if cfg.Math.LabelNormalizer != "" {
		if _, err := dollarmath.LookupNormalizer(cfg.Math.LabelNormalizer); err != nil {
			result.addError("math.label_normalizer", cfg.Math.LabelNormalizer, err.Error(), unwrapSentinel(err))
		}
	}

	if cfg.Render.Renderer != "" {
		if _, err := dollarmath.LookupRenderer(cfg.Render.Renderer); err != nil {
			result.addError("render.renderer", cfg.Render.Renderer, err.Error(), unwrapSentinel(err))
		}
	}

	validateTag(result, "render.inline_tag", cfg.Render.InlineTag)
	validateTag(result, "render.block_tag", cfg.Render.BlockTag)

	if cfg.Math.AllowBlankLines != nil && !*cfg.Math.AllowBlankLines &&
		cfg.Math.AllowLabels != nil && !*cfg.Math.AllowLabels &&
		cfg.Math.DoubleInline != nil && !*cfg.Math.DoubleInline {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "math",
			Message: "labels, blank lines and inline $$ are all disabled; only plain $ and $$ blocks are recognized",
		})
	}

	validateIgnorePatterns(cfg, result)

	return result
}

func (r *ValidationResult) addError(field string, value any, message string, err error) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message, Err: err})
}

// unwrapSentinel returns the innermost error so errors.Is works on the
// validation error without repeating the lookup message.
func unwrapSentinel(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if err := fsutil.ValidateGlob(pattern); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, fmt.Sprintf("invalid glob pattern: %v", err), err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

func validateTag(result *ValidationResult, field, tag string) {
	if tag != "" && !isElementName(tag) {
		result.addError(field, tag,
			fmt.Sprintf("invalid element name %q; use letters, digits and '-'", tag), nil)
	}
}

// isElementName reports whether tag is a plain HTML element name.
func isElementName(tag string) bool {
	for i, c := range tag {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '-'):
		default:
			return false
		}
	}
	return tag != ""
}
