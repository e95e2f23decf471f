// Package check reports problems with the math in a parsed document.
package check

import (
	"github.com/yaklabco/mdmath/pkg/config"
	"github.com/yaklabco/mdmath/pkg/source"
)

// Rule names.
const (
	RuleUnclosedBlock = "unclosed-math-block"
	RuleRenderError   = "render-error"
	RuleEmptyMath     = "empty-math"
)

// Diagnostic describes a single problem found in a document.
type Diagnostic struct {
	// Rule is the name of the check that produced this diagnostic.
	Rule string

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// FilePath is the path to the file containing the issue.
	FilePath string

	// StartLine is the 1-based line number where the issue starts.
	StartLine int

	// StartColumn is the 1-based column number where the issue starts.
	StartColumn int

	// EndLine is the 1-based line number where the issue ends.
	EndLine int

	// EndColumn is the 1-based column number where the issue ends.
	EndColumn int

	// Suggestion is an optional human-readable fix suggestion.
	Suggestion string
}

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnosticAt starts building a diagnostic at a specific position.
func NewDiagnosticAt(rule, filePath string, span source.Span, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			Rule:        rule,
			Message:     message,
			FilePath:    filePath,
			Severity:    config.SeverityWarning,
			StartLine:   span.StartLine,
			StartColumn: span.StartColumn,
			EndLine:     span.EndLine,
			EndColumn:   span.EndColumn,
		},
	}
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion sets a fix suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// Build returns the constructed diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
