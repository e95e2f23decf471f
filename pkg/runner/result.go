package runner

import (
	"github.com/yaklabco/mdmath/pkg/check"
	"github.com/yaklabco/mdmath/pkg/config"
	"github.com/yaklabco/mdmath/pkg/parser/goldmark"
)

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Document is the parsed file. Nil when Error is set.
	Document *goldmark.Document

	// Diagnostics are the check findings for the file.
	Diagnostics []check.Diagnostic

	// HTML is the rendered document when rendering to stdout.
	HTML []byte

	// OutputPath is where rendered HTML was (or would have been) written.
	OutputPath string

	// Written reports whether OutputPath changed on disk.
	Written bool

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// FilesWritten is the number of HTML files created or updated.
	FilesWritten int

	// TokensTotal is the number of math tokens across all files.
	TokensTotal int

	// TokensByKind maps token kind names to counts.
	TokensByKind map[string]int

	// DiagnosticsTotal is the total number of diagnostics across all files.
	DiagnosticsTotal int

	// DiagnosticsBySeverity maps severity levels to counts.
	DiagnosticsBySeverity map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any diagnostics with error severity occurred
// or any file failed to process.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0 || r.Stats.FilesErrored > 0
}

// HasWarnings reports whether any warning diagnostics occurred.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[string(config.SeverityWarning)] > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		TokensByKind:          make(map[string]int),
		DiagnosticsBySeverity: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++

	if outcome.Written {
		r.Stats.FilesWritten++
	}

	if outcome.Document != nil {
		r.Stats.TokensTotal += len(outcome.Document.Math)
		for _, tok := range outcome.Document.Math {
			r.Stats.TokensByKind[tok.Kind.String()]++
		}
	}

	if len(outcome.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
	}
	r.Stats.DiagnosticsTotal += len(outcome.Diagnostics)
	for _, diag := range outcome.Diagnostics {
		severity := string(diag.Severity)
		if severity == "" {
			severity = string(config.SeverityWarning)
		}
		r.Stats.DiagnosticsBySeverity[severity]++
	}
}
