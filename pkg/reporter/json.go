package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdmath/pkg/runner"
)

// jsonSchemaVersion is bumped when the JSON layout changes incompatibly.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Mode    string           `json:"mode"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Tokens      []JSONToken      `json:"tokens,omitempty"`
	Diagnostics []JSONDiagnostic `json:"diagnostics,omitempty"`
	Output      string           `json:"output,omitempty"`
	Written     bool             `json:"written,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONToken represents a single math token.
type JSONToken struct {
	Kind        string `json:"kind"`
	Content     string `json:"content"`
	Label       string `json:"label,omitempty"`
	Markup      string `json:"markup"`
	Display     bool   `json:"display"`
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
}

// JSONDiagnostic represents a single diagnostic.
type JSONDiagnostic struct {
	Rule        string `json:"rule"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesProcessed  int            `json:"filesProcessed"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesWritten    int            `json:"filesWritten"`
	FilesErrored    int            `json:"filesErrored"`
	TotalTokens     int            `json:"totalTokens"`
	TotalIssues     int            `json:"totalIssues"`
	ByKind          map[string]int `json:"byKind"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(relativize(result, r.opts.WorkingDir))

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return reportedCount(result, r.opts.Mode), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Mode:    r.opts.Mode.String(),
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			ByKind:     make(map[string]int),
			BySeverity: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:    file.Path,
			Output:  file.OutputPath,
			Written: file.Written,
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		if file.Document != nil {
			for _, tok := range file.Document.Math {
				span := file.Document.Snapshot.SpanOf(tok.Span)
				fileResult.Tokens = append(fileResult.Tokens, JSONToken{
					Kind:        tok.Kind.String(),
					Content:     tok.Content,
					Label:       tok.Label,
					Markup:      tok.Markup,
					Display:     tok.Display(),
					StartOffset: tok.Span.StartOffset,
					EndOffset:   tok.Span.EndOffset,
					StartLine:   span.StartLine,
					StartColumn: span.StartColumn,
					EndLine:     span.EndLine,
					EndColumn:   span.EndColumn,
				})
			}
		}

		for _, diag := range file.Diagnostics {
			fileResult.Diagnostics = append(fileResult.Diagnostics, JSONDiagnostic{
				Rule:        diag.Rule,
				Severity:    string(diag.Severity),
				Message:     diag.Message,
				StartLine:   diag.StartLine,
				StartColumn: diag.StartColumn,
				EndLine:     diag.EndLine,
				EndColumn:   diag.EndColumn,
				Suggestion:  diag.Suggestion,
			})
		}

		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary.FilesProcessed = stats.FilesProcessed
	output.Summary.FilesWithIssues = stats.FilesWithIssues
	output.Summary.FilesWritten = stats.FilesWritten
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.TotalTokens = stats.TokensTotal
	output.Summary.TotalIssues = stats.DiagnosticsTotal
	for k, v := range stats.TokensByKind {
		output.Summary.ByKind[k] = v
	}
	for k, v := range stats.DiagnosticsBySeverity {
		output.Summary.BySeverity[k] = v
	}

	return output
}
