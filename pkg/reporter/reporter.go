// Package reporter writes the results of a run in text, table or JSON form.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdmath/internal/ui/pretty"
	"github.com/yaklabco/mdmath/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of items reported (tokens for scans, diagnostics
	// for checks, written files for renders) and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
//
//nolint:ireturn // Callers pick the implementation through Options.Format.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// displayPath returns path relative to workDir when it lies inside it.
func displayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// relativize returns a copy of result with display paths.
func relativize(result *runner.Result, workDir string) *runner.Result {
	if result == nil || workDir == "" {
		return result
	}
	out := *result
	out.Files = make([]runner.FileOutcome, len(result.Files))
	for i, f := range result.Files {
		f.Path = displayPath(f.Path, workDir)
		if f.OutputPath != "" {
			f.OutputPath = displayPath(f.OutputPath, workDir)
		}
		if len(f.Diagnostics) > 0 {
			diags := append(f.Diagnostics[:0:0], f.Diagnostics...)
			for j := range diags {
				diags[j].FilePath = f.Path
			}
			f.Diagnostics = diags
		}
		out.Files[i] = f
	}
	return &out
}

// reportedCount returns the number of items a mode reports.
func reportedCount(result *runner.Result, mode runner.Mode) int {
	if result == nil {
		return 0
	}
	switch mode {
	case runner.ModeCheck:
		return result.Stats.DiagnosticsTotal
	case runner.ModeRender:
		return result.Stats.FilesWritten
	default:
		return result.Stats.TokensTotal
	}
}

// summaryLine returns the one-line summary for a mode.
func summaryLine(styles *pretty.Styles, mode runner.Mode, stats runner.Stats) string {
	switch mode {
	case runner.ModeCheck:
		return styles.FormatCheckSummary(stats)
	case runner.ModeRender:
		return styles.FormatRenderSummary(stats)
	default:
		return styles.FormatScanSummary(stats)
	}
}
