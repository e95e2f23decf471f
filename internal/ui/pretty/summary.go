package pretty

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yaklabco/mdmath/pkg/config"
	"github.com/yaklabco/mdmath/pkg/runner"
)

// FormatCheckSummary formats check statistics as a single line.
// Example: "3 issues (1 error, 2 warnings) in 2 files".
func (s *Styles) FormatCheckSummary(stats runner.Stats) string {
	var parts []string

	if stats.DiagnosticsTotal == 0 {
		parts = append(parts, s.Success.Render("No issues found")+
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, Plural(stats.FilesProcessed, "file"))))
	} else {
		var severityParts []string
		if n := stats.DiagnosticsBySeverity[string(config.SeverityError)]; n > 0 {
			severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", n, Plural(n, "error"))))
		}
		if n := stats.DiagnosticsBySeverity[string(config.SeverityWarning)]; n > 0 {
			severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", n, Plural(n, "warning"))))
		}
		if n := stats.DiagnosticsBySeverity[string(config.SeverityInfo)]; n > 0 {
			severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", n)))
		}

		head := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, Plural(stats.DiagnosticsTotal, "issue"))
		if len(severityParts) > 0 {
			head += " (" + strings.Join(severityParts, ", ") + ")"
		}
		parts = append(parts, head,
			fmt.Sprintf("in %d %s", stats.FilesWithIssues, Plural(stats.FilesWithIssues, "file")))
	}

	return strings.Join(append(parts, s.erroredPart(stats)...), ", ") + "\n"
}

// FormatScanSummary formats scan statistics as a single line.
// Example: "5 math tokens (3 math_inline, 2 math_block) in 2 files".
func (s *Styles) FormatScanSummary(stats runner.Stats) string {
	head := fmt.Sprintf("%d math %s", stats.TokensTotal, Plural(stats.TokensTotal, "token"))

	if len(stats.TokensByKind) > 0 {
		kinds := make([]string, 0, len(stats.TokensByKind))
		for kind := range stats.TokensByKind {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		counts := make([]string, 0, len(kinds))
		for _, kind := range kinds {
			counts = append(counts, fmt.Sprintf("%d %s", stats.TokensByKind[kind], kind))
		}
		head += s.Dim.Render(" (" + strings.Join(counts, ", ") + ")")
	}

	parts := []string{
		head,
		fmt.Sprintf("in %d %s", stats.FilesProcessed, Plural(stats.FilesProcessed, "file")),
	}
	return strings.Join(append(parts, s.erroredPart(stats)...), ", ") + "\n"
}

// FormatRenderSummary formats render statistics as a single line.
// Example: "2 files written, 1 unchanged".
func (s *Styles) FormatRenderSummary(stats runner.Stats) string {
	unchanged := stats.FilesProcessed - stats.FilesWritten
	parts := []string{
		s.Success.Render(fmt.Sprintf("%d %s written", stats.FilesWritten, Plural(stats.FilesWritten, "file"))),
		s.Dim.Render(fmt.Sprintf("%d unchanged", unchanged)),
	}
	return strings.Join(append(parts, s.erroredPart(stats)...), ", ") + "\n"
}

func (s *Styles) erroredPart(stats runner.Stats) []string {
	if stats.FilesErrored == 0 {
		return nil
	}
	return []string{s.Failure.Render(fmt.Sprintf("%d %s failed", stats.FilesErrored, Plural(stats.FilesErrored, "file")))}
}
