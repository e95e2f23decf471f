package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdmath/pkg/check"
	"github.com/yaklabco/mdmath/pkg/config"
	"github.com/yaklabco/mdmath/pkg/dollarmath"
	"github.com/yaklabco/mdmath/pkg/source"
)

// maxContentWidth bounds how much math content a token line shows.
const maxContentWidth = 60

// FormatDiagnostic formats a single diagnostic for terminal output.
func (s *Styles) FormatDiagnostic(diag *check.Diagnostic, showContext bool, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
	)

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+diag.Rule+")"),
	))

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.StartColumn))
	}

	if diag.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatToken formats a math token found at span.
func (s *Styles) FormatToken(tok dollarmath.Token, span source.Span) string {
	line := fmt.Sprintf("  %s  %s  %s",
		s.Location.Render(fmt.Sprintf("%d:%d", span.StartLine, span.StartColumn)),
		s.TokenKind.Render(tok.Kind.String()),
		s.TokenContent.Render(OneLine(tok.Content, maxContentWidth)),
	)
	if tok.HasLabel() {
		line += "  " + s.TokenLabel.Render("#"+tok.Label)
	}
	return line + "\n"
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header with a count of items.
func (s *Styles) FormatFileHeader(path string, count int, noun string) string {
	header := s.FilePath.Render(path)
	if count > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", count, Plural(count, noun)))
	}
	return header
}

// OneLine collapses whitespace runs to single spaces and truncates the
// result to maxLen runes with a trailing ellipsis.
func OneLine(text string, maxLen int) string {
	return truncateString(strings.Join(strings.Fields(text), " "), maxLen)
}

// Plural appends "s" to noun unless n is 1.
func Plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
