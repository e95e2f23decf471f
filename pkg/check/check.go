package check

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yaklabco/mdmath/pkg/config"
	"github.com/yaklabco/mdmath/pkg/dollarmath"
	"github.com/yaklabco/mdmath/pkg/parser/goldmark"
)

// Options configures Document.
type Options struct {
	// Bridge renders each token to detect renderer faults.
	Bridge dollarmath.Bridge

	// DefaultSeverity applies to findings that have no fixed severity.
	// Empty means warning.
	DefaultSeverity config.Severity
}

// Document runs every check on doc and returns the diagnostics sorted by
// position.
func Document(doc *goldmark.Document, opts Options) []Diagnostic {
	severity := opts.DefaultSeverity
	if severity == "" {
		severity = config.SeverityWarning
	}

	var diags []Diagnostic
	diags = append(diags, unclosedBlocks(doc)...)
	diags = append(diags, emptyBlocks(doc, severity)...)
	for _, tok := range doc.Math {
		if d, ok := emptyMath(doc, tok, severity); ok {
			diags = append(diags, d)
		}
		if d, ok := renderFault(doc, tok, opts.Bridge); ok {
			diags = append(diags, d)
		}
	}

	sortByPosition(diags)
	return diags
}

// RenderFaults reports only the tokens bridge fails to render. Grammar
// findings such as a stray `$$` are left out: the text still renders.
func RenderFaults(doc *goldmark.Document, bridge dollarmath.Bridge) []Diagnostic {
	var diags []Diagnostic
	for _, tok := range doc.Math {
		if d, ok := renderFault(doc, tok, bridge); ok {
			diags = append(diags, d)
		}
	}
	sortByPosition(diags)
	return diags
}

func sortByPosition(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].StartLine != diags[j].StartLine {
			return diags[i].StartLine < diags[j].StartLine
		}
		return diags[i].StartColumn < diags[j].StartColumn
	})
}

// unclosedBlocks reports `$$` lines that did not open a block and were not
// consumed as inline math either.
func unclosedBlocks(doc *goldmark.Document) []Diagnostic {
	var diags []Diagnostic
	for _, r := range doc.Unclosed {
		if covered(doc.Math, r.StartOffset) {
			continue
		}
		diags = append(diags, NewDiagnosticAt(RuleUnclosedBlock, doc.Snapshot.Path, doc.Snapshot.SpanOf(r),
			"math block opened with $$ is never closed").
			WithSeverity(config.SeverityError).
			WithSuggestion("add a line ending in $$ to close the block").
			Build())
	}
	return diags
}

// emptyBlocks reports `$$` lines whose block closed with nothing inside,
// such as `$$$$` or `$$ (eq1)`. The scanner rejects them, so they reach the
// output as plain text.
func emptyBlocks(doc *goldmark.Document, severity config.Severity) []Diagnostic {
	var diags []Diagnostic
	for _, r := range doc.Empty {
		if covered(doc.Math, r.StartOffset) {
			continue
		}
		diags = append(diags, NewDiagnosticAt(RuleEmptyMath, doc.Snapshot.Path, doc.Snapshot.SpanOf(r),
			"math block closed with $$ holds no content").
			WithSeverity(severity).
			WithSuggestion("put the math between the $$ delimiters").
			Build())
	}
	return diags
}

func emptyMath(doc *goldmark.Document, tok dollarmath.Token, severity config.Severity) (Diagnostic, bool) {
	if strings.TrimSpace(tok.Content) != "" {
		return Diagnostic{}, false
	}
	return NewDiagnosticAt(RuleEmptyMath, doc.Snapshot.Path, doc.Snapshot.SpanOf(tok.Span),
		fmt.Sprintf("%s holds only whitespace", tok.Kind)).
		WithSeverity(severity).
		Build(), true
}

func renderFault(doc *goldmark.Document, tok dollarmath.Token, bridge dollarmath.Bridge) (Diagnostic, bool) {
	res := bridge.Render(tok)
	if res.Err == nil {
		return Diagnostic{}, false
	}
	return NewDiagnosticAt(RuleRenderError, doc.Snapshot.Path, doc.Snapshot.SpanOf(tok.Span),
		fmt.Sprintf("math renderer failed: %v", res.Err)).
		WithSeverity(config.SeverityError).
		Build(), true
}

func covered(tokens []dollarmath.Token, offset int) bool {
	i := sort.Search(len(tokens), func(i int) bool {
		return tokens[i].Span.EndOffset > offset
	})
	return i < len(tokens) && tokens[i].Span.Contains(offset)
}

// Count tallies diagnostics by severity.
func Count(diags []Diagnostic) (errors, warnings int) {
	for _, d := range diags {
		switch d.Severity {
		case config.SeverityError:
			errors++
		case config.SeverityWarning:
			warnings++
		case config.SeverityInfo:
		}
	}
	return errors, warnings
}

