package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdmath/internal/ui/pretty"
	"github.com/yaklabco/mdmath/pkg/runner"
	"github.com/yaklabco/mdmath/pkg/source"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No Markdown files found."))
		}
		return 0, nil
	}

	display := relativize(result, r.opts.WorkingDir)
	for _, file := range display.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		switch r.opts.Mode {
		case runner.ModeCheck:
			r.writeDiagnostics(file)
		case runner.ModeRender:
			r.writeRendered(file)
			r.writeDiagnostics(file)
		default:
			r.writeTokens(file)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, summaryLine(r.styles, r.opts.Mode, result.Stats))
	}

	return reportedCount(result, r.opts.Mode), nil
}

// writeTokens lists the math tokens of a file under a file header.
func (r *TextReporter) writeTokens(file runner.FileOutcome) {
	if file.Document == nil || len(file.Document.Math) == 0 {
		return
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.Path, len(file.Document.Math), "token"))
	for _, tok := range file.Document.Math {
		fmt.Fprint(r.bw, r.styles.FormatToken(tok, file.Document.Snapshot.SpanOf(tok.Span)))
	}
	fmt.Fprintln(r.bw)
}

// writeDiagnostics lists the diagnostics of a file under a file header.
func (r *TextReporter) writeDiagnostics(file runner.FileOutcome) {
	if len(file.Diagnostics) == 0 {
		return
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.Path, len(file.Diagnostics), "issue"))
	for _, diag := range file.Diagnostics {
		var sourceLine string
		if r.opts.ShowContext && file.Document != nil {
			sourceLine = getSourceLine(file.Document.Snapshot, diag.StartLine)
		}
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&diag, r.opts.ShowContext, sourceLine))
	}
	fmt.Fprintln(r.bw)
}

// writeRendered reports where a file's HTML went.
func (r *TextReporter) writeRendered(file runner.FileOutcome) {
	if file.OutputPath == "" {
		return
	}

	status := r.styles.Dim.Render("unchanged")
	if file.Written {
		status = r.styles.Success.Render("written")
	}
	fmt.Fprintf(r.bw, "%s -> %s  %s\n", r.styles.FilePath.Render(file.Path), file.OutputPath, status)
}

// getSourceLine returns a 1-based line of the snapshot.
func getSourceLine(snapshot *source.Snapshot, lineNum int) string {
	if snapshot == nil {
		return ""
	}
	return string(snapshot.LineContent(lineNum))
}
