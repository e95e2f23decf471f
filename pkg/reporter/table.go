package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdmath/internal/ui/pretty"
	"github.com/yaklabco/mdmath/pkg/runner"
)

// TableReporter formats results as a styled table with color-coded rows.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))
	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, pretty.TerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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

	switch r.opts.Mode {
	case runner.ModeCheck:
		fmt.Fprint(r.bw, r.formatter.FormatTable(pretty.DiagnosticColumns(), pretty.DiagnosticRows(display)))
	case runner.ModeRender:
		fmt.Fprint(r.bw, r.formatter.FormatTable(renderColumns(), renderRows(display)))
		if result.Stats.DiagnosticsTotal > 0 {
			fmt.Fprint(r.bw, r.formatter.FormatTable(pretty.DiagnosticColumns(), pretty.DiagnosticRows(display)))
		}
	default:
		fmt.Fprint(r.bw, r.formatter.FormatTable(pretty.TokenColumns(), pretty.TokenRows(display)))
	}

	for _, file := range display.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, summaryLine(r.styles, r.opts.Mode, result.Stats))
	}

	return reportedCount(result, r.opts.Mode), nil
}

func renderColumns() []pretty.Column {
	return []pretty.Column{{Header: "FILE"}, {Header: "OUTPUT", Flex: true}, {Header: "STATUS"}}
}

// renderRows puts every rendered file in a single group.
func renderRows(result *runner.Result) [][]pretty.TableRow {
	var rows []pretty.TableRow
	for _, file := range result.Files {
		if file.OutputPath == "" {
			continue
		}
		status := "unchanged"
		if file.Written {
			status = "written"
		}
		rows = append(rows, pretty.TableRow{Cells: []string{file.Path, file.OutputPath, status}})
	}
	if len(rows) == 0 {
		return nil
	}
	return [][]pretty.TableRow{rows}
}
