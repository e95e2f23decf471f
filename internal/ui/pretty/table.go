package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdmath/pkg/config"
	"github.com/yaklabco/mdmath/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding    = 2
	minColumnWidth  = 4
	minFlexWidth    = 20
	heavySeparator  = "="
	lightSeparator  = "-"
	fileColumnIndex = 0
)

// Column describes one table column.
type Column struct {
	// Header is the column title.
	Header string

	// Flex marks the column that shrinks first when the table is wider
	// than the terminal.
	Flex bool
}

// TableRow is one row of cells, styled by severity when set.
type TableRow struct {
	Cells    []string
	Severity config.Severity
}

// TableFormatter formats rows as a fixed-width styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = DefaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// DiagnosticColumns are the columns of a check table.
func DiagnosticColumns() []Column {
	return []Column{
		{Header: "FILE"},
		{Header: "LOC"},
		{Header: "SEVERITY"},
		{Header: "MESSAGE", Flex: true},
		{Header: "RULE"},
	}
}

// TokenColumns are the columns of a scan table.
func TokenColumns() []Column {
	return []Column{
		{Header: "FILE"},
		{Header: "LOC"},
		{Header: "KIND"},
		{Header: "CONTENT", Flex: true},
		{Header: "LABEL"},
	}
}

// DiagnosticRows builds one group of rows per file with diagnostics.
func DiagnosticRows(result *runner.Result) [][]TableRow {
	var groups [][]TableRow
	for _, file := range result.Files {
		if len(file.Diagnostics) == 0 {
			continue
		}
		rows := make([]TableRow, 0, len(file.Diagnostics))
		for _, diag := range file.Diagnostics {
			rows = append(rows, TableRow{
				Cells: []string{
					file.Path,
					fmt.Sprintf("%d:%d", diag.StartLine, diag.StartColumn),
					string(diag.Severity),
					diag.Message,
					diag.Rule,
				},
				Severity: diag.Severity,
			})
		}
		groups = append(groups, rows)
	}
	return groups
}

// TokenRows builds one group of rows per file with math tokens.
func TokenRows(result *runner.Result) [][]TableRow {
	var groups [][]TableRow
	for _, file := range result.Files {
		if file.Document == nil || len(file.Document.Math) == 0 {
			continue
		}
		rows := make([]TableRow, 0, len(file.Document.Math))
		for _, tok := range file.Document.Math {
			span := file.Document.Snapshot.SpanOf(tok.Span)
			rows = append(rows, TableRow{Cells: []string{
				file.Path,
				fmt.Sprintf("%d:%d", span.StartLine, span.StartColumn),
				tok.Kind.String(),
				strings.Join(strings.Fields(tok.Content), " "),
				tok.Label,
			}})
		}
		groups = append(groups, rows)
	}
	return groups
}

// FormatTable renders grouped rows under the given columns. Groups are
// divided by light separators.
func (t *TableFormatter) FormatTable(columns []Column, groups [][]TableRow) string {
	if len(groups) == 0 {
		return ""
	}

	widths := t.columnWidths(columns, groups)

	var builder strings.Builder

	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
	}
	builder.WriteString(t.styles.TableHeader.Render(formatCells(headers, widths)))
	builder.WriteString("\n")
	builder.WriteString(t.separator(widths, heavySeparator))
	builder.WriteString("\n")

	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.separator(widths, lightSeparator))
			builder.WriteString("\n")
		}
		for _, row := range group {
			cells := make([]string, len(widths))
			for j := range widths {
				if j >= len(row.Cells) {
					continue
				}
				if j == fileColumnIndex {
					cells[j] = truncateFilePath(row.Cells[j], widths[j])
				} else {
					cells[j] = truncateString(row.Cells[j], widths[j])
				}
			}
			builder.WriteString(t.rowStyle(row.Severity).Render(formatCells(cells, widths)))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.separator(widths, heavySeparator))
	builder.WriteString("\n")

	return builder.String()
}

// columnWidths sizes each column to its widest cell and shrinks the flex
// column, then the file column, to fit the terminal.
func (t *TableFormatter) columnWidths(columns []Column, groups [][]TableRow) []int {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = max(minColumnWidth, utf8.RuneCountInString(c.Header))
	}
	for _, group := range groups {
		for _, row := range group {
			for i := range widths {
				if i < len(row.Cells) {
					widths[i] = max(widths[i], utf8.RuneCountInString(row.Cells[i]))
				}
			}
		}
	}

	shrink := func(i int) {
		excess := totalWidth(widths) - t.termWidth
		if excess > 0 && widths[i] > minFlexWidth {
			widths[i] = max(minFlexWidth, widths[i]-excess)
		}
	}
	for i, c := range columns {
		if c.Flex {
			shrink(i)
		}
	}
	shrink(fileColumnIndex)

	return widths
}

func totalWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w + tablePadding
	}
	return total
}

func formatCells(cells []string, widths []int) string {
	var builder strings.Builder
	builder.WriteString(" ")
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		builder.WriteString(cell)
		if i < len(widths)-1 {
			builder.WriteString(strings.Repeat(" ", w-utf8.RuneCountInString(cell)+tablePadding))
		}
	}
	return builder.String()
}

func (t *TableFormatter) separator(widths []int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, totalWidth(widths)))
}

// rowStyle returns the style for a severity level.
func (t *TableFormatter) rowStyle(severity config.Severity) lipgloss.Style {
	switch severity {
	case config.SeverityError:
		return t.styles.TableErrorRow
	case config.SeverityWarning:
		return t.styles.TableWarnRow
	case config.SeverityInfo:
		return t.styles.TableInfoRow
	default:
		return lipgloss.NewStyle()
	}
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	runes := []rune(str)
	if len(runes) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename)
// rather than the beginning.
func truncateFilePath(path string, maxLen int) string {
	runes := []rune(path)
	if len(runes) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return string(runes[len(runes)-maxLen:])
	}
	return "..." + string(runes[len(runes)-maxLen+3:])
}
