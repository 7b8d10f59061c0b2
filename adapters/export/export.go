// Package export writes rendered report tables to downloadable formats.
package export

import (
	"io"
	"strings"

	"gofarma/domain/report"
	"gofarma/internal/errors"
)

// Format names an export format
type Format string

const (
	FormatCSV      Format = "csv"
	FormatXLSX     Format = "xlsx"
	FormatMarkdown Format = "md"
	FormatTerminal Format = "term"
)

const emptyText = "No se encontraron datos para este reporte."

// Options carries presentation details that are not part of the table.
type Options struct {
	// Generated is the already formatted generation timestamp.
	Generated string
}

// Exporter writes a table in one format.
type Exporter interface {
	Export(w io.Writer, t *report.Table, opts Options) error
	ContentType() string
	Extension() string
}

// ParseFormat accepts csv, xlsx, md (or markdown) and term (or terminal).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "term", "terminal":
		return FormatTerminal, nil
	}
	return "", errors.InvalidInput("unsupported export format: " + s)
}

// For returns the exporter of f.
func For(f Format) (Exporter, error) {
	switch f {
	case FormatCSV:
		return CSVExporter{}, nil
	case FormatXLSX:
		return XLSXExporter{}, nil
	case FormatMarkdown:
		return MarkdownExporter{}, nil
	case FormatTerminal:
		return TerminalExporter{}, nil
	}
	return nil, errors.InvalidInput("unsupported export format: " + string(f))
}

// Filename builds the download name of a report, e.g. inventario-2024-03-05.csv.
func Filename(slug string, t *report.Table, e Exporter) string {
	return slug + "-" + t.GeneratedAt.Format(report.DateLayout) + e.Extension()
}

func headerLabels(t *report.Table) []string {
	labels := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		labels[i] = c.Label
	}
	return labels
}

// bodyText returns every body row as text, followed by the totals row if any.
func bodyText(t *report.Table) [][]string {
	rows := make([][]string, 0, len(t.Rows)+1)
	for _, r := range t.Rows {
		rows = append(rows, cellText(r))
	}
	if t.Totals != nil {
		rows = append(rows, cellText(t.Totals))
	}
	return rows
}

func cellText(cells []report.Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.Text
	}
	return out
}
