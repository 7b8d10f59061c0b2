package export

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"gofarma/domain/report"
)

var (
	styleTermTitle  = lipgloss.NewStyle().Bold(true)
	styleTermFaint  = lipgloss.NewStyle().Faint(true)
	styleTermHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleTermCell   = lipgloss.NewStyle().Padding(0, 1)
	styleTermRight  = styleTermCell.Align(lipgloss.Right)
	styleTermBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// TerminalExporter draws a bordered table for a terminal.
type TerminalExporter struct{}

func (TerminalExporter) ContentType() string { return "text/plain; charset=utf-8" }
func (TerminalExporter) Extension() string   { return ".txt" }

func (TerminalExporter) Export(w io.Writer, t *report.Table, opts Options) error {
	if _, err := fmt.Fprintln(w, styleTermTitle.Render(t.Title)); err != nil {
		return err
	}
	if opts.Generated != "" {
		if _, err := fmt.Fprintln(w, styleTermFaint.Render("Generado: "+opts.Generated)); err != nil {
			return err
		}
	}
	if t.Empty() {
		_, err := fmt.Fprintln(w, emptyText)
		return err
	}

	columns := t.Columns
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleTermBorder).
		Headers(headerLabels(t)...).
		Rows(bodyText(t)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTermHeader
			}
			if col < len(columns) && columns[col].AlignRight {
				return styleTermRight
			}
			return styleTermCell
		})

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}
