package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"gofarma/domain/report"
)

const xlsxSheet = "Sheet1"

// XLSXExporter writes the table to the first sheet of a workbook, header bold
// and numeric columns right-aligned.
type XLSXExporter struct{}

func (XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (XLSXExporter) Extension() string { return ".xlsx" }

func (XLSXExporter) Export(w io.Writer, t *report.Table, _ Options) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	rightStyle, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{Horizontal: "right"}})
	if err != nil {
		return err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return err
	}

	for col, label := range headerLabels(t) {
		if err := setCell(f, col+1, 1, label, headerStyle); err != nil {
			return err
		}
	}

	rows := t.Rows
	if t.Totals != nil {
		rows = append(rows[:len(rows):len(rows)], t.Totals)
	}
	for r, cells := range rows {
		for col, cell := range cells {
			style := 0
			switch {
			case cell.Emphasis:
				style = moneyStyle
			case cell.AlignRight:
				style = rightStyle
			}
			if err := setCell(f, col+1, r+2, cell.Text, style); err != nil {
				return err
			}
		}
	}

	for col := range t.Columns {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(xlsxSheet, name, name, 18); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func setCell(f *excelize.File, col, row int, value string, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(xlsxSheet, cell, value); err != nil {
		return err
	}
	if style == 0 {
		return nil
	}
	return f.SetCellStyle(xlsxSheet, cell, cell, style)
}
