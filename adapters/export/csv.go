package export

import (
	"encoding/csv"
	"io"

	"gofarma/domain/report"
)

// CSVExporter writes the header labels and formatted cells as CSV.
type CSVExporter struct{}

func (CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }
func (CSVExporter) Extension() string   { return ".csv" }

func (CSVExporter) Export(w io.Writer, t *report.Table, _ Options) error {
	cw := csv.NewWriter(w)
	if len(t.Columns) > 0 {
		if err := cw.Write(headerLabels(t)); err != nil {
			return err
		}
	}
	if err := cw.WriteAll(bodyText(t)); err != nil {
		return err
	}
	return cw.Error()
}
