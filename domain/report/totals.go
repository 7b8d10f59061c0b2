package report

import (
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// TotalsLabel heads the totals footer when the first column is not money.
const TotalsLabel = "Total"

// buildTotals sums every money column. Cells that are null or not numeric are
// skipped. Returns nil when there is no money column.
func buildTotals(columns []Column, rows []Row, currencyPrefix string) []Cell {
	totals := make([]Cell, len(columns))
	hasMoney := false
	for i, col := range columns {
		if col.Class != Money {
			totals[i] = Cell{Class: col.Class, AlignRight: col.AlignRight}
			continue
		}
		hasMoney = true

		data := make(stats.Float64Data, 0, len(rows))
		for _, r := range rows {
			v, ok := r.Get(col.Key)
			if !ok {
				continue
			}
			if d, ok := v.Decimal(); ok {
				data = append(data, d.InexactFloat64())
			}
		}
		sum, err := stats.Sum(data)
		if err != nil {
			// empty input
			sum = 0
		}
		totals[i] = Cell{
			Text:       currencyPrefix + decimal.NewFromFloat(sum).StringFixed(2),
			Class:      Money,
			AlignRight: true,
			Emphasis:   true,
		}
	}
	if !hasMoney {
		return nil
	}
	if columns[0].Class != Money {
		totals[0].Text = TotalsLabel
	}
	return totals
}
