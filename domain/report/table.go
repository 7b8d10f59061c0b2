package report

import "time"

// Config controls labeling and formatting of a report.
type Config struct {
	CurrencyPrefix string
	Labels         LabelMap
	// Totals adds a footer row summing money columns.
	Totals bool
}

// DefaultConfig returns the configuration used by the pharmacy front end.
func DefaultConfig() Config {
	return Config{
		CurrencyPrefix: DefaultCurrencyPrefix,
		Labels:         DefaultLabels,
	}
}

// Column describes one report column.
type Column struct {
	Key   string
	Label string
	// Class is decided by the key alone.
	Class      Class
	AlignRight bool
}

// Table is the view model of one rendered report.
type Table struct {
	Title       string
	GeneratedAt time.Time
	Columns     []Column
	Rows        [][]Cell
	// Totals is nil unless Config.Totals is set and a money column exists.
	Totals []Cell
}

// Empty reports whether the table has no body rows.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

// Build derives the table view model from rows. Column order is the key order
// of the first row; keys missing from later rows render as NullText and keys
// only present in later rows are ignored.
func Build(rows []Row, title string, generatedAt time.Time, cfg Config) *Table {
	t := &Table{Title: title, GeneratedAt: generatedAt}
	if len(rows) == 0 {
		return t
	}
	labels := cfg.Labels
	if labels == nil {
		labels = DefaultLabels
	}

	keys := rows[0].Keys()
	t.Columns = make([]Column, len(keys))
	for i, k := range keys {
		class := ClassifyColumn(k)
		t.Columns[i] = Column{
			Key:        k,
			Label:      labels.Label(k),
			Class:      class,
			AlignRight: class.RightAligned(),
		}
	}

	t.Rows = make([][]Cell, len(rows))
	for i, r := range rows {
		cells := make([]Cell, len(keys))
		for j, k := range keys {
			v, ok := r.Get(k)
			if !ok {
				v = Null()
			}
			cells[j] = FormatCell(k, v, cfg.CurrencyPrefix)
		}
		t.Rows[i] = cells
	}

	if cfg.Totals {
		t.Totals = buildTotals(t.Columns, rows, cfg.CurrencyPrefix)
	}
	return t
}
