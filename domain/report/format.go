package report

import (
	"strings"
	"time"
)

// DefaultCurrencyPrefix is the Peruvian sol prefix used on money cells.
const DefaultCurrencyPrefix = "S/. "

// NullText is rendered for null or missing values.
const NullText = "-"

// DateLayout is the output layout for date cells.
const DateLayout = "2006-01-02"

// dateLayouts are tried in order when parsing date cells. The RFC1123 forms
// are what the Flask API emits for DATE columns.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
	"Mon, 2 Jan 2006 15:04:05 MST",
}

// Cell is one formatted body cell.
type Cell struct {
	Text       string
	Class      Class
	AlignRight bool
	// Emphasis marks money cells, rendered bold.
	Emphasis bool
	Null     bool
}

// FormatCell formats the value found under key.
func FormatCell(key string, v Value, currencyPrefix string) Cell {
	class := ClassifyCell(key, v)
	if v.IsNull() {
		return Cell{Text: NullText, Class: class, AlignRight: class.RightAligned(), Null: true}
	}

	switch class {
	case Money:
		return Cell{Text: FormatMoney(v, currencyPrefix), Class: Money, AlignRight: true, Emphasis: true}
	case Date:
		return Cell{Text: FormatDate(v.String()), Class: Date}
	case Numeric:
		return Cell{Text: v.String(), Class: Numeric, AlignRight: true}
	default:
		return Cell{Text: v.String(), Class: Plain}
	}
}

// FormatMoney renders v as prefix + amount with two decimals. Values that do
// not hold a number are returned unchanged.
func FormatMoney(v Value, currencyPrefix string) string {
	d, ok := v.Decimal()
	if !ok {
		return v.String()
	}
	return currencyPrefix + d.StringFixed(2)
}

// FormatDate renders s as YYYY-MM-DD when it parses as a date or date-time,
// otherwise it returns s unchanged.
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format(DateLayout)
}

// ParseDate parses s with the supported layouts and returns it in UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
