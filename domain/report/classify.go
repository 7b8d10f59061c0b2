package report

import "strings"

// Class is the inferred semantic type of a column or cell.
type Class int

const (
	Plain Class = iota
	Money
	Numeric
	Date
)

func (c Class) String() string {
	switch c {
	case Money:
		return "money"
	case Numeric:
		return "numeric"
	case Date:
		return "date"
	default:
		return "plain"
	}
}

// RightAligned reports whether values of this class are right-aligned.
func (c Class) RightAligned() bool {
	return c == Money || c == Numeric
}

var (
	moneyFragments = []string{"precio", "ganancia", "gastado", "monto", "caja", "subtotal", "ingresos"}
	moneyKeys      = map[string]bool{
		"total_venta":  true,
		"total_mes":    true,
		"total_monto":  true,
		"total_dinero": true,
	}

	numericFragments = []string{"stock", "cantidad", "total", "dias"}
	numericKeys      = map[string]bool{
		"num_ventas":   true,
		"total_ventas": true,
	}

	dateFragments = []string{"fecha", "vencimiento"}
)

// ClassifyColumn classifies a column by its key alone. Tests are
// case-insensitive substring matches against the key, never the label.
func ClassifyColumn(key string) Class {
	k := strings.ToLower(key)
	switch {
	case containsAny(k, moneyFragments) || moneyKeys[k]:
		return Money
	case containsAny(k, numericFragments) || numericKeys[k]:
		return Numeric
	case containsAny(k, dateFragments):
		return Date
	default:
		return Plain
	}
}

// ClassifyCell classifies one cell. A number in a column that is not money or
// numeric by name is numeric, even when the key looks like a date.
func ClassifyCell(key string, v Value) Class {
	c := ClassifyColumn(key)
	if c == Money || c == Numeric {
		return c
	}
	if v.IsNumber() {
		return Numeric
	}
	return c
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}
