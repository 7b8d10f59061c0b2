// Package report turns uniform row-objects from the pharmacy API into a typed
// table view model: labeled columns, a semantic classification per column and
// per cell, and display text for every cell. It performs no I/O and holds no
// state, so it can be shared freely between goroutines.
package report

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind is the JSON type of a cell value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	// KindRaw holds nested JSON (objects, arrays) kept as its source text.
	KindRaw
)

// Value is a single scalar cell of a report row.
type Value struct {
	kind Kind
	text string
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Text returns a string value.
func Text(s string) Value { return Value{kind: KindString, text: s} }

// Number returns a numeric value from its JSON literal (e.g. "12.50").
func Number(literal string) Value { return Value{kind: KindNumber, text: literal} }

// Float returns a numeric value from a float64.
func Float(f float64) Value {
	return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// Int returns a numeric value from an int64.
func Int(i int64) Value { return Value{kind: KindNumber, text: strconv.FormatInt(i, 10)} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, text: strconv.FormatBool(b)} }

// Raw returns a value holding nested JSON text.
func Raw(json string) Value { return Value{kind: KindRaw, text: json} }

// Kind returns the JSON type of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsNumber reports whether the value is a JSON number.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// String returns the raw textual form of the value. Numbers are returned in
// their shortest canonical form ("12.5" for a literal 12.50), the way a browser
// prints them. Null is the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindNumber:
		d, err := decimal.NewFromString(v.text)
		if err != nil {
			return v.text
		}
		return d.String()
	default:
		return v.text
	}
}

// Decimal returns the value as a decimal when it is a number or a string that
// holds one.
func (v Value) Decimal() (decimal.Decimal, bool) {
	switch v.kind {
	case KindNumber, KindString:
		d, err := decimal.NewFromString(strings.TrimSpace(v.text))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// Field is one key/value pair of a row.
type Field struct {
	Key   string
	Value Value
}

// Row is an ordered mapping from column name to value. Key order is the order
// in which keys were first set and drives column order in a report.
type Row struct {
	keys   []string
	values map[string]Value
}

// NewRow builds a row from fields, keeping their order.
func NewRow(fields ...Field) Row {
	r := Row{values: make(map[string]Value, len(fields))}
	for _, f := range fields {
		r.Set(f.Key, f.Value)
	}
	return r
}

// Set assigns a value. Re-setting an existing key keeps its original position.
func (r *Row) Set(key string, v Value) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value stored under key.
func (r Row) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the row's keys in insertion order.
func (r Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of keys.
func (r Row) Len() int { return len(r.keys) }
