package report

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RowFilter selects medication rows by name and category.
type RowFilter struct {
	// Text must be contained in the row name.
	Text string
	// Category must equal the row category when not empty.
	Category string
}

// FilterRows returns the rows matching f. The row list is owned by the caller
// and is never modified. Matching ignores case and accents.
func FilterRows(rows []Row, f RowFilter) []Row {
	text := fold(strings.TrimSpace(f.Text))
	category := fold(strings.TrimSpace(f.Category))

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if !strings.Contains(fold(rowName(r)), text) {
			continue
		}
		if category != "" && fold(textOf(r, "categoria")) != category {
			continue
		}
		out = append(out, r)
	}
	return out
}

// rowName prefers the "medicamento" column, the name used by the inventory
// procedure, and falls back to "nombre".
func rowName(r Row) string {
	if name := textOf(r, "medicamento"); name != "" {
		return name
	}
	return textOf(r, "nombre")
}

func textOf(r Row, key string) string {
	v, ok := r.Get(key)
	if !ok {
		return ""
	}
	return v.String()
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Categories returns the distinct non-empty categoria values in first-seen order.
func Categories(rows []Row) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range rows {
		c := strings.TrimSpace(textOf(r, "categoria"))
		if c == "" || seen[fold(c)] {
			continue
		}
		seen[fold(c)] = true
		out = append(out, c)
	}
	return out
}
