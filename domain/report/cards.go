package report

// DefaultCardLabels label the dashboard summary returned by reportes/resumen-general.
var DefaultCardLabels = LabelMap{
	"medicamentos_activos":         "Medicamentos Activos",
	"medicamentos_bajo_stock":      "Bajo Stock (<10)",
	"ventas_mes_actual":            "Ventas este Mes",
	"ingresos_mes_actual":          "Ingresos del Mes",
	"total_clientes":               "Total Clientes",
	"medicamentos_proximos_vencer": "Por Vencer (30 días)",
}

// Card is one dashboard stat card.
type Card struct {
	Key   string
	Label string
	Value string
	Class Class
}

// BuildCards turns a summary record into stat cards, one per key in order.
// Card labels fall back to the report labels; values use the cell rules.
func BuildCards(record Row, cfg Config) []Card {
	labels := cfg.Labels
	if labels == nil {
		labels = DefaultLabels
	}
	cards := make([]Card, 0, record.Len())
	for _, k := range record.Keys() {
		label, ok := DefaultCardLabels[k]
		if !ok {
			label = labels.Label(k)
		}
		v, _ := record.Get(k)
		cell := FormatCell(k, v, cfg.CurrencyPrefix)
		cards = append(cards, Card{Key: k, Label: label, Value: cell.Text, Class: cell.Class})
	}
	return cards
}
