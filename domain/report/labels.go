package report

import "strings"

// LabelMap maps a column key to its display label.
type LabelMap map[string]string

// DefaultLabels is the label dictionary for the pharmacy reports.
var DefaultLabels = LabelMap{
	// Basic fields
	"nombre":            "Producto",
	"stock":             "Stock",
	"precio_venta":      "Precio Venta",
	"total_venta":       "Total Vendido",
	"id_venta":          "Nro. Venta",
	"fecha_vencimiento": "Fecha de vencimiento",
	"contacto_telefono": "Teléfono",
	"lote":              "Lote",
	"estado":            "Estado",
	"cantidad":          "Cant.",

	// Inventory
	"medicamento": "Medicamento",
	"categoria":   "Categoría",
	"proveedor":   "Proveedor",

	// Profitability
	"precio_compra":     "P. Compra",
	"ganancia_unitaria": "Ganancia Unit.",
	"margen_pct":        "Margen %",
	"margen_porcentaje": "Margen %",

	// Low stock
	"ubicacion": "Ubicación",

	// Inactive
	"stock_remanente": "Stock Remanente",

	// Expirations
	"dias":           "Días Restantes",
	"dias_restantes": "Días Restantes",

	// Out of stock
	"id_proveedor": "Proveedor",

	// Employees
	"empleado":     "Empleado",
	"total_ventas": "N° Ventas",
	"total_monto":  "Total Recaudado",
	"total_dinero": "Total Recaudado",

	// Customers
	"cliente":       "Cliente",
	"total_compras": "N° Compras",
	"gastado":       "Total Gastado",

	// Top sellers
	"total_vendido": "Unidades Vendidas",

	// Income
	"mes":        "Mes",
	"num_ventas": "Transacciones",
	"total_mes":  "Total Caja",

	// Legacy column names still returned by older procedures
	"ingresos_totales":   "Ingresos (Ventas)",
	"costo_estimado":     "Costo Mercadería",
	"ganancia_bruta":     "Ganancia Neta",
	"productos_vendidos": "Prod. Vendidos",
	"num_transacciones":  "Cant. Ventas (Tickets)",
	"total_generado":     "Dinero Generado",
	"unidades_vendidas":  "Unidades Vendidas",
	"compras_totales":    "Veces que compró",
	"vence":              "Fecha Vencimiento",
	"precio_promedio":    "Precio Promedio",
}

// aggregateMarkers are applied in order; raw SQL aggregate names leaking through
// the API are replaced by a generic term.
var aggregateMarkers = []struct {
	marker, label string
}{
	{"SUM(", "Total"},
	{"COUNT(", "Cantidad"},
	{"AVG(", "Promedio"},
}

// Label returns the display label for key: the mapped label when present,
// otherwise the key with underscores turned into spaces and upper-cased.
func (m LabelMap) Label(key string) string {
	label, ok := m[key]
	if !ok {
		label = DeriveLabel(key)
	}
	for _, a := range aggregateMarkers {
		if strings.Contains(label, a.marker) {
			label = a.label
		}
	}
	return label
}

// DeriveLabel is the fallback label for unmapped keys.
func DeriveLabel(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, "_", " "))
}

// Merge returns a copy of m with overrides applied on top.
func (m LabelMap) Merge(overrides LabelMap) LabelMap {
	out := make(LabelMap, len(m)+len(overrides))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
