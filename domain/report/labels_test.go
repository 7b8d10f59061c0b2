package report

import "testing"

func TestLabel(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"nombre", "Producto"},
		{"stock", "Stock"},
		{"precio_venta", "Precio Venta"},
		{"dias_restantes", "Días Restantes"},
		{"codigo_barras", "CODIGO BARRAS"},
		{"sum(precio_venta)", "Total"},
		{"count(id_venta)", "Cantidad"},
		{"avg(precio_venta)", "Promedio"},
		{"SUM(COUNT(x))", "Total"},
	}

	for _, test := range tests {
		if got := DefaultLabels.Label(test.key); got != test.expected {
			t.Errorf("Label(%q) = %q, expected %q", test.key, got, test.expected)
		}
	}
}

func TestLabelMappedAggregate(t *testing.T) {
	labels := LabelMap{"x": "AVG(x) semanal"}
	if got := labels.Label("x"); got != "Promedio" {
		t.Errorf("Expected mapped aggregate label to become 'Promedio', got %q", got)
	}
}

func TestLabelMapMerge(t *testing.T) {
	merged := DefaultLabels.Merge(LabelMap{"nombre": "Nombre comercial"})

	if merged.Label("nombre") != "Nombre comercial" {
		t.Errorf("Expected override to win, got %q", merged.Label("nombre"))
	}
	if DefaultLabels.Label("nombre") != "Producto" {
		t.Error("Expected Merge to leave the receiver untouched")
	}
	if merged.Label("stock") != "Stock" {
		t.Errorf("Expected base labels to be kept, got %q", merged.Label("stock"))
	}
}
