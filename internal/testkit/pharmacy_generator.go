package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// PharmacyGeneratorConfig configures the synthetic pharmacy data generator
type PharmacyGeneratorConfig struct {
	MedicationCount int       `json:"medication_count"`
	ClientCount     int       `json:"client_count"`
	InactiveRate    float64   `json:"inactive_rate"`
	LowStockRate    float64   `json:"low_stock_rate"`
	Today           time.Time `json:"today"`
	Seed            int64     `json:"seed"`
}

// DefaultPharmacyConfig returns sensible defaults for pharmacy data generation
func DefaultPharmacyConfig() PharmacyGeneratorConfig {
	return PharmacyGeneratorConfig{
		MedicationCount: 200,
		ClientCount:     300,
		InactiveRate:    0.05,
		LowStockRate:    0.1,
		Today:           time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		Seed:            42,
	}
}

// Medication mirrors one row of the medicamentos endpoint. Field order is the
// column order of the rendered table.
type Medication struct {
	ID               int     `json:"id_medicamento"`
	Nombre           string  `json:"nombre"`
	Categoria        string  `json:"categoria"`
	Stock            int     `json:"stock"`
	PrecioCompra     float64 `json:"precio_compra"`
	PrecioVenta      float64 `json:"precio_venta"`
	FechaVencimiento string  `json:"fecha_vencimiento"`
	Estado           string  `json:"estado"`
}

// Summary mirrors the reportes/resumen-general record
type Summary struct {
	MedicamentosActivos        int     `json:"medicamentos_activos"`
	MedicamentosBajoStock      int     `json:"medicamentos_bajo_stock"`
	VentasMesActual            int     `json:"ventas_mes_actual"`
	IngresosMesActual          float64 `json:"ingresos_mes_actual"`
	TotalClientes              int     `json:"total_clientes"`
	MedicamentosProximosVencer int     `json:"medicamentos_proximos_vencer"`
}

var (
	categories = []string{"Analgésicos", "Antibióticos", "Antialérgicos", "Vitaminas", "Gastrointestinales", "Dermatológicos"}
	compounds  = []string{"Paracetamol", "Ibuprofeno", "Amoxicilina", "Loratadina", "Omeprazol", "Ácido Fólico", "Cetirizina", "Azitromicina", "Diclofenaco", "Vitamina C"}
	strengths  = []string{"100mg", "250mg", "400mg", "500mg", "1g", "10mg"}
)

// PharmacyDataGenerator generates deterministic pharmacy data from a seed
type PharmacyDataGenerator struct {
	config PharmacyGeneratorConfig
	rng    *rand.Rand
}

// NewPharmacyDataGenerator creates a new pharmacy data generator
func NewPharmacyDataGenerator(config PharmacyGeneratorConfig) *PharmacyDataGenerator {
	return &PharmacyDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateMedications generates the medication catalog
func (g *PharmacyDataGenerator) GenerateMedications() []Medication {
	meds := make([]Medication, 0, g.config.MedicationCount)
	for i := 0; i < g.config.MedicationCount; i++ {
		meds = append(meds, g.medication(i+1))
	}
	return meds
}

func (g *PharmacyDataGenerator) medication(id int) Medication {
	cost := roundCents(0.5 + g.rng.Float64()*30)
	margin := 1.2 + g.rng.Float64()*0.6

	stock := 10 + g.rng.Intn(190)
	if g.rng.Float64() < g.config.LowStockRate {
		stock = g.rng.Intn(10)
	}

	estado := "Activo"
	if g.rng.Float64() < g.config.InactiveRate {
		estado = "Inactivo"
	}

	// Expiry between two weeks ago and two years ahead
	days := g.rng.Intn(745) - 14
	expiry := g.config.Today.AddDate(0, 0, days)

	return Medication{
		ID:               id,
		Nombre:           fmt.Sprintf("%s %s", compounds[g.rng.Intn(len(compounds))], strengths[g.rng.Intn(len(strengths))]),
		Categoria:        categories[g.rng.Intn(len(categories))],
		Stock:            stock,
		PrecioCompra:     cost,
		PrecioVenta:      roundCents(cost * margin),
		FechaVencimiento: expiry.Format("2006-01-02"),
		Estado:           estado,
	}
}

// GenerateSummary derives the dashboard summary from meds. Sales figures are
// drawn from the generator so they stay stable for a seed.
func (g *PharmacyDataGenerator) GenerateSummary(meds []Medication) Summary {
	s := Summary{TotalClientes: g.config.ClientCount}
	horizon := g.config.Today.AddDate(0, 0, 30)
	for _, m := range meds {
		if m.Estado != "Activo" {
			continue
		}
		s.MedicamentosActivos++
		if m.Stock < 10 {
			s.MedicamentosBajoStock++
		}
		if expiry, err := time.Parse("2006-01-02", m.FechaVencimiento); err == nil {
			if !expiry.Before(g.config.Today) && !expiry.After(horizon) {
				s.MedicamentosProximosVencer++
			}
		}
	}

	s.VentasMesActual = 300 + g.rng.Intn(200)
	avgTicket := 25 + g.rng.NormFloat64()*5
	s.IngresosMesActual = roundCents(math.Max(avgTicket, 5) * float64(s.VentasMesActual))
	return s
}

func roundCents(f float64) float64 {
	return math.Round(f*100) / 100
}
