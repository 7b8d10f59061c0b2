// Package testkit provides a fake pharmacy API and test doubles for the report
// UI, the CLI and their tests.
package testkit

import (
	"embed"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed fixtures/*.json
var fixtureFiles embed.FS

// Slugs with scripted failures
const (
	// FailingSlug answers 500 with an error envelope, as the API does when the
	// database call fails.
	FailingSlug = "fallido"
	// BrokenSlug answers 502 with an HTML page, as a proxy in front of a down API would.
	BrokenSlug = "caido"

	FailureMessage = "Ocurrió un error al obtener los datos."
)

// FakeAPIConfig configures the fake pharmacy API
type FakeAPIConfig struct {
	// Synthetic, when positive, serves that many generated medications instead
	// of the fixture for medicamentos, inventario and resumen-general.
	Synthetic int
	Seed      int64
	// Latency delays every answer, to exercise superseded renders.
	Latency time.Duration
}

// FakeAPI serves canned pharmacy API responses under /api
type FakeAPI struct {
	config   FakeAPIConfig
	router   *gin.Engine
	fixtures map[string][]byte

	mu       sync.Mutex
	requests map[string]int
}

// NewFakeAPI loads the embedded fixtures and builds the router
func NewFakeAPI(config FakeAPIConfig) (*FakeAPI, error) {
	fixtures, err := loadFixtures()
	if err != nil {
		return nil, err
	}

	if config.Synthetic > 0 {
		if err := addSynthetic(fixtures, config); err != nil {
			return nil, err
		}
	}

	api := &FakeAPI{
		config:   config,
		router:   gin.New(),
		fixtures: fixtures,
		requests: make(map[string]int),
	}
	api.router.Use(gin.Recovery())
	api.setupRoutes()
	return api, nil
}

func loadFixtures() (map[string][]byte, error) {
	entries, err := fixtureFiles.ReadDir("fixtures")
	if err != nil {
		return nil, err
	}
	fixtures := make(map[string][]byte, len(entries))
	for _, e := range entries {
		data, err := fixtureFiles.ReadFile(path.Join("fixtures", e.Name()))
		if err != nil {
			return nil, err
		}
		fixtures[strings.TrimSuffix(e.Name(), ".json")] = data
	}
	return fixtures, nil
}

func addSynthetic(fixtures map[string][]byte, config FakeAPIConfig) error {
	genConfig := DefaultPharmacyConfig()
	genConfig.MedicationCount = config.Synthetic
	if config.Seed != 0 {
		genConfig.Seed = config.Seed
	}
	gen := NewPharmacyDataGenerator(genConfig)
	meds := gen.GenerateMedications()

	medications, err := successEnvelope(meds)
	if err != nil {
		return err
	}
	summary, err := successEnvelope(gen.GenerateSummary(meds))
	if err != nil {
		return err
	}
	fixtures["medicamentos"] = medications
	fixtures["inventario"] = medications
	fixtures["resumen-general"] = summary
	log.Printf("[FakeAPI] Generated %d synthetic medications (seed %d)", len(meds), genConfig.Seed)
	return nil
}

func successEnvelope(datos interface{}) ([]byte, error) {
	return json.Marshal(struct {
		Estado string      `json:"estado"`
		Datos  interface{} `json:"datos"`
	}{Estado: "exito", Datos: datos})
}

func (a *FakeAPI) setupRoutes() {
	api := a.router.Group("/api")
	api.Use(a.track, a.delay)
	api.GET("/reportes/:slug", a.handleReport)
	api.GET("/medicamentos", a.handleFixture("medicamentos"))
}

func (a *FakeAPI) track(c *gin.Context) {
	a.mu.Lock()
	a.requests[c.Request.URL.Path]++
	a.mu.Unlock()
	c.Next()
}

func (a *FakeAPI) delay(c *gin.Context) {
	if a.config.Latency <= 0 {
		c.Next()
		return
	}
	select {
	case <-time.After(a.config.Latency):
		c.Next()
	case <-c.Request.Context().Done():
		c.Abort()
	}
}

func (a *FakeAPI) handleReport(c *gin.Context) {
	switch slug := c.Param("slug"); slug {
	case FailingSlug:
		c.JSON(http.StatusInternalServerError, gin.H{"estado": "error", "mensaje": FailureMessage})
	case BrokenSlug:
		c.Data(http.StatusBadGateway, "text/html; charset=utf-8", []byte("<html><body><h1>502 Bad Gateway</h1></body></html>"))
	default:
		a.handleFixture(slug)(c)
	}
}

// handleFixture writes the fixture bytes untouched so key order survives.
func (a *FakeAPI) handleFixture(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok := a.fixtures[name]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"estado": "error", "mensaje": "Reporte no encontrado: " + name})
			return
		}
		c.Data(http.StatusOK, "application/json", data)
	}
}

// Handler returns the HTTP handler of the fake API
func (a *FakeAPI) Handler() http.Handler {
	return a.router
}

// Fixture returns the raw body served for name
func (a *FakeAPI) Fixture(name string) ([]byte, bool) {
	data, ok := a.fixtures[name]
	return data, ok
}

// Requests returns how many requests reached path, e.g. /api/reportes/inventario
func (a *FakeAPI) Requests(p string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.requests[p]
}

// Start serves the fake API on a local ephemeral port. The caller closes the
// returned server; its URL plus "/api" is the API base URL.
func (a *FakeAPI) Start() *httptest.Server {
	return httptest.NewServer(a.router)
}
