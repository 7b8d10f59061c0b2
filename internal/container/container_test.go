package container

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gofarma/domain/core"
	"gofarma/domain/report"
	"gofarma/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		API:    config.APIConfig{BaseURL: "http://127.0.0.1:1/api", Timeout: time.Second},
		Server: config.ServerConfig{Port: "3000"},
		Report: config.ReportConfig{
			CurrencyPrefix:  "S/. ",
			TimestampLayout: "02/01/2006",
			Location:        time.UTC,
		},
	}
}

func TestNewWiresComponents(t *testing.T) {
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)
	c, err := New(testConfig(), WithClock(core.FixedClock(now)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Shutdown(context.Background())

	if c.Catalog == nil || c.Client == nil || c.Render == nil || c.Data == nil || c.Tracker == nil {
		t.Fatal("container has unset components")
	}
	if c.Data.Catalog() != c.Catalog {
		t.Error("data service does not use the container catalog")
	}

	html := c.Render.ReportHTML([]report.Row{
		report.NewRow(report.Field{Key: "precio_venta", Value: report.Number("4")}),
	}, "Prueba")
	if !strings.Contains(html, "15/10/2025") {
		t.Errorf("timestamp layout not applied: %s", html)
	}
	if !strings.Contains(html, "S/. 4.00") {
		t.Errorf("currency prefix not applied: %s", html)
	}
}

func TestNewCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := "reports:\n  - slug: caja\n    title: Cierre de Caja\n    group: Ventas\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig()
	cfg.Report.CatalogFile = path
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Shutdown(context.Background())

	entries := c.Catalog.Entries()
	if len(entries) != 1 || entries[0].Endpoint != "reportes/caja" {
		t.Errorf("unexpected catalog %+v", entries)
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("expected error for nil config")
	}

	cfg := testConfig()
	cfg.Report.CatalogFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := New(cfg); err == nil {
		t.Error("expected error for missing catalog file")
	}
}
