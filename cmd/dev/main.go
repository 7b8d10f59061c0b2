package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gofarma/adapters/api"
	"gofarma/domain/catalog"
	"gofarma/domain/core"
	"gofarma/domain/report"
	"gofarma/internal/config"
	"gofarma/internal/errors"
	"gofarma/internal/testkit"
	"gofarma/ui"
	sessionmw "gofarma/ui/middleware"
	"gofarma/ui/services"
	"gofarma/ui/templates"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "gofarma-dev",
		Short: "Gofarma development tools",
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newSmokeTestCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	var (
		port      string
		synthetic int
		seed      int64
		latency   time.Duration
		debug     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a fake pharmacy API for local development",
		Long: `Serve canned pharmacy API responses under /api.

Point the report UI at it with API_URL=http://localhost:8080/api.
The report slugs "fallido" and "caido" answer with an error envelope and a
502 HTML page respectively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				port = cfg.Dev.Port
			}
			if !debug {
				gin.SetMode(gin.ReleaseMode)
			}

			fake, err := testkit.NewFakeAPI(testkit.FakeAPIConfig{Synthetic: synthetic, Seed: seed, Latency: latency})
			if err != nil {
				return fmt.Errorf("failed to build fake API: %w", err)
			}

			server := &http.Server{
				Addr:              ":" + port,
				Handler:           fake.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			log.Printf("Fake pharmacy API listening on http://localhost:%s/api", port)
			return server.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (default: DEV_API_PORT or 8080)")
	cmd.Flags().IntVar(&synthetic, "synthetic", 0, "Serve this many generated medications instead of the fixtures")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for generated medications")
	cmd.Flags().DurationVar(&latency, "latency", 0, "Delay added to every answer")
	cmd.Flags().BoolVar(&debug, "debug", false, "Run gin in debug mode")
	return cmd
}

func newSmokeTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run the report UI against an in-process fake API",
		RunE: func(cmd *cobra.Command, args []string) error {
			gin.SetMode(gin.ReleaseMode)
			return runSmokeTests(cmd.Context())
		},
	}
	return cmd
}

// smokeStack is the report UI wired to a fake API on a local port
type smokeStack struct {
	api     *httptest.Server
	client  *api.Client
	catalog *catalog.Catalog
	app     *ui.App
}

func newSmokeStack(latency time.Duration) (*smokeStack, error) {
	fake, err := testkit.NewFakeAPI(testkit.FakeAPIConfig{Latency: latency})
	if err != nil {
		return nil, fmt.Errorf("failed to build fake API: %w", err)
	}
	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	tmpl, err := templates.Parse(nil)
	if err != nil {
		return nil, err
	}

	server := fake.Start()
	client := api.NewClient(api.ClientConfig{BaseURL: server.URL + "/api", Timeout: 5 * time.Second})
	render := services.NewRenderService(tmpl, services.RenderOptions{
		Report: report.DefaultConfig(),
		Clock:  core.SystemClock,
	})
	app := ui.NewApp(ui.Config{AppName: "Smoke"}, services.NewDataService(client, cat), render, nil)

	return &smokeStack{api: server, client: client, catalog: cat, app: app}, nil
}

func (s *smokeStack) Close() {
	s.client.Close()
	s.api.Close()
}

func (s *smokeStack) get(path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, vs := range header {
		req.Header[k] = vs
	}
	rec := httptest.NewRecorder()
	s.app.ServeHTTP(rec, req)
	return rec
}

func runSmokeTests(ctx context.Context) error {
	fmt.Println("Running smoke tests...")
	if ctx == nil {
		ctx = context.Background()
	}

	stack, err := newSmokeStack(0)
	if err != nil {
		return err
	}
	defer stack.Close()

	tests := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"catalog_reports", func(ctx context.Context) error {
			for _, entry := range stack.catalog.Entries() {
				rec := stack.get("/reportes/"+entry.Slug, nil)
				body := rec.Body.String()
				if rec.Code != http.StatusOK {
					return fmt.Errorf("%s: status %d", entry.Slug, rec.Code)
				}
				if !strings.Contains(body, "<table") && !strings.Contains(body, services.NoDataMessage) {
					return fmt.Errorf("%s: neither a table nor the no-data alert", entry.Slug)
				}
			}
			return nil
		}},
		{"summary_and_medications", func(ctx context.Context) error {
			if rec := stack.get("/resumen", nil); !strings.Contains(rec.Body.String(), "card") {
				return fmt.Errorf("summary cards missing")
			}
			if rec := stack.get("/medicamentos?q=para", nil); !strings.Contains(rec.Body.String(), "medicamentos") {
				return fmt.Errorf("medication list missing")
			}
			return nil
		}},
		{"export_xlsx", func(ctx context.Context) error {
			rec := stack.get("/reportes/inventario/export?format=xlsx", nil)
			if rec.Code != http.StatusOK || rec.Body.Len() == 0 {
				return fmt.Errorf("xlsx export: status %d, %d bytes", rec.Code, rec.Body.Len())
			}
			return nil
		}},
		{"api_failures", func(ctx context.Context) error {
			_, err := stack.client.FetchRows(ctx, "reportes/"+testkit.FailingSlug, nil)
			if !errors.IsEmptyResult(err) {
				return fmt.Errorf("error envelope: got %v", err)
			}
			_, err = stack.client.FetchRows(ctx, "reportes/"+testkit.BrokenSlug, nil)
			if !errors.IsTransport(err) {
				return fmt.Errorf("html error page: got %v", err)
			}
			return nil
		}},
		{"superseded_render", func(ctx context.Context) error {
			return checkSuperseded()
		}},
	}

	passed := 0
	for _, test := range tests {
		fmt.Printf("  Running %s...", test.name)
		if err := test.fn(ctx); err != nil {
			fmt.Printf(" FAILED: %v\n", err)
		} else {
			fmt.Println(" PASSED")
			passed++
		}
	}

	fmt.Printf("\nSmoke tests: %d/%d passed\n", passed, len(tests))
	if passed < len(tests) {
		return fmt.Errorf("some smoke tests failed")
	}
	return nil
}

// checkSuperseded clicks two reports into the same container; the slower,
// older one must not be swapped in.
func checkSuperseded() error {
	stack, err := newSmokeStack(300 * time.Millisecond)
	if err != nil {
		return err
	}
	defer stack.Close()

	header := http.Header{}
	header.Set("HX-Target", ui.TargetReports)
	header.Set("Cookie", sessionmw.SessionCookie+"="+core.NewSessionID().String())

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() { first <- stack.get("/reportes/inventario", header) }()
	time.Sleep(50 * time.Millisecond)
	second := stack.get("/reportes/clientes", header)

	older := <-first
	if older.Code != http.StatusNoContent || older.Header().Get("HX-Reswap") != "none" {
		return fmt.Errorf("older render answered %d", older.Code)
	}
	if second.Code != http.StatusOK {
		body, _ := io.ReadAll(second.Body)
		return fmt.Errorf("newer render answered %d: %s", second.Code, body)
	}
	return nil
}
