package ui

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"gofarma/internal/session"
	"gofarma/ui/services"
)

//go:embed static
var staticFiles embed.FS

// Default fragment targets, used when a request carries no HX-Target header
const (
	TargetReports     = "resultadosReportes"
	TargetSummary     = "resumenResultado"
	TargetMedications = "listaMedicamentos"
)

// App represents the UI application
type App struct {
	router  *chi.Mux
	config  Config
	data    *services.DataService
	render  *services.RenderService
	tracker *session.Tracker
}

// Config holds UI application configuration
type Config struct {
	Port    string
	AppName string
}

// NewApp creates a new UI application
func NewApp(config Config, data *services.DataService, render *services.RenderService, tracker *session.Tracker) *App {
	if config.AppName == "" {
		config.AppName = "Farmacia"
	}
	if tracker == nil {
		tracker = session.NewTracker(nil)
	}

	app := &App{
		router:  chi.NewRouter(),
		config:  config,
		data:    data,
		render:  render,
		tracker: tracker,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app
}

// ServeHTTP makes App an http.Handler
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.config.Port
	log.Printf("Starting %s report UI on %s", a.config.AppName, addr)
	server := &http.Server{
		Addr:              addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server.ListenAndServe()
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/healthz", a.handleHealth)

	// HTMX fragment endpoints
	a.router.Get("/reportes/{slug}", a.handleReport)
	a.router.Get("/resumen", a.handleSummary)
	a.router.Get("/medicamentos", a.handleMedications)

	// Downloads
	a.router.Get("/reportes/{slug}/export", a.handleExport)

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Printf("[setupRoutes] Error creating static filesystem: %v", err)
		return
	}
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
}
