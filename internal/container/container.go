package container

import (
	"context"
	"fmt"
	"html/template"
	"log"

	"gofarma/adapters/api"
	"gofarma/domain/catalog"
	"gofarma/domain/core"
	"gofarma/domain/report"
	"gofarma/internal"
	"gofarma/internal/config"
	"gofarma/internal/session"
	"gofarma/ui/services"
	"gofarma/ui/templates"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Report sources
	Catalog *catalog.Catalog
	Client  *api.Client

	// Rendering
	Templates *template.Template
	Render    *services.RenderService
	Data      *services.DataService
	Tracker   *session.Tracker
}

// Option adjusts a container before its components are built
type Option func(*options)

type options struct {
	clock core.Clock
}

// WithClock replaces the wall clock used for report timestamps
func WithClock(clock core.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// New creates a new dependency injection container
func New(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	o := options{clock: core.SystemClock}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Container{
		Config: cfg,
		Logger: internal.NewDefaultLogger(),
	}

	cat, err := catalog.Open(cfg.Report.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load report catalog: %w", err)
	}
	c.Catalog = cat

	tmpl, err := templates.Parse(nil)
	if err != nil {
		return nil, err
	}
	c.Templates = tmpl

	c.Client = api.NewClient(api.ClientConfig{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		RateLimit: cfg.API.RateLimit,
	})

	c.Render = services.NewRenderService(tmpl, services.RenderOptions{
		Report: report.Config{
			CurrencyPrefix: cfg.Report.CurrencyPrefix,
			Labels:         report.DefaultLabels,
			Totals:         cfg.Report.ShowTotals,
		},
		Clock:           o.clock,
		TimestampLayout: cfg.Report.TimestampLayout,
		Location:        cfg.Report.Location,
	})
	c.Data = services.NewDataService(c.Client, cat)
	c.Tracker = session.NewTracker(c.Logger)

	log.Printf("[Container] %d reports in %d groups, API at %s", len(cat.Entries()), len(cat.Groups()), cfg.API.BaseURL)
	return c, nil
}

// Shutdown releases the API client
func (c *Container) Shutdown(ctx context.Context) error {
	if c.Client != nil {
		c.Client.Close()
	}
	if n := c.Tracker.InFlight(); n > 0 {
		c.Logger.Warn("shutting down with %d renders in flight", n)
	}
	return ctx.Err()
}
