package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"gofarma/adapters/api"
	"gofarma/adapters/export"
	"gofarma/domain/catalog"
	"gofarma/domain/report"
	"gofarma/internal/config"
	"gofarma/internal/container"
	"gofarma/internal/errors"
	"gofarma/ui/services"
)

const formatHTML = "html"

// environment wires the pieces the commands share
type environment struct {
	catalog  *catalog.Catalog
	client   *api.Client
	data     *services.DataService
	renderer *services.RenderService
}

func newEnvironment(catalogFile string) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if catalogFile != "" {
		cfg.Report.CatalogFile = catalogFile
	}
	c, err := container.New(cfg)
	if err != nil {
		return nil, err
	}
	return &environment{
		catalog:  c.Catalog,
		client:   c.Client,
		data:     c.Data,
		renderer: c.Render,
	}, nil
}

func (e *environment) Close() {
	e.client.Close()
}

func printCatalog(w io.Writer, cat *catalog.Catalog) error {
	for _, group := range cat.Groups() {
		if _, err := fmt.Fprintf(w, "%s\n", group); err != nil {
			return err
		}
		for _, entry := range cat.ByGroup(group) {
			line := fmt.Sprintf("  %-22s %s", entry.Slug, entry.Title)
			if len(entry.Params) > 0 {
				line += "  [" + entry.Query(nil).Encode() + "]"
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseParams turns repeated key=value flags into query overrides.
func parseParams(pairs []string) (url.Values, error) {
	q := url.Values{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, errors.InvalidInput(fmt.Sprintf("parameter %q is not key=value", p))
		}
		q.Add(k, v)
	}
	return q, nil
}

type renderJob struct {
	Slug   string
	Format string
	Params url.Values
	// Input is a saved API response; when empty the API is called.
	Input string
}

func (e *environment) render(ctx context.Context, job renderJob, w io.Writer) error {
	entry, err := e.catalog.Lookup(job.Slug)
	if err != nil {
		return err
	}

	var rows []report.Row
	if job.Input != "" {
		rows, err = readSaved(job.Input)
	} else {
		_, rows, err = e.data.FetchReport(ctx, job.Slug, job.Params)
	}
	switch {
	case errors.IsEmptyResult(err):
		log.Printf("[CLI] %s returned no data: %s", job.Slug, errors.Message(err))
		rows = nil
	case err != nil:
		return err
	}

	return e.write(w, job.Format, rows, entry.Title)
}

func readSaved(path string) ([]report.Row, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	env, err := api.DecodeEnvelope(body)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return env.Rows()
}

func (e *environment) write(w io.Writer, format string, rows []report.Row, title string) error {
	if strings.EqualFold(format, formatHTML) {
		return e.renderer.RenderReport(w, rows, title)
	}
	exporter, err := exporterFor(format)
	if err != nil {
		return err
	}
	table := e.renderer.BuildTable(rows, title)
	return exporter.Export(w, table, export.Options{Generated: e.renderer.FormatTimestamp(table.GeneratedAt)})
}

func exporterFor(format string) (export.Exporter, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return export.For(f)
}

func extensionFor(format string) (string, error) {
	if strings.EqualFold(format, formatHTML) {
		return ".html", nil
	}
	exporter, err := exporterFor(format)
	if err != nil {
		return "", err
	}
	return exporter.Extension(), nil
}

type batchOptions struct {
	Format      string
	OutDir      string
	Concurrency int
	Timeout     time.Duration
}

type batchSummary struct {
	Written []string
	Failed  map[string]error
}

func (s batchSummary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d reports written", len(s.Written))
	slugs := make([]string, 0, len(s.Failed))
	for slug := range s.Failed {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	for _, slug := range slugs {
		fmt.Fprintf(&b, "\n  %s: %s", slug, errors.Message(s.Failed[slug]))
	}
	return b.String()
}

// renderAll renders every catalog report into opts.OutDir. One failing report
// does not stop the others.
func (e *environment) renderAll(ctx context.Context, opts batchOptions) (batchSummary, error) {
	summary := batchSummary{Failed: make(map[string]error)}

	ext, err := extensionFor(opts.Format)
	if err != nil {
		return summary, err
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return summary, fmt.Errorf("failed to create %s: %w", opts.OutDir, err)
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for _, entry := range e.catalog.Entries() {
		g.Go(func() error {
			path := filepath.Join(opts.OutDir, entry.Slug+ext)
			err := e.renderToFile(gctx, renderJob{Slug: entry.Slug, Format: opts.Format}, path)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("[CLI] %s failed: %v", entry.Slug, err)
				summary.Failed[entry.Slug] = err
				return nil
			}
			summary.Written = append(summary.Written, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}
	sort.Strings(summary.Written)
	return summary, nil
}

func (e *environment) renderToFile(ctx context.Context, job renderJob, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := e.render(ctx, job, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
