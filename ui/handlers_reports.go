package ui

import (
	"bytes"
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gofarma/adapters/export"
	"gofarma/domain/report"
	"gofarma/internal/errors"
	"gofarma/ui/services"
)

// handleReport answers the report fragment for the #resultadosReportes container
func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if _, err := a.data.Catalog().Lookup(slug); err != nil {
		a.writeAlert(w, http.StatusNotFound, services.AlertError, "Reporte no encontrado: "+slug)
		return
	}
	params := forwardedParams(r)

	a.renderFragment(w, r, TargetReports, func(ctx context.Context, buf *bytes.Buffer) (int, error) {
		entry, rows, err := a.data.FetchReport(ctx, slug, params)
		if err != nil {
			return http.StatusOK, a.renderReportError(buf, slug, err)
		}
		return http.StatusOK, a.render.RenderReport(buf, rows, entry.Title)
	})
}

// renderReportError maps API failures to alerts. An unsuccessful estado is
// shown as "no data"; anything else is an error alert.
func (a *App) renderReportError(buf *bytes.Buffer, slug string, err error) error {
	if errors.IsEmptyResult(err) {
		log.Printf("[ReportHandler] Report %s returned no data: %s", slug, errors.Message(err))
		return a.render.RenderAlert(buf, services.AlertInfo, services.NoDataMessage)
	}
	log.Printf("[ReportHandler] Report %s failed: %v", slug, err)
	return a.render.RenderAlert(buf, services.AlertError, services.ReportErrorPrefix+errors.Message(err))
}

// handleExport downloads a report as csv, xlsx or md
func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, errors.Message(err), http.StatusBadRequest)
		return
	}
	exporter, err := export.For(format)
	if err != nil {
		http.Error(w, errors.Message(err), http.StatusBadRequest)
		return
	}

	entry, rows, err := a.data.FetchReport(r.Context(), slug, forwardedParams(r, "format"))
	switch {
	case errors.IsNotFound(err):
		http.Error(w, errors.Message(err), http.StatusNotFound)
		return
	case errors.IsEmptyResult(err):
		rows = nil
	case err != nil:
		log.Printf("[ExportHandler] Report %s failed: %v", slug, err)
		http.Error(w, services.ReportErrorPrefix+errors.Message(err), http.StatusBadGateway)
		return
	}

	table := a.render.BuildTable(rows, entry.Title)
	if table.Empty() {
		http.Error(w, services.NoDataMessage, http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := exporter.Export(&buf, table, a.exportOptions(table)); err != nil {
		log.Printf("[ExportHandler] Export %s as %s failed: %v", slug, format, err)
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", exporter.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(entry.Slug, table, exporter)+`"`)
	buf.WriteTo(w)
}

func (a *App) exportOptions(t *report.Table) export.Options {
	return export.Options{Generated: a.render.FormatTimestamp(t.GeneratedAt)}
}

func (a *App) writeAlert(w http.ResponseWriter, status int, kind, message string) {
	var buf bytes.Buffer
	if err := a.render.RenderAlert(&buf, kind, message); err != nil {
		http.Error(w, message, status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
