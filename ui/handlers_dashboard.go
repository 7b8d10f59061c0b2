package ui

import (
	"bytes"
	"context"
	"log"
	"net/http"

	"gofarma/domain/report"
	"gofarma/internal/errors"
	"gofarma/ui/services"
)

// handleSummary answers the dashboard stat cards
func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	a.renderFragment(w, r, TargetSummary, func(ctx context.Context, buf *bytes.Buffer) (int, error) {
		record, err := a.data.FetchSummary(ctx)
		if err != nil {
			log.Printf("[DashboardHandler] Summary failed: %v", err)
			msg := errors.Message(err)
			if msg == "" {
				msg = "No se pudo cargar el resumen."
			}
			if !errors.IsEmptyResult(err) {
				msg = "Error: " + msg
			}
			return http.StatusOK, a.render.RenderAlert(buf, services.AlertError, msg)
		}
		return http.StatusOK, a.render.RenderSummary(buf, record)
	})
}

// handleMedications answers the medication list filtered by ?q= and ?categoria=.
// The full list is fetched per request and filtered here; nothing is kept
// between requests.
func (a *App) handleMedications(w http.ResponseWriter, r *http.Request) {
	filter := report.RowFilter{
		Text:     r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("categoria"),
	}

	a.renderFragment(w, r, TargetMedications, func(ctx context.Context, buf *bytes.Buffer) (int, error) {
		all, err := a.data.FetchMedications(ctx)
		if err != nil {
			log.Printf("[MedicationHandler] Medication list failed: %v", err)
			return http.StatusOK, a.render.RenderAlert(buf, services.AlertError, "Error: "+errors.Message(err))
		}
		return http.StatusOK, a.render.RenderMedications(buf, report.FilterRows(all, filter), len(all), filter)
	})
}
