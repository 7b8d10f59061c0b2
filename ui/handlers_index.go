package ui

import (
	"log"
	"net/http"

	"gofarma/domain/report"
	"gofarma/ui/services"
)

// handleIndex renders the page with the report menu, the dashboard and the
// medication search. Category options come from the medication list; if the
// API is down the page still renders without them.
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := services.IndexData{
		AppName: a.config.AppName,
		Groups:  a.data.MenuGroups(),
	}

	meds, err := a.data.FetchMedications(r.Context())
	if err != nil {
		log.Printf("[Index] Medication categories unavailable: %v", err)
	} else {
		data.Categories = report.Categories(meds)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.render.RenderPage(w, data); err != nil {
		log.Printf("[Index] Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
