package ui

import (
	"bytes"
	"context"
	"log"
	"net/http"

	sessionmw "gofarma/ui/middleware"
)

// fragmentFunc renders a fragment into buf and returns the HTTP status to
// answer with.
type fragmentFunc func(ctx context.Context, buf *bytes.Buffer) (int, error)

// renderFragment runs render under a generation ticket for the request's
// (session, target) pair. When a newer request for the same pair began in the
// meantime the rendered output is discarded and the answer is 204 with
// HX-Reswap: none, so the browser keeps the newer content.
func (a *App) renderFragment(w http.ResponseWriter, r *http.Request, fallbackTarget string, render fragmentFunc) {
	sid := sessionmw.SessionFromContext(r.Context())
	target := fragmentTarget(r, fallbackTarget)

	ticket := a.tracker.Begin(r.Context(), sid, target)
	defer ticket.Done()

	var buf bytes.Buffer
	status, err := render(ticket.Context(), &buf)

	if !ticket.Current() {
		log.Printf("[Fragment] Dropping stale %s for #%s (generation %d)", r.URL.Path, target, ticket.Generation)
		w.Header().Set("HX-Reswap", "none")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		log.Printf("[Fragment] Template error for %s: %v", r.URL.Path, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[Fragment] Error writing response: %v", err)
	}
}
