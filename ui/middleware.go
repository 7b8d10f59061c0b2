package ui

import (
	"github.com/go-chi/chi/v5/middleware"

	sessionmw "gofarma/ui/middleware"
)

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
	a.router.Use(sessionmw.EnsureSession)
}
