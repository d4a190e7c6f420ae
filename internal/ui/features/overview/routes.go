package overview

import (
	"github.com/go-chi/chi/v5"

	"github.com/datalens-labs/datalens/internal/ui/session"
)

// SetupRoutes configures routes for the overview feature.
func SetupRoutes(router chi.Router, sessions *session.Manager, previewRows int, isDev bool) error {
	handlers := NewHandlers(sessions, previewRows, isDev)

	router.Get("/overview", handlers.OverviewPage)

	return nil
}
