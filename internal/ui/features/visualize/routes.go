package visualize

import (
	"github.com/go-chi/chi/v5"

	"github.com/datalens-labs/datalens/internal/ui/session"
)

// SetupRoutes configures routes for the visualize feature.
func SetupRoutes(router chi.Router, sessions *session.Manager, isDev bool) error {
	handlers := NewHandlers(sessions, isDev)

	router.Get("/visualize", handlers.VisualizePage)
	router.Get("/visualize/controls", handlers.Controls)
	router.Post("/visualize/render", handlers.Render)

	return nil
}
