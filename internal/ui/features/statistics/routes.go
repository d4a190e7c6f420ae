package statistics

import (
	"github.com/go-chi/chi/v5"

	"github.com/datalens-labs/datalens/internal/ui/session"
)

// SetupRoutes configures routes for the statistics feature.
func SetupRoutes(router chi.Router, sessions *session.Manager, isDev bool) error {
	handlers := NewHandlers(sessions, isDev)

	router.Get("/statistics", handlers.StatisticsPage)
	router.Get("/statistics/values", handlers.ValueCounts)

	return nil
}
