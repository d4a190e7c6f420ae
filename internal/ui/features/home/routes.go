// Package home provides the upload/landing page feature.
package home

import (
	"github.com/go-chi/chi/v5"

	"github.com/datalens-labs/datalens/internal/ui/notifier"
	"github.com/datalens-labs/datalens/internal/ui/session"
)

// SetupRoutes configures routes for the home feature.
func SetupRoutes(router chi.Router, sessions *session.Manager, notify *notifier.Notifier, dataDir string, isDev bool) error {
	handlers := NewHandlers(sessions, notify, dataDir, isDev)

	router.Get("/", handlers.HomePage)
	router.Post("/upload", handlers.Upload)
	router.Post("/open", handlers.Open)
	router.Get("/updates", handlers.Updates)

	return nil
}
