// Package router sets up HTTP routes for the UI server.
package router

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	homeFeature "github.com/datalens-labs/datalens/internal/ui/features/home"
	overviewFeature "github.com/datalens-labs/datalens/internal/ui/features/overview"
	statisticsFeature "github.com/datalens-labs/datalens/internal/ui/features/statistics"
	visualizeFeature "github.com/datalens-labs/datalens/internal/ui/features/visualize"
	"github.com/datalens-labs/datalens/internal/ui/notifier"
	"github.com/datalens-labs/datalens/internal/ui/resources"
	"github.com/datalens-labs/datalens/internal/ui/session"
)

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(
	router chi.Router,
	sessions *session.Manager,
	notify *notifier.Notifier,
	dataDir string,
	previewRows int,
	isDev bool,
) error {
	// Hot reload endpoint for dev mode
	if isDev {
		setupReload(router)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	if err := homeFeature.SetupRoutes(router, sessions, notify, dataDir, isDev); err != nil {
		return err
	}

	if err := overviewFeature.SetupRoutes(router, sessions, previewRows, isDev); err != nil {
		return err
	}

	if err := statisticsFeature.SetupRoutes(router, sessions, isDev); err != nil {
		return err
	}

	if err := visualizeFeature.SetupRoutes(router, sessions, isDev); err != nil {
		return err
	}

	return nil
}

func setupReload(router chi.Router) {
	reloadChan := make(chan struct{}, 1)
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloadChan:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case reloadChan <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
