// Package ui provides the DataLens web application server.
package ui

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/datalens-labs/datalens/internal/ui/notifier"
	"github.com/datalens-labs/datalens/internal/ui/router"
	"github.com/datalens-labs/datalens/internal/ui/session"
)

// Server hosts the web UI.
type Server struct {
	sessions    *session.Manager
	port        int
	dataDir     string
	watch       bool
	autoOpen    bool
	previewRows int
	logger      *slog.Logger
	notifier    *notifier.Notifier
}

// Config holds the server's settings.
type Config struct {
	Port          int
	DataDir       string
	InitialFile   string
	Watch         bool
	AutoOpen      bool
	SessionSecret string
	PreviewRows   int
	Logger        *slog.Logger
}

// NewServer creates a UI server.
func NewServer(cfg Config) *Server {
	sessions := session.NewManager(cfg.SessionSecret)
	if cfg.InitialFile != "" {
		sessions.Preload(cfg.InitialFile)
	}
	return &Server{
		sessions:    sessions,
		port:        cfg.Port,
		dataDir:     cfg.DataDir,
		watch:       cfg.Watch,
		autoOpen:    cfg.AutoOpen,
		previewRows: cfg.PreviewRows,
		logger:      cfg.Logger,
		notifier:    notifier.New(),
	}
}

// Serve starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	url := fmt.Sprintf("http://localhost:%d", s.port)
	s.logger.Info("starting UI server", "addr", url)

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.sessions, s.notifier, s.dataDir, s.previewRows, s.IsDev()); err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch && s.dataDir != "" {
		eg.Go(func() error {
			return s.watchDataDir(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		s.sessions.Close()
		return srv.Shutdown(shutdownCtx)
	})

	if s.autoOpen {
		openBrowser(s.logger, url)
	}

	return eg.Wait()
}

// IsDev reports whether the server runs in development mode.
func (s *Server) IsDev() bool {
	return isDevBuild
}

// Notifier returns the server's broadcast hub.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchDataDir watches the data directory and pings SSE clients whenever
// a data file appears or changes, so the file picker stays current.
func (s *Server) watchDataDir(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, s.dataDir); err != nil {
		s.logger.Error("failed to watch data directory", "error", err)
		// Continue without watching
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !isDataFile(event.Name) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("data file changed", "file", event.Name)
				s.notifier.Broadcast()
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}

func isDataFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

func openBrowser(logger *slog.Logger, url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		logger.Debug("could not open browser", "error", err)
	}
}
