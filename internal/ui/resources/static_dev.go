//go:build dev

package resources

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
)

// getStaticDir derives the absolute path to the static directory relative
// to this source file, regardless of where the binary is run from.
func getStaticDir() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return StaticDirectoryPath
	}
	return filepath.Join(filepath.Dir(filename), "static")
}

// Handler serves static files straight from the filesystem so edits show
// up without a rebuild.
func Handler() http.Handler {
	staticDir := getStaticDir()
	slog.Info("static assets served from filesystem", "path", staticDir)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.StripPrefix("/static/", http.FileServer(http.FS(os.DirFS(staticDir)))).ServeHTTP(w, r)
	})
}

// StaticPath returns the URL path for a static asset.
func StaticPath(path string) string {
	return "/static/" + path
}
