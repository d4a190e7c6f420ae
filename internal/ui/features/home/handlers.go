package home

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/datalens-labs/datalens/internal/dataset"
	"github.com/datalens-labs/datalens/internal/ui/features/common"
	"github.com/datalens-labs/datalens/internal/ui/notifier"
	"github.com/datalens-labs/datalens/internal/ui/session"
)

// maxUploadBytes bounds in-memory multipart parsing; larger files spill
// to temp files.
const maxUploadBytes = 64 << 20

// Handlers provides HTTP handlers for the upload feature.
type Handlers struct {
	sessions *session.Manager
	notifier *notifier.Notifier
	dataDir  string
	isDev    bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(sessions *session.Manager, notify *notifier.Notifier, dataDir string, isDev bool) *Handlers {
	return &Handlers{
		sessions: sessions,
		notifier: notify,
		dataDir:  dataDir,
		isDev:    isDev,
	}
}

// HomePage renders the upload page.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	st, err := h.sessions.Store(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.renderPage(w, r, st, "")
}

// Upload receives a multipart file and loads it into the session store.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	st, err := h.sessions.Store(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.renderPage(w, r, st, "Could not read the uploaded file: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.renderPage(w, r, st, "Choose a file to upload first.")
		return
	}
	defer func() { _ = file.Close() }()

	if _, err := st.LoadReader(r.Context(), file, header.Filename); err != nil {
		h.renderPage(w, r, st, loadErrorMessage(err))
		return
	}

	http.Redirect(w, r, "/overview", http.StatusSeeOther)
}

// Open loads a file from the configured data directory.
func (h *Handlers) Open(w http.ResponseWriter, r *http.Request) {
	st, err := h.sessions.Store(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	name := r.FormValue("file")
	if !h.isListedFile(name) {
		h.renderPage(w, r, st, "Unknown data file: "+name)
		return
	}

	if _, err := st.LoadFile(r.Context(), filepath.Join(h.dataDir, name)); err != nil {
		h.renderPage(w, r, st, loadErrorMessage(err))
		return
	}

	http.Redirect(w, r, "/overview", http.StatusSeeOther)
}

// Updates is the long-lived SSE endpoint keeping the data-directory file
// list current while the page is open.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := sse.PatchElementTempl(fileList(h.listDataFiles())); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

func (h *Handlers) renderPage(w http.ResponseWriter, r *http.Request, st *dataset.Store, errMsg string) {
	state := PageState{
		Dataset: st.Source(),
		Files:   h.listDataFiles(),
		Notices: common.NoticeMessages(st.Notices()),
		Error:   errMsg,
	}
	page := common.Page(common.PageData{
		Title:       "Upload",
		CurrentPath: "/",
		Dataset:     st.Source(),
		IsDev:       h.isDev,
	}, homeBody(state))

	if err := page.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// listDataFiles returns the loadable files in the data directory, sorted
// by name. A missing or unreadable directory yields an empty list.
func (h *Handlers) listDataFiles() []string {
	if h.dataDir == "" {
		return nil
	}
	entries, err := os.ReadDir(h.dataDir)
	if err != nil {
		return nil
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".xlsx":
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files
}

func (h *Handlers) isListedFile(name string) bool {
	if name == "" || name != filepath.Base(name) {
		return false
	}
	for _, f := range h.listDataFiles() {
		if f == name {
			return true
		}
	}
	return false
}

func loadErrorMessage(err error) string {
	var perr *dataset.ParseError
	if errors.As(err, &perr) {
		return "Could not parse " + filepath.Base(perr.Path) + ": " + perr.Err.Error()
	}
	return err.Error()
}
