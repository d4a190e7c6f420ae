package home

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalens-labs/datalens/internal/ui/notifier"
	"github.com/datalens-labs/datalens/internal/ui/session"
)

func setupTestHandlers(t *testing.T, dataDir string) *Handlers {
	t.Helper()

	sessions := session.NewManager("test-secret")
	t.Cleanup(func() { sessions.Close() })

	return NewHandlers(sessions, notifier.New(), dataDir, true)
}

// multipartUpload builds a multipart request body carrying one file field.
func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHomePage(t *testing.T) {
	h := setupTestHandlers(t, "")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.HomePage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, "Upload a dataset")
	assert.Contains(t, body, `action="/upload"`)
	assert.Contains(t, body, "@get('/updates')")
}

func TestUpload_ValidCSVRedirectsToOverview(t *testing.T) {
	h := setupTestHandlers(t, "")

	body, contentType := multipartUpload(t, "people.csv", "name,age\nalice,34\nbob,29\n")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/overview", rec.Header().Get("Location"))
}

func TestUpload_UnsupportedExtensionShowsError(t *testing.T) {
	h := setupTestHandlers(t, "")

	body, contentType := multipartUpload(t, "data.txt", "whatever")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	// The page re-renders with an inline error instead of redirecting.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported file type")
}

func TestUpload_MissingFileShowsError(t *testing.T) {
	h := setupTestHandlers(t, "")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Choose a file to upload first.")
}

func TestOpen_ListedFile(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "sales.csv"), []byte("a,b\n1,2\n"), 0o644))
	h := setupTestHandlers(t, dataDir)

	req := httptest.NewRequest(http.MethodPost, "/open?file=sales.csv", nil)
	rec := httptest.NewRecorder()

	h.Open(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/overview", rec.Header().Get("Location"))
}

func TestOpen_RejectsUnlistedFile(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "sales.csv"), []byte("a,b\n1,2\n"), 0o644))
	h := setupTestHandlers(t, dataDir)

	for _, name := range []string{"nope.csv", "../sales.csv", "/etc/passwd"} {
		req := httptest.NewRequest(http.MethodPost, "/open?file="+name, nil)
		rec := httptest.NewRecorder()

		h.Open(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "file %q", name)
		assert.Contains(t, rec.Body.String(), "Unknown data file", "file %q", name)
	}
}

func TestListDataFiles(t *testing.T) {
	dataDir := t.TempDir()
	for _, name := range []string{"b.csv", "a.xlsx", "notes.txt", "c.CSV"} {
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, name), []byte("x"), 0o644))
	}
	h := setupTestHandlers(t, dataDir)

	files := h.listDataFiles()
	assert.Equal(t, []string{"a.xlsx", "b.csv", "c.CSV"}, files)
}

func TestListDataFiles_NoDataDir(t *testing.T) {
	h := setupTestHandlers(t, "")
	assert.Empty(t, h.listDataFiles())
}
