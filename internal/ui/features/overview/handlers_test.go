package overview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalens-labs/datalens/internal/ui/session"
)

func newLoadedSession(t *testing.T, csv string) (*Handlers, []*http.Cookie) {
	t.Helper()

	sessions := session.NewManager("test-secret")
	t.Cleanup(func() { sessions.Close() })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	st, err := sessions.Store(rec, req)
	require.NoError(t, err)

	if csv != "" {
		path := filepath.Join(t.TempDir(), "data.csv")
		require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))
		_, err = st.LoadFile(context.Background(), path)
		require.NoError(t, err)
	}

	return NewHandlers(sessions, 5, true), rec.Result().Cookies()
}

func TestOverviewPage(t *testing.T) {
	h, cookies := newLoadedSession(t, "name,age\nalice,34\nbob,29\ncarol,41\n")

	req := httptest.NewRequest(http.MethodGet, "/overview", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()

	h.OverviewPage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "3 rows x 2 columns")
	assert.Contains(t, body, "alice")
	assert.Contains(t, body, "categorical")
	assert.Contains(t, body, "numeric")
}

func TestOverviewPage_PreviewRowLimit(t *testing.T) {
	h, cookies := newLoadedSession(t, "n\n1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n")

	req := httptest.NewRequest(http.MethodGet, "/overview", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()

	h.OverviewPage(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "10 rows x 1 columns")
	assert.NotContains(t, body, "<td>6</td>")
}

func TestOverviewPage_RedirectsWhenNoDataset(t *testing.T) {
	h, cookies := newLoadedSession(t, "")

	req := httptest.NewRequest(http.MethodGet, "/overview", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()

	h.OverviewPage(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}
