package session

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestStore_StartsEmpty(t *testing.T) {
	m := NewManager("test-secret")
	t.Cleanup(m.Close)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	st, err := m.Store(rec, req)
	require.NoError(t, err)
	assert.Nil(t, st.Table())
}

func TestStore_PreloadsDataset(t *testing.T) {
	path := writeCSV(t, "people.csv", "name,age\nalice,34\nbob,29\n")

	m := NewManager("test-secret")
	t.Cleanup(m.Close)
	m.Preload(path)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	st, err := m.Store(rec, req)
	require.NoError(t, err)
	require.NotNil(t, st.Table())
	assert.Equal(t, int64(2), st.Table().RowCount)
	assert.Equal(t, path, st.Source())

	// The same session keeps its store rather than reloading.
	req2 := httptest.NewRequest("GET", "/", nil)
	for _, c := range rec.Result().Cookies() {
		req2.AddCookie(c)
	}
	st2, err := m.Store(httptest.NewRecorder(), req2)
	require.NoError(t, err)
	assert.Same(t, st, st2)
}

func TestStore_PreloadFailureSurfaces(t *testing.T) {
	m := NewManager("test-secret")
	t.Cleanup(m.Close)
	m.Preload(filepath.Join(t.TempDir(), "missing.csv"))

	_, err := m.Store(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assert.Error(t, err)
}
