// Package session maps browser sessions to their in-memory dataset stores.
// Every visitor works against a private database, so two tabs uploading
// different files never see each other's data.
package session

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/datalens-labs/datalens/internal/dataset"
)

const (
	cookieName = "datalens"
	sidKey     = "sid"
)

// Manager pairs a gorilla cookie store with the per-session dataset stores.
type Manager struct {
	cookies *sessions.CookieStore
	preload string

	mu     sync.Mutex
	stores map[string]*dataset.Store
}

// NewManager builds a Manager using secret to sign session cookies.
func NewManager(secret string) *Manager {
	cookies := sessions.NewCookieStore([]byte(secret))
	cookies.MaxAge(86400 * 30)
	cookies.Options.Path = "/"
	cookies.Options.HttpOnly = true
	cookies.Options.SameSite = http.SameSiteLaxMode

	return &Manager{
		cookies: cookies,
		stores:  make(map[string]*dataset.Store),
	}
}

// Preload sets a dataset file loaded into every new session's store, so a
// server started with a file argument opens on that dataset.
func (m *Manager) Preload(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preload = path
}

// Store returns the dataset store for the request's session, creating the
// session cookie on first contact. New stores start with the preload
// dataset when one is configured, empty otherwise.
func (m *Manager) Store(w http.ResponseWriter, r *http.Request) (*dataset.Store, error) {
	sess, _ := m.cookies.Get(r, cookieName)

	sid, ok := sess.Values[sidKey].(string)
	if !ok || sid == "" {
		sid = uuid.NewString()
		sess.Values[sidKey] = sid
		if err := sess.Save(r, w); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.stores[sid]
	if !ok {
		var err error
		st, err = dataset.Open()
		if err != nil {
			return nil, err
		}
		if m.preload != "" {
			if _, err := st.LoadFile(r.Context(), m.preload); err != nil {
				_ = st.Close()
				return nil, err
			}
		}
		m.stores[sid] = st
	}
	return st, nil
}

// Close shuts down every session's database.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for sid, st := range m.stores {
		_ = st.Close()
		delete(m.stores, sid)
	}
}
