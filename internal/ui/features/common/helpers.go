package common

import (
	"net/http"

	"github.com/datalens-labs/datalens/internal/dataset"
)

// RedirectIfEmpty sends the visitor back to the upload page when the
// session has no dataset yet. Returns true when it redirected.
func RedirectIfEmpty(w http.ResponseWriter, r *http.Request, st *dataset.Store) bool {
	if st.Table() == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return true
	}
	return false
}

// NoticeMessages flattens load notices into plain strings for rendering.
func NoticeMessages(notices []dataset.Notice) []string {
	if len(notices) == 0 {
		return nil
	}
	msgs := make([]string, len(notices))
	for i, n := range notices {
		msgs[i] = n.Message
	}
	return msgs
}
