// Package overview shows the shape, schema, and first rows of the dataset.
package overview

import (
	"fmt"
	"net/http"

	"github.com/datalens-labs/datalens/internal/stats"
	"github.com/datalens-labs/datalens/internal/ui/features/common"
	"github.com/datalens-labs/datalens/internal/ui/session"
)

// Handlers provides HTTP handlers for the overview feature.
type Handlers struct {
	sessions    *session.Manager
	previewRows int
	isDev       bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(sessions *session.Manager, previewRows int, isDev bool) *Handlers {
	return &Handlers{sessions: sessions, previewRows: previewRows, isDev: isDev}
}

// OverviewPage renders the dataset overview.
func (h *Handlers) OverviewPage(w http.ResponseWriter, r *http.Request) {
	st, err := h.sessions.Store(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if common.RedirectIfEmpty(w, r, st) {
		return
	}

	table := st.Table()

	head, err := stats.HeadRows(r.Context(), st.DB(), h.previewRows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	schema := common.Grid{Columns: []string{"Column", "Storage Type", "Semantic Type"}}
	for _, col := range table.Columns {
		schema.Rows = append(schema.Rows, []string{col.Name, col.StorageType, col.Semantic.String()})
	}

	state := pageState{
		Dataset: st.Source(),
		Shape:   fmt.Sprintf("%d rows x %d columns", table.RowCount, len(table.Columns)),
		Notices: common.NoticeMessages(st.Notices()),
		Head:    common.Grid{Columns: head.Columns, Rows: head.Rows},
		Schema:  schema,
	}

	page := common.Page(common.PageData{
		Title:       "Overview",
		CurrentPath: "/overview",
		Dataset:     st.Source(),
		IsDev:       h.isDev,
	}, overviewBody(state))

	if err := page.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
