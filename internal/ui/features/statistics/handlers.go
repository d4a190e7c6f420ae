// Package statistics renders summary statistics for the loaded dataset.
package statistics

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/datalens-labs/datalens/internal/schema"
	"github.com/datalens-labs/datalens/internal/stats"
	"github.com/datalens-labs/datalens/internal/ui/features/common"
	"github.com/datalens-labs/datalens/internal/ui/session"
)

// Handlers provides HTTP handlers for the statistics feature.
type Handlers struct {
	sessions *session.Manager
	isDev    bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(sessions *session.Manager, isDev bool) *Handlers {
	return &Handlers{sessions: sessions, isDev: isDev}
}

// StatisticsPage renders describe/missing/categorical summaries.
func (h *Handlers) StatisticsPage(w http.ResponseWriter, r *http.Request) {
	st, err := h.sessions.Store(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if common.RedirectIfEmpty(w, r, st) {
		return
	}

	ctx := r.Context()
	c := schema.Classify(st.Table())

	state := pageState{Dataset: st.Source(), Categorical: c.Categorical}

	descs, err := stats.Describe(ctx, st.DB(), c.Numeric)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	state.Describe = describeGrid(descs)

	missing, err := stats.MissingCounts(ctx, st.DB(), c.All)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	state.Missing = missingGrid(missing)

	cats, err := stats.CategoricalSummary(ctx, st.DB(), c.Categorical)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	state.Categories = categoryGrid(cats)

	page := common.Page(common.PageData{
		Title:       "Statistics",
		CurrentPath: "/statistics",
		Dataset:     st.Source(),
		IsDev:       h.isDev,
	}, statisticsBody(state))

	if err := page.Render(ctx, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ValueCounts streams the frequency table for one categorical column.
func (h *Handlers) ValueCounts(w http.ResponseWriter, r *http.Request) {
	st, err := h.sessions.Store(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)

	column := r.URL.Query().Get("column")
	c := schema.Classify(st.Table())
	if !c.IsCategorical(column) {
		_ = sse.PatchElementTempl(common.ErrorBanner("value-counts", "Pick a categorical column first."))
		return
	}

	counts, err := stats.ValueCounts(r.Context(), st.DB(), column)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	grid := common.Grid{Columns: []string{column, "Count"}}
	for _, vc := range counts {
		grid.Rows = append(grid.Rows, []string{vc.Value, strconv.FormatInt(vc.Count, 10)})
	}
	if err := sse.PatchElementTempl(common.DataGrid("value-counts", grid)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

func describeGrid(descs []stats.Description) common.Grid {
	g := common.Grid{Columns: []string{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"}}
	for _, d := range descs {
		g.Rows = append(g.Rows, []string{
			d.Column,
			strconv.FormatInt(d.Count, 10),
			formatFloat(d.Mean),
			formatFloat(d.Std),
			formatFloat(d.Min),
			formatFloat(d.Q25),
			formatFloat(d.Median),
			formatFloat(d.Q75),
			formatFloat(d.Max),
		})
	}
	return g
}

func missingGrid(missing []stats.MissingCount) common.Grid {
	g := common.Grid{Columns: []string{"Column", "Missing"}}
	for _, m := range missing {
		g.Rows = append(g.Rows, []string{m.Column, strconv.FormatInt(m.Count, 10)})
	}
	return g
}

func categoryGrid(cats []stats.CategoryStat) common.Grid {
	g := common.Grid{Columns: []string{"Column", "Unique", "Most Frequent"}}
	for _, c := range cats {
		g.Rows = append(g.Rows, []string{c.Column, strconv.FormatInt(c.Unique, 10), c.MostFrequent})
	}
	return g
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.4g", v)
}
