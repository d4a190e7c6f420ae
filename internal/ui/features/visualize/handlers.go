// Package visualize drives the chart picker: a kind menu gated by the
// column classification, per-kind column selectors, and an SSE render
// endpoint that hands Plotly a fresh figure.
package visualize

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/datalens-labs/datalens/internal/chart"
	"github.com/datalens-labs/datalens/internal/schema"
	"github.com/datalens-labs/datalens/internal/ui/features/common"
	"github.com/datalens-labs/datalens/internal/ui/figure"
	"github.com/datalens-labs/datalens/internal/ui/session"
)

// Handlers provides HTTP handlers for the visualize feature.
type Handlers struct {
	sessions *session.Manager
	isDev    bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(sessions *session.Manager, isDev bool) *Handlers {
	return &Handlers{sessions: sessions, isDev: isDev}
}

// VisualizePage renders the chart picker with the first available kind
// preselected.
func (h *Handlers) VisualizePage(w http.ResponseWriter, r *http.Request) {
	st, err := h.sessions.Store(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if common.RedirectIfEmpty(w, r, st) {
		return
	}

	c := schema.Classify(st.Table())
	kinds := chart.AvailableKinds(c)
	if len(kinds) == 0 {
		// Always contains at least the heatmap, but guard anyway.
		http.Error(w, "no charts available for this dataset", http.StatusInternalServerError)
		return
	}

	kind := kinds[0]
	signals, err := json.Marshal(signalsFor(kind, chart.DefaultSelections(kind, c)))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	page := common.Page(common.PageData{
		Title:       "Visualize",
		CurrentPath: "/visualize",
		Dataset:     st.Source(),
		IsDev:       h.isDev,
	}, visualizeBody(kinds, kind, string(signals), c))

	if err := page.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Controls swaps in the column selectors for the kind the user picked,
// resetting the selection signals to that kind's defaults.
func (h *Handlers) Controls(w http.ResponseWriter, r *http.Request) {
	st, err := h.sessions.Store(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var signals renderSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sse := datastar.NewSSE(w, r)

	kind := chart.ParseKind(signals.Kind)
	if kind == chart.KindUnknown {
		_ = sse.PatchElementTempl(common.ErrorBanner("chart-message", "Unknown chart type."))
		return
	}

	c := schema.Classify(st.Table())
	if err := sse.PatchElementTempl(controls(kind, chart.DefaultSelections(kind, c), c)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Render resolves the chart request and pushes the figure to Plotly.
// Validation problems render inline; they never tear the page down.
func (h *Handlers) Render(w http.ResponseWriter, r *http.Request) {
	st, err := h.sessions.Store(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Read signals before creating the SSE stream; it consumes the body.
	var signals renderSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sse := datastar.NewSSE(w, r)

	if st.Table() == nil {
		_ = sse.PatchElementTempl(common.ErrorBanner("chart-message", "Load a dataset first."))
		return
	}

	kind := chart.ParseKind(signals.Kind)
	if kind == chart.KindUnknown {
		_ = sse.PatchElementTempl(common.ErrorBanner("chart-message", "Unknown chart type."))
		return
	}

	c := schema.Classify(st.Table())
	spec, err := chart.Resolve(kind, signals.selections(), c)
	if err != nil {
		var verr *chart.ValidationError
		if errors.As(err, &verr) {
			_ = sse.PatchElementTempl(common.ErrorBanner("chart-message", verr.Reason))
			return
		}
		_ = sse.ConsoleError(err)
		return
	}

	fig, err := figure.Build(r.Context(), st, spec)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	dataJSON, err := json.Marshal(fig.Data)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	layoutJSON, err := json.Marshal(fig.Layout)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	if err := sse.PatchElementTempl(clearMessage()); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	script := fmt.Sprintf("Plotly.react('chart', %s, %s, {responsive: true});", dataJSON, layoutJSON)
	if err := sse.ExecuteScript(script); err != nil {
		_ = sse.ConsoleError(err)
	}
}
