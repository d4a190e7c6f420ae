package visualize

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/datalens-labs/datalens/internal/chart"
	"github.com/datalens-labs/datalens/internal/schema"
)

func visualizeBody(kinds []chart.Kind, selected chart.Kind, signalsJSON string, c schema.Classification) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div id="viz" data-signals='%s'>
<section class="panel">
<h2>Chart type</h2>
<form class="controls">
<label>Chart<select data-bind-kind data-on-change="@get('/visualize/controls')">`,
			templ.EscapeString(signalsJSON)); err != nil {
			return err
		}

		for _, k := range kinds {
			sel := ""
			if k == selected {
				sel = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`,
				k.String(), sel, templ.EscapeString(k.Label())); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `</select></label></form></section><section class="panel"><h2>Columns</h2>`); err != nil {
			return err
		}

		if err := controls(selected, chart.DefaultSelections(selected, c), c).Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, `</section>
<section class="panel">
<button data-on-click="@post('/visualize/render')">Render</button>
<div id="chart-message"></div>
<div id="chart"></div>
</section>
</div>`)
		return err
	})
}

// controls renders the selector widgets for one chart kind. The wrapper
// carries fresh default signals so switching kinds never leaks stale
// selections from the previous one.
func controls(kind chart.Kind, sel chart.Selections, c schema.Classification) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		signals, err := json.Marshal(signalsFor(kind, sel))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<form id="controls" class="controls" data-signals='%s'>`,
			templ.EscapeString(string(signals))); err != nil {
			return err
		}

		switch kind {
		case chart.KindHistogram:
			err = renderAll(ctx, w,
				selectControl("Column", "x", c.Numeric, sel.X, false),
				selectControl("Color by", "color", c.Categorical, sel.Color, true),
			)
		case chart.KindScatter:
			err = renderAll(ctx, w,
				selectControl("X axis", "x", c.Numeric, sel.X, false),
				selectControl("Y axis", "y", c.Numeric, sel.Y, false),
				selectControl("Color by", "color", c.All, sel.Color, true),
			)
		case chart.KindScatterMatrix:
			err = renderAll(ctx, w,
				multiSelectControl("Columns", "columns", c.Numeric, sel.Columns),
				selectControl("Color by", "color", c.Categorical, sel.Color, true),
			)
		case chart.KindBox, chart.KindViolin:
			err = renderAll(ctx, w,
				selectControl("Column", "x", c.Numeric, sel.X, false),
				selectControl("Group by", "group", c.Categorical, sel.Group, true),
			)
		case chart.KindCount:
			err = renderAll(ctx, w,
				selectControl("Column", "x", c.Categorical, sel.X, false),
			)
		case chart.KindTimeSeries:
			err = renderAll(ctx, w,
				selectControl("Date column", "x", c.Temporal, sel.X, false),
				selectControl("Value column", "y", c.Numeric, sel.Y, false),
				selectControl("Color by", "color", c.Categorical, sel.Color, true),
			)
		case chart.KindCorrelationHeatmap:
			_, err = io.WriteString(w, `<p>Computed over every numeric column; nothing to choose.</p>`)
		case chart.KindSunburst, chart.KindTreemap:
			err = renderAll(ctx, w,
				multiSelectControl("Hierarchy path", "path", c.Categorical, sel.Path),
				selectControl("Values", "values", c.Numeric, sel.Values, true),
			)
		}
		if err != nil {
			return err
		}

		_, err = io.WriteString(w, `</form>`)
		return err
	})
}

func clearMessage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="chart-message"></div>`)
		return err
	})
}

func renderAll(ctx context.Context, w io.Writer, components ...templ.Component) error {
	for _, c := range components {
		if err := c.Render(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

func selectControl(label, signal string, options []string, selected string, optional bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<label>%s<select data-bind-%s>`,
			templ.EscapeString(label), signal); err != nil {
			return err
		}
		if optional {
			if _, err := io.WriteString(w, `<option value="">(none)</option>`); err != nil {
				return err
			}
		}
		for _, opt := range options {
			sel := ""
			if opt == selected {
				sel = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`,
				templ.EscapeString(opt), sel, templ.EscapeString(opt)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</select></label>`)
		return err
	})
}

func multiSelectControl(label, signal string, options []string, selected []string) templ.Component {
	chosen := make(map[string]bool, len(selected))
	for _, s := range selected {
		chosen[s] = true
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<label>%s<select multiple data-bind-%s>`,
			templ.EscapeString(label), signal); err != nil {
			return err
		}
		for _, opt := range options {
			sel := ""
			if chosen[opt] {
				sel = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`,
				templ.EscapeString(opt), sel, templ.EscapeString(opt)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</select></label>`)
		return err
	})
}
