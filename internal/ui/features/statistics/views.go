package statistics

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/datalens-labs/datalens/internal/ui/features/common"
)

type pageState struct {
	Dataset     string
	Describe    common.Grid
	Missing     common.Grid
	Categories  common.Grid
	Categorical []string
}

func statisticsBody(state pageState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="panel"><h2>Numeric columns</h2>`); err != nil {
			return err
		}
		if err := gridOrEmpty(ctx, w, "describe-grid", state.Describe, "No numeric columns."); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `</section><section class="panel"><h2>Missing values</h2>`); err != nil {
			return err
		}
		if err := gridOrEmpty(ctx, w, "missing-grid", state.Missing, "No missing values."); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `</section><section class="panel"><h2>Categorical columns</h2>`); err != nil {
			return err
		}
		if err := gridOrEmpty(ctx, w, "categories-grid", state.Categories, "No categorical columns."); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</section>`); err != nil {
			return err
		}

		if len(state.Categorical) == 0 {
			return nil
		}

		if _, err := io.WriteString(w, `<section class="panel"><h2>Value counts</h2>
<form class="controls" data-on-submit="@get('/statistics/values?column='+encodeURIComponent(evt.target.column.value))">
<label>Column<select name="column">`); err != nil {
			return err
		}
		for _, c := range state.Categorical {
			if _, err := fmt.Fprintf(w, `<option value="%s">%s</option>`, templ.EscapeString(c), templ.EscapeString(c)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</select></label>
<button type="submit">Count</button>
</form>
<div id="value-counts"></div>
</section>`)
		return err
	})
}

func gridOrEmpty(ctx context.Context, w io.Writer, id string, g common.Grid, empty string) error {
	if len(g.Rows) == 0 {
		return common.EmptyState(empty).Render(ctx, w)
	}
	return common.DataGrid(id, g).Render(ctx, w)
}
