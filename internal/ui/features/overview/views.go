package overview

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/datalens-labs/datalens/internal/ui/features/common"
)

type pageState struct {
	Dataset string
	Shape   string
	Notices []string
	Head    common.Grid
	Schema  common.Grid
}

func overviewBody(state pageState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := common.NoticeBanners(state.Notices).Render(ctx, w); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, `<section class="panel"><h2>%s</h2><p>%s</p></section>`,
			templ.EscapeString(state.Dataset), templ.EscapeString(state.Shape)); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<section class="panel"><h2>First rows</h2>`); err != nil {
			return err
		}
		if err := common.DataGrid("head-grid", state.Head).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</section><section class="panel"><h2>Columns</h2>`); err != nil {
			return err
		}
		if err := common.DataGrid("schema-grid", state.Schema).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}
