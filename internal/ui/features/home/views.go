package home

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/datalens-labs/datalens/internal/ui/features/common"
)

func homeBody(state PageState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if state.Error != "" {
			if err := common.ErrorBanner("upload-error", state.Error).Render(ctx, w); err != nil {
				return err
			}
		}
		if err := common.NoticeBanners(state.Notices).Render(ctx, w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<section class="panel">
<h2>Upload a dataset</h2>
<p>Choose a CSV or Excel (.xlsx) file to explore. Each browser session works on its own copy.</p>
<form class="controls" method="post" action="/upload" enctype="multipart/form-data">
<label>Data file<input type="file" name="file" accept=".csv,.xlsx" required></label>
<button type="submit">Load</button>
</form>
</section>`); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<section class="panel" data-on-load="@get('/updates')"><h2>Data directory</h2>`); err != nil {
			return err
		}
		if err := fileList(state.Files).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</section>`); err != nil {
			return err
		}

		if state.Dataset != "" {
			if _, err := fmt.Fprintf(w, `<section class="panel"><h2>Current dataset</h2><p>%s is loaded. Head to <a href="/overview">Overview</a> to inspect it.</p></section>`,
				templ.EscapeString(state.Dataset)); err != nil {
				return err
			}
		}
		return nil
	})
}

// fileList has a stable element id so SSE updates can swap it in place.
func fileList(files []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(files) == 0 {
			_, err := io.WriteString(w, `<ul id="file-list" class="file-list"><li>No CSV or XLSX files found.</li></ul>`)
			return err
		}
		if _, err := io.WriteString(w, `<ul id="file-list" class="file-list">`); err != nil {
			return err
		}
		for _, f := range files {
			if _, err := fmt.Fprintf(w, `<li><span>%s</span><form method="post" action="/open"><input type="hidden" name="file" value="%s"><button type="submit">Open</button></form></li>`,
				templ.EscapeString(f), templ.EscapeString(f)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	})
}
