package common

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/datalens-labs/datalens/internal/ui/resources"
)

const (
	plotlyScript   = "https://cdn.plot.ly/plotly-2.35.2.min.js"
	datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"
)

type navLink struct {
	href  string
	label string
}

var navLinks = []navLink{
	{"/", "Upload"},
	{"/overview", "Overview"},
	{"/statistics", "Statistics"},
	{"/visualize", "Visualize"},
}

// Page wraps body in the application shell: doctype, head with the asset
// and script tags, and the top navigation bar.
func Page(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s - DataLens</title>
<link rel="stylesheet" href="%s">
<script src="%s"></script>
<script type="module" src="%s"></script>
</head>
<body>`,
			templ.EscapeString(data.Title),
			resources.StaticPath("app.css"),
			plotlyScript,
			datastarScript,
		); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<nav class="topbar"><a class="brand" href="/">DataLens</a>`); err != nil {
			return err
		}
		for _, l := range navLinks {
			class := ""
			if l.href == data.CurrentPath {
				class = ` class="active"`
			}
			if _, err := fmt.Fprintf(w, `<a href="%s"%s>%s</a>`, l.href, class, l.label); err != nil {
				return err
			}
		}
		if data.Dataset != "" {
			if _, err := fmt.Fprintf(w, `<span class="dataset-name">%s</span>`, templ.EscapeString(data.Dataset)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</nav><main>`); err != nil {
			return err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `</main>`); err != nil {
			return err
		}
		if data.IsDev {
			if _, err := io.WriteString(w, `<div data-on-load="@get('/reload')"></div>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// ErrorBanner renders an inline error message into the element with the
// given id, suitable for SSE element patches.
func ErrorBanner(id, msg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div id="%s" class="banner error">%s</div>`,
			templ.EscapeString(id), templ.EscapeString(msg))
		return err
	})
}

// NoticeBanners renders one banner per notice message.
func NoticeBanners(msgs []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, m := range msgs {
			if _, err := fmt.Fprintf(w, `<div class="banner notice">%s</div>`, templ.EscapeString(m)); err != nil {
				return err
			}
		}
		return nil
	})
}

// DataGrid renders a table with the given element id.
func DataGrid(id string, g Grid) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<table id="%s" class="grid"><thead><tr>`, templ.EscapeString(id)); err != nil {
			return err
		}
		for _, c := range g.Columns {
			if _, err := fmt.Fprintf(w, `<th>%s</th>`, templ.EscapeString(c)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</tr></thead><tbody>`); err != nil {
			return err
		}
		for _, row := range g.Rows {
			if _, err := io.WriteString(w, `<tr>`); err != nil {
				return err
			}
			for _, cell := range row {
				if _, err := fmt.Fprintf(w, `<td>%s</td>`, templ.EscapeString(cell)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</tr>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}

// EmptyState renders a muted placeholder message.
func EmptyState(msg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<p class="empty-state">%s</p>`, templ.EscapeString(msg))
		return err
	})
}
