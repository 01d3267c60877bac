// Package views holds the HTML templates of the preview site as templ
// components.
package views

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/localhake/localhake/jsonld"
	"github.com/localhake/localhake/seo"
)

// JSONLD renders doc inside a <script type="application/ld+json"> element.
func JSONLD(doc jsonld.Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<script type="application/ld+json">`+doc.String()+`</script>`)
		return err
	})
}

// Head renders the <head> element: title, canonical link, meta tags, the
// stylesheet and one JSON-LD script per document.
func Head(meta seo.PageMeta, docs ...jsonld.Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<head><meta charset="utf-8"/><meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		b.WriteString("<title>" + html.EscapeString(meta.Title) + "</title>")
		if meta.URL != "" {
			b.WriteString(`<link rel="canonical" href="` + html.EscapeString(meta.URL) + `"/>`)
		}
		for _, tag := range meta.Tags() {
			attr, key := "name", tag.Name
			if tag.Property != "" {
				attr, key = "property", tag.Property
			}
			b.WriteString(`<meta ` + attr + `="` + html.EscapeString(key) + `" content="` + html.EscapeString(tag.Content) + `"/>`)
		}
		b.WriteString(`<link rel="stylesheet" href="/public/site.css"/>`)
		b.WriteString(`<link rel="alternate" type="application/rss+xml" title="RSS" href="/feed.xml"/>`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		for _, d := range docs {
			if err := JSONLD(d).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</head>")
		return err
	})
}
