package views

import (
	"context"
	"html"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/localhake/localhake/markdown"
)

// Layout wraps head and body in the site chrome.
func Layout(head, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en">`); err != nil {
			return err
		}
		if err := head.Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<body><header class="site-header"><a href="/">LocalHake</a><nav><a href="/">Blog</a> <a href="/docs/">Docs</a></nav></header><main>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main><footer class="site-footer"><a href="/feed.xml">RSS</a></footer></body></html>`)
		return err
	})
}

// Page renders a blog post or docs page body with its header and, for docs,
// a table of contents.
func Page(p PageData, toc []markdown.Heading, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<article class="page page-` + html.EscapeString(p.Kind) + `"><h1>` + html.EscapeString(p.Title) + `</h1>`)
		if p.Date != "" {
			b.WriteString(`<p class="page-meta"><time datetime="` + html.EscapeString(p.Date) + `">` + html.EscapeString(p.Date) + `</time>`)
			if p.Author != "" {
				b.WriteString(" · " + html.EscapeString(p.Author))
			}
			if p.DateModified != "" && p.DateModified != p.Date {
				b.WriteString(` · updated <time datetime="` + html.EscapeString(p.DateModified) + `">` + html.EscapeString(p.DateModified) + `</time>`)
			}
			b.WriteString("</p>")
		}
		if len(toc) > 0 {
			b.WriteString(`<nav class="toc" aria-label="Table of contents"><ul>`)
			for _, h := range toc {
				b.WriteString(`<li class="toc-h` + strconv.Itoa(h.Level) + `"><a href="#` + h.ID + `">` + html.EscapeString(h.Text) + `</a></li>`)
			}
			b.WriteString("</ul></nav>")
		}
		b.WriteString(`<div class="prose">`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		b.Reset()
		b.WriteString("</div>")
		b.WriteString(tagList(p.Tags))
		b.WriteString("</article>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Listing renders a list of posts with a tag filter. heading is shown above
// the list; activeTag highlights the selected tag.
func Listing(heading string, posts []PostSummary, activeTag string, tags []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section class="listing"><h1>` + html.EscapeString(heading) + `</h1>`)
		if len(tags) > 0 {
			b.WriteString(`<nav class="tags">`)
			for _, t := range tags {
				class := "tag"
				if strings.EqualFold(t, activeTag) {
					class += " tag-active"
				}
				b.WriteString(`<a class="` + class + `" href="/?tag=` + url.QueryEscape(t) + `">` + html.EscapeString(t) + `</a>`)
			}
			b.WriteString("</nav>")
		}
		if len(posts) == 0 {
			b.WriteString(`<p class="empty">Nothing here yet.</p>`)
		}
		b.WriteString("<ul>")
		for _, p := range posts {
			b.WriteString(`<li><a href="` + html.EscapeString(p.URL) + `">` + html.EscapeString(p.Title) + `</a>`)
			if p.Date != "" {
				b.WriteString(` <time datetime="` + html.EscapeString(p.Date) + `">` + html.EscapeString(p.Date) + `</time>`)
			}
			if p.Summary != "" {
				b.WriteString(`<p>` + html.EscapeString(p.Summary) + `</p>`)
			}
			b.WriteString("</li>")
		}
		b.WriteString("</ul></section>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Message renders a plain status page body, used for 404 and 500 pages.
func Message(title, text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="message"><h1>`+html.EscapeString(title)+`</h1><p>`+html.EscapeString(text)+`</p><p><a href="/">Back home</a></p></section>`)
		return err
	})
}

func tagList(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<ul class="page-tags">`)
	for _, t := range tags {
		b.WriteString(`<li><a href="/?tag=` + url.QueryEscape(t) + `">` + html.EscapeString(t) + `</a></li>`)
	}
	b.WriteString("</ul>")
	return b.String()
}
