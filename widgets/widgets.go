// Package widgets renders the content widgets that embed external links:
// YouTube players and Amazon affiliate links. An invalid URL renders an
// inline alert instead of the widget, so a bad link never breaks the page.
package widgets

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/localhake/localhake/links"
)

// YouTube renders a responsive player for rawURL, or an alert if rawURL is
// not a recognised YouTube video link.
func YouTube(rawURL, title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, YouTubeHTML(rawURL, title))
		return err
	})
}

// YouTubeHTML is the string form of YouTube.
func YouTubeHTML(rawURL, title string) string {
	res := links.ParseYouTube(rawURL)
	if !res.OK() {
		return errorHTML("YouTube", res.Reason)
	}
	if title == "" {
		title = "YouTube video"
	}
	return `<div class="video-embed"><iframe src="` + html.EscapeString(links.YouTubeEmbedURL(res.Value)) +
		`" title="` + html.EscapeString(title) +
		`" loading="lazy" frameborder="0" allow="accelerometer; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share" referrerpolicy="strict-origin-when-cross-origin" allowfullscreen></iframe></div>`
}

// AmazonLink renders an affiliate link to rawURL, or an alert if rawURL is
// not an Amazon link. The href is the URL exactly as written.
func AmazonLink(rawURL, label string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, AmazonLinkHTML(rawURL, label))
		return err
	})
}

// AmazonLinkHTML is the string form of AmazonLink.
func AmazonLinkHTML(rawURL, label string) string {
	res := links.ParseAmazon(rawURL)
	if !res.OK() {
		return errorHTML("Amazon", res.Reason)
	}
	if label == "" {
		label = "View on Amazon"
	}
	return `<a class="affiliate-link" href="` + html.EscapeString(res.Value) +
		`" target="_blank" rel="sponsored nofollow noopener noreferrer">` + html.EscapeString(label) + `</a>`
}

// LinkError renders the inline alert for a rejected link.
func LinkError(provider string, reason links.Reason) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, errorHTML(provider, reason))
		return err
	})
}

func errorHTML(provider string, reason links.Reason) string {
	return `<div class="link-error" role="alert" data-reason="` + reason.String() + `">` +
		`<strong>Invalid ` + html.EscapeString(provider) + ` link:</strong> ` +
		html.EscapeString(reason.Message()) + `</div>`
}
