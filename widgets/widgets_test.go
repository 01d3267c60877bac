package widgets

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localhake/localhake/links"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestYouTubeRendersPlayer(t *testing.T) {
	doc := render(t, YouTube("https://youtu.be/dQw4w9WgXcQ", "Never gonna"))

	iframe := doc.Find("div.video-embed iframe")
	require.Equal(t, 1, iframe.Length())
	src, _ := iframe.Attr("src")
	assert.Equal(t, "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", src)
	title, _ := iframe.Attr("title")
	assert.Equal(t, "Never gonna", title)
	assert.Equal(t, 0, doc.Find("[role=alert]").Length())
}

func TestYouTubeRendersAlertOnFailure(t *testing.T) {
	tests := []struct {
		input  string
		reason links.Reason
	}{
		{"", links.ReasonEmpty},
		{"nope", links.ReasonMalformed},
		{"https://example.com/video", links.ReasonUnsupportedHost},
		{"https://www.youtube.com/watch", links.ReasonNoIdentifier},
		{"https://youtu.be/bad$id", links.ReasonInvalidIdentifier},
	}
	for _, tt := range tests {
		doc := render(t, YouTube(tt.input, ""))
		alert := doc.Find(`div.link-error[role="alert"]`)
		require.Equal(t, 1, alert.Length(), "alert for %q", tt.input)
		reason, _ := alert.Attr("data-reason")
		assert.Equal(t, tt.reason.String(), reason)
		assert.Contains(t, alert.Text(), tt.reason.Message())
		assert.Equal(t, 0, doc.Find("iframe").Length())
	}
}

func TestAmazonLinkKeepsURL(t *testing.T) {
	raw := "https://www.amazon.com/dp/B0?tag=localhake-20&linkCode=ll1"
	doc := render(t, AmazonLink(raw, "Mini PC"))

	a := doc.Find("a.affiliate-link")
	require.Equal(t, 1, a.Length())
	href, _ := a.Attr("href")
	assert.Equal(t, raw, href)
	rel, _ := a.Attr("rel")
	assert.Contains(t, rel, "sponsored")
	assert.Equal(t, "Mini PC", a.Text())
}

func TestAmazonLinkAlert(t *testing.T) {
	doc := render(t, AmazonLink("https://www.ebay.com/itm/1", ""))
	assert.Equal(t, 0, doc.Find("a").Length())
	assert.Equal(t, 1, doc.Find("[role=alert]").Length())
}

func TestHTMLIsEscaped(t *testing.T) {
	out := AmazonLinkHTML("https://amzn.to/x", `<b>"label"</b>`)
	assert.False(t, strings.Contains(out, "<b>"))
	assert.Contains(t, out, "&lt;b&gt;")

	out = YouTubeHTML("https://youtu.be/abc", `"><script>`)
	assert.NotContains(t, out, "<script>")
}
