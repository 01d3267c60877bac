package localhake

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/localhake/localhake/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// lastMod is the date the page last changed: its modified date if set,
// otherwise its publish date.
func lastMod(p Page) string {
	if p.DateModified != "" {
		return p.DateModified
	}
	return p.Date
}

func (a *App) renderSitemap(c echo.Context, pages []Page) error {
	base := a.Site.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
		{Loc: BuildURL(base, string(content.KindDocs))},
	}
	for _, p := range pages {
		urls = append(urls, sitemapURL{
			Loc:     PageURL(a.Site, p),
			LastMod: lastMod(p),
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
