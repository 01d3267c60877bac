package localhake

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/localhake/localhake/content"
	"github.com/localhake/localhake/jsonld"
	"github.com/localhake/localhake/links"
	"github.com/localhake/localhake/markdown"
	"github.com/localhake/localhake/seo"
	"github.com/localhake/localhake/views"
)

// render writes a full HTML document: head built from meta plus the page's
// structured data and the site Organization, then body inside the layout.
func (a *App) render(c echo.Context, status int, meta seo.PageMeta, body templ.Component, docs ...jsonld.Document) error {
	docs = append(docs, jsonld.Organization(a.Site))
	page := views.Layout(views.Head(meta, docs...), body)
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return page.Render(c.Request().Context(), c.Response())
}

func summaries(pages []Page) []views.PostSummary {
	out := make([]views.PostSummary, 0, len(pages))
	for _, p := range pages {
		out = append(out, views.PostSummary{
			Title:   p.Title,
			Date:    p.Date,
			Summary: p.Description,
			URL:     p.Path(),
			Tags:    p.Tags,
		})
	}
	return out
}

func (a *App) handleHome(c echo.Context) error {
	tag := c.QueryParam("tag")
	posts, err := a.Cache.ListPages(content.KindBlog, tag)
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags(content.KindBlog)
	if err != nil {
		return err
	}
	meta := seo.Project(a.Site, seo.FrontMatter{}, BuildURL(a.Site.URL))
	return a.render(c, http.StatusOK, meta, a.Views.Listing("Latest posts", summaries(posts), tag, tags))
}

func (a *App) handleDocsIndex(c echo.Context) error {
	pages, err := a.Cache.ListPages(content.KindDocs, "")
	if err != nil {
		return err
	}
	meta := seo.Project(a.Site, seo.FrontMatter{Title: "Docs"}, BuildURL(a.Site.URL, string(content.KindDocs)))
	return a.render(c, http.StatusOK, meta, a.Views.Listing("Docs", summaries(pages), "", nil))
}

// pageHandler serves one blog post or docs page with its structured data.
func (a *App) pageHandler(kind content.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := a.Cache.GetPage(kind, c.Param("slug"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return echo.NewHTTPError(http.StatusNotFound)
			}
			return err
		}
		var toc []markdown.Heading
		if kind == content.KindDocs {
			toc = markdown.Headings(page.Content)
		}
		author := page.Author
		if author == "" {
			author = a.Site.Author
		}
		data := views.PageData{
			Title:        page.Title,
			Date:         page.Date,
			DateModified: page.DateModified,
			Author:       author,
			Tags:         page.Tags,
			Kind:         string(kind),
		}
		body := a.Views.Page(data, toc, markdown.Markdown(page.Content))
		return a.render(c, http.StatusOK, PageMeta(a.Site, page), body, PageDocument(a.Site, page))
	}
}

// linkCheckBody is the JSON body of /api/links/:kind: the validator result
// plus a human-readable message on failure and the embed URL for videos.
func linkCheckBody(r links.Result, embedURL string) (map[string]any, error) {
	raw, err := r.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	if !r.OK() {
		body["message"] = r.Reason.Message()
	}
	if embedURL != "" {
		body["embedUrl"] = embedURL
	}
	return body, nil
}

func (a *App) handleLinkCheck(c echo.Context) error {
	if !a.linkLimiter.Allow(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, map[string]string{"message": "Too many requests"})
	}
	raw := c.QueryParam("url")
	var (
		result   links.Result
		embedURL string
	)
	switch strings.ToLower(c.Param("kind")) {
	case "youtube":
		result = links.ParseYouTube(raw)
		if result.OK() {
			embedURL = links.YouTubeEmbedURL(result.Value)
		}
	case "amazon":
		result = links.ParseAmazon(raw)
	default:
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Unknown link kind"})
	}
	body, err := linkCheckBody(result, embedURL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, body)
}

func (a *App) handleSitemap(c echo.Context) error {
	var pages []Page
	for _, kind := range []content.Kind{content.KindBlog, content.KindDocs} {
		ps, err := a.Cache.ListPages(kind, "")
		if err != nil {
			return err
		}
		pages = append(pages, ps...)
	}
	return a.renderSitemap(c, pages)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPages(content.KindBlog, "")
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\n\nSitemap: " + a.Site.Abs("sitemap.xml") + "\n"
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		a.Echo.DefaultHTTPErrorHandler(err, c)
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		meta := seo.Project(a.Site, seo.FrontMatter{Title: "Not found"}, "")
		_ = a.render(c, http.StatusNotFound, meta, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error", "path", c.Request().URL.Path, "err", err)
		meta := seo.Project(a.Site, seo.FrontMatter{Title: "Error"}, "")
		_ = a.render(c, code, meta, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
