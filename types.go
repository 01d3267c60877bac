package localhake

import (
	"strings"

	"github.com/localhake/localhake/content"
	"github.com/localhake/localhake/seo"
)

// Page is a blog post or docs page as stored in SQLite and rendered by the
// preview server.
type Page struct {
	Kind         content.Kind
	Slug         string
	Title        string
	Description  string
	Date         string
	DateModified string
	Author       string
	Image        string
	Keywords     []string
	Tags         []string
	Content      string
	Published    bool
}

// Path returns the site-relative URL of the page, with a trailing slash.
func (p Page) Path() string {
	return "/" + string(p.Kind) + "/" + p.Slug + "/"
}

// FrontMatter converts p back to the front-matter shape the seo package reads.
func (p Page) FrontMatter() seo.FrontMatter {
	return seo.FrontMatter{
		Title:        p.Title,
		Description:  p.Description,
		Slug:         p.Slug,
		Date:         p.Date,
		DateModified: p.DateModified,
		Author:       p.Author,
		Image:        p.Image,
		Keywords:     p.Keywords,
		Tags:         p.Tags,
		Draft:        !p.Published,
	}
}

// PageFromDocument maps a parsed content file onto a Page.
func PageFromDocument(d content.Document) Page {
	fm := d.FrontMatter
	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = d.Slug
	}
	return Page{
		Kind:         d.Kind,
		Slug:         d.Slug,
		Title:        title,
		Description:  fm.Description,
		Date:         fm.Date,
		DateModified: fm.DateModified,
		Author:       fm.Author,
		Image:        fm.Image,
		Keywords:     FilterEmpty(fm.Keywords),
		Tags:         FilterEmpty(fm.Tags),
		Content:      d.Body,
		Published:    !fm.Draft,
	}
}
