package localhake

import (
	"github.com/localhake/localhake/content"
	"github.com/localhake/localhake/jsonld"
	"github.com/localhake/localhake/seo"
	"github.com/localhake/localhake/site"
)

// PageURL returns the canonical absolute URL of p.
func PageURL(cfg site.Config, p Page) string {
	return BuildURL(cfg.URL, string(p.Kind), p.Slug)
}

// PageInput maps p onto the builder input. The author falls back to the site
// author; the image is resolved to an absolute URL only when the page sets
// one, so pages without an image produce no image property.
func PageInput(cfg site.Config, p Page) jsonld.PageInput {
	author := p.Author
	if author == "" {
		author = cfg.Author
	}
	image := ""
	if p.Image != "" {
		image = seo.ResolveImage(cfg, p.Image)
	}
	return jsonld.PageInput{
		Title:         p.Title,
		Description:   p.Description,
		DatePublished: p.Date,
		DateModified:  p.DateModified,
		AuthorName:    author,
		Image:         image,
		URL:           PageURL(cfg, p),
	}
}

// PageDocument returns the structured data for p: BlogPosting for blog
// posts and Article for docs pages.
func PageDocument(cfg site.Config, p Page) jsonld.Document {
	in := PageInput(cfg, p)
	if p.Kind == content.KindBlog {
		return jsonld.BlogPosting(cfg, in)
	}
	return jsonld.Article(cfg, in)
}

// PageMeta returns the <head> metadata for p.
func PageMeta(cfg site.Config, p Page) seo.PageMeta {
	return seo.Project(cfg, p.FrontMatter(), PageURL(cfg, p))
}
