package seo

import "github.com/localhake/localhake/site"

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
	Keywords    string
	SiteName    string
}

// MetaTag is one <meta> element. Exactly one of Name and Property is set.
type MetaTag struct {
	Name     string
	Property string
	Content  string
}

// Project builds the head metadata for a page from its front matter.
// Pages with a date are articles; everything else is a website page.
func Project(cfg site.Config, fm FrontMatter, permalink string) PageMeta {
	title := cfg.Name
	if fm.Title != "" {
		title = fm.Title + " | " + cfg.Name
	}
	desc := fm.Description
	if desc == "" {
		desc = cfg.Description
	}
	ogType := "website"
	if fm.Date != "" {
		ogType = "article"
	}
	return PageMeta{
		Title:       title,
		Description: desc,
		URL:         permalink,
		OGType:      ogType,
		Image:       ResolveImage(cfg, fm.Image),
		Keywords:    ResolveKeywords(cfg, fm.Keywords),
		SiteName:    cfg.Name,
	}
}

// Tags lists the <meta> elements for m in a stable order. Empty values are
// left out.
func (m PageMeta) Tags() []MetaTag {
	tags := []MetaTag{
		{Name: "description", Content: m.Description},
		{Name: "keywords", Content: m.Keywords},
		{Property: "og:title", Content: m.Title},
		{Property: "og:description", Content: m.Description},
		{Property: "og:type", Content: m.OGType},
		{Property: "og:url", Content: m.URL},
		{Property: "og:image", Content: m.Image},
		{Property: "og:site_name", Content: m.SiteName},
		{Name: "twitter:card", Content: "summary_large_image"},
		{Name: "twitter:title", Content: m.Title},
		{Name: "twitter:description", Content: m.Description},
		{Name: "twitter:image", Content: m.Image},
	}
	out := tags[:0]
	for _, t := range tags {
		if t.Content != "" {
			out = append(out, t)
		}
	}
	return out
}
