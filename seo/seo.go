// Package seo maps page front matter onto the <head> metadata of a page:
// title, description, canonical URL, social image and keywords.
package seo

import (
	"strings"

	"github.com/localhake/localhake/site"
)

// FrontMatter is the YAML header of a content file.
type FrontMatter struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Slug         string   `yaml:"slug"`
	Date         string   `yaml:"date"`
	DateModified string   `yaml:"date_modified"`
	Author       string   `yaml:"author"`
	Image        string   `yaml:"image"`
	Keywords     []string `yaml:"keywords"`
	Tags         []string `yaml:"tags"`
	Draft        bool     `yaml:"draft"`
}

// ResolveImage returns the absolute social image URL for a page. An empty
// image falls back to the site social card, an http(s) URL is returned
// unchanged, and anything else is treated as a site-relative path.
func ResolveImage(cfg site.Config, image string) string {
	image = strings.TrimSpace(image)
	switch {
	case image == "":
		return cfg.SocialCardURL()
	case isAbsoluteURL(image):
		return image
	default:
		return cfg.Abs(image)
	}
}

func isAbsoluteURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// ResolveKeywords returns the site keywords followed by the page keywords,
// comma separated. Page keywords are appended in order without
// deduplication; blank entries are skipped.
func ResolveKeywords(cfg site.Config, keywords []string) string {
	all := make([]string, 0, len(cfg.Keywords)+len(keywords))
	all = append(all, cfg.Keywords...)
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			all = append(all, k)
		}
	}
	return strings.Join(all, ", ")
}
