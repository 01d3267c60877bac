// Package jsonld builds schema.org structured-data documents for pages.
//
// Documents are plain maps so optional properties can be left out entirely
// rather than serialized as null or "". Nested records use map[string]any and
// lists use []any, which keeps a Document equal to itself after a JSON round
// trip.
package jsonld

import (
	"encoding/json"

	"github.com/localhake/localhake/site"
)

// Document is one JSON-LD record.
type Document map[string]any

// Has reports whether key is present, regardless of its value.
func (d Document) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Type returns the document's @type.
func (d Document) Type() string {
	t, _ := d["@type"].(string)
	return t
}

// Marshal encodes d as JSON. encoding/json escapes <, > and &, so the output
// is safe to place inside a <script> element.
func (d Document) Marshal() ([]byte, error) {
	return json.Marshal(d)
}

// String returns the JSON encoding of d, or "{}" if it cannot be encoded.
func (d Document) String() string {
	b, err := d.Marshal()
	if err != nil {
		return "{}"
	}
	return string(b)
}

// PageInput is the page metadata a builder reads. It is supplied by the
// caller per page and never modified.
type PageInput struct {
	Title         string
	Description   string
	DatePublished string
	DateModified  string // defaults to DatePublished when empty
	AuthorName    string
	Image         string // absolute URL; omitted from output when empty
	URL           string // canonical page URL
}

// BlogPosting builds a BlogPosting document for a blog post. description is
// always present, even when empty; image only when in.Image is set.
func BlogPosting(cfg site.Config, in PageInput) Document {
	modified := in.DateModified
	if modified == "" {
		modified = in.DatePublished
	}
	data := Document{
		"@context":         site.SchemaContext,
		"@type":            "BlogPosting",
		"headline":         in.Title,
		"description":      in.Description,
		"datePublished":    in.DatePublished,
		"dateModified":     modified,
		"author":           person(in.AuthorName),
		"publisher":        publisher(cfg),
		"mainEntityOfPage": webPage(in.URL),
	}
	if in.Image != "" {
		data["image"] = in.Image
	}
	return data
}

// Article builds an Article document for a docs/wiki page. Unlike
// BlogPosting, description is omitted when empty.
func Article(cfg site.Config, in PageInput) Document {
	data := Document{
		"@context":         site.SchemaContext,
		"@type":            "Article",
		"headline":         in.Title,
		"publisher":        publisher(cfg),
		"mainEntityOfPage": webPage(in.URL),
	}
	if in.Description != "" {
		data["description"] = in.Description
	}
	return data
}

// Organization builds the site-wide Organization document. It depends only
// on cfg, so every page gets the same record.
func Organization(cfg site.Config) Document {
	sameAs := make([]any, len(cfg.SameAs))
	for i, s := range cfg.SameAs {
		sameAs[i] = s
	}
	return Document{
		"@context": site.SchemaContext,
		"@type":    "Organization",
		"name":     cfg.Name,
		"url":      cfg.URL,
		"logo":     cfg.LogoURL(),
		"sameAs":   sameAs,
	}
}

// SiteOrganization returns the Organization document for the LocalHake site.
// Each call builds a fresh map.
func SiteOrganization() Document {
	return Organization(site.Default())
}

func person(name string) map[string]any {
	return map[string]any{
		"@type": "Person",
		"name":  name,
	}
}

func publisher(cfg site.Config) map[string]any {
	return map[string]any{
		"@type": "Organization",
		"name":  cfg.Name,
		"logo": map[string]any{
			"@type": "ImageObject",
			"url":   cfg.LogoURL(),
		},
	}
}

func webPage(id string) map[string]any {
	return map[string]any{
		"@type": "WebPage",
		"@id":   id,
	}
}
