// Package site holds the fixed identity of the LocalHake site: canonical URL,
// organization details, default social card and keywords.
package site

import "strings"

// SchemaContext is the JSON-LD @context used by every structured-data document.
const SchemaContext = "https://schema.org"

// Config is the site identity passed to builders and mappers. It is a value
// type; obtain one with Default and pass it by value.
type Config struct {
	Name        string   // Organization and site name
	URL         string   // Canonical site URL, no trailing slash
	Description string   // Site description for feeds and the home page
	Author      string   // Default author when a page names none
	LogoPath    string   // Site-relative path of the publisher logo
	SocialCard  string   // Site-relative path of the default social card
	Keywords    []string // Site-wide keywords, always emitted first
	SameAs      []string // External profiles of the organization
}

var defaults = Config{
	Name:        "LocalHake",
	URL:         "https://localhake.com",
	Description: "Homelab guides, self-hosting walkthroughs and tech notes.",
	Author:      "Hake",
	LogoPath:    "/img/logo.png",
	SocialCard:  "/img/localhake-social-card.png",
	Keywords: []string{
		"homelab",
		"self-hosting",
		"docker",
		"proxmox",
		"linux",
		"networking",
	},
	SameAs: []string{
		"https://www.youtube.com/@LocalHake",
		"https://github.com/localhake",
	},
}

// Default returns the LocalHake site identity. Each call returns an
// independent copy, so callers can never change what other callers see.
func Default() Config {
	c := defaults
	c.Keywords = append([]string(nil), defaults.Keywords...)
	c.SameAs = append([]string(nil), defaults.SameAs...)
	return c
}

// Abs joins a site-relative path onto the site URL with exactly one slash
// between them.
func (c Config) Abs(path string) string {
	base := strings.TrimRight(c.URL, "/")
	if path == "" {
		return base
	}
	return base + "/" + strings.TrimLeft(path, "/")
}

// LogoURL returns the absolute URL of the publisher logo.
func (c Config) LogoURL() string {
	return c.Abs(c.LogoPath)
}

// SocialCardURL returns the absolute URL of the default social card image.
func (c Config) SocialCardURL() string {
	return c.Abs(c.SocialCard)
}
