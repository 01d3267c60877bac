package localhake

import "embed"

// EmbeddedAssets contains the static assets shipped with the server:
// site.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
