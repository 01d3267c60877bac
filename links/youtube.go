package links

import (
	"net/url"
	"regexp"
	"strings"
)

const shortHost = "youtu.be"

var (
	youtubeHosts = map[string]bool{
		"youtube.com":     true,
		"www.youtube.com": true,
		"m.youtube.com":   true,
	}
	shortHosts = map[string]bool{
		shortHost:         true,
		"www." + shortHost: true,
	}
	reVideoID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// ParseYouTube extracts the video ID from a YouTube watch, embed, legacy /v/
// or youtu.be short link.
func ParseYouTube(raw string) Result {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fail(ReasonEmpty)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fail(ReasonMalformed)
	}

	host := strings.ToLower(u.Hostname())
	var id string
	switch {
	case shortHosts[host]:
		id = firstSegment(u.Path)
	case youtubeHosts[host]:
		switch {
		case u.Path == "/watch" || u.Path == "/watch/":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"):
			id = firstSegment(strings.TrimPrefix(u.Path, "/embed"))
		case strings.HasPrefix(u.Path, "/v/"):
			id = firstSegment(strings.TrimPrefix(u.Path, "/v"))
		}
	default:
		return fail(ReasonUnsupportedHost)
	}

	id = stripTrailer(id)
	if id == "" {
		return fail(ReasonNoIdentifier)
	}
	if !reVideoID.MatchString(id) {
		return fail(ReasonInvalidIdentifier)
	}
	return ok(id)
}

// YouTubeEmbedURL returns the privacy-enhanced embed URL for a video ID
// produced by ParseYouTube.
func YouTubeEmbedURL(id string) string {
	return "https://www.youtube-nocookie.com/embed/" + url.PathEscape(id)
}

func firstSegment(p string) string {
	p = strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	return p
}

// stripTrailer drops a query or fragment that ended up inside the captured
// identifier, e.g. from an escaped "?" in a path.
func stripTrailer(id string) string {
	if i := strings.IndexAny(id, "?&#"); i >= 0 {
		id = id[:i]
	}
	return id
}
