package links

import (
	"net/url"
	"strings"
)

// amazonShortHost is Amazon's link shortener used by the affiliate program.
const amazonShortHost = "amzn.to"

// amazonTLDs lists the regional storefronts accepted for affiliate links.
var amazonTLDs = []string{
	"com", "ca", "com.mx", "com.br",
	"co.uk", "de", "fr", "it", "es", "nl", "se", "pl", "com.be", "ie", "com.tr",
	"ae", "sa", "eg", "in",
	"co.jp", "sg", "com.au",
}

var amazonHosts = buildAmazonHosts()

func buildAmazonHosts() map[string]bool {
	hosts := map[string]bool{amazonShortHost: true}
	for _, tld := range amazonTLDs {
		for _, prefix := range []string{"", "www.", "smile."} {
			hosts[prefix+"amazon."+tld] = true
		}
	}
	return hosts
}

// ParseAmazon checks that raw points at an Amazon storefront or amzn.to. On
// success Value is the trimmed input, byte for byte, so affiliate tracking
// parameters survive untouched.
func ParseAmazon(raw string) Result {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fail(ReasonEmpty)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return fail(ReasonMalformed)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return fail(ReasonMalformed)
	}
	if !amazonHosts[strings.ToLower(u.Hostname())] {
		return fail(ReasonUnsupportedHost)
	}
	return ok(raw)
}
