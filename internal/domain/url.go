package domain

import (
	"net/url"
	"strings"
)

// allowedHosts is the fixed allow-set of source URL hosts.
var allowedHosts = map[string]bool{
	"twitter.com":     true,
	"www.twitter.com": true,
	"x.com":           true,
	"www.x.com":       true,
}

// ValidSourceURL reports whether raw is an acceptable Twitter/X post URL.
// The host must match the allow-set exactly (case-insensitively); a
// substring check would accept hosts like notx.com.evil.com. Fails
// closed on any parse error.
func ValidSourceURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return allowedHosts[strings.ToLower(u.Hostname())]
}
