package utils

import (
	"math/rand"
	"net/url"
	"regexp"
	"strings"
)

const slugCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

const slugLength = 6

var (
	schemeRe     = regexp.MustCompile(`(?i)^https?://`)
	customSlugRe = regexp.MustCompile(`^[A-Za-z0-9-]{3,20}$`)
)

// NormalizeURL prepends https:// when no http(s) scheme is present and
// validates the result as an absolute URL. The returned string is what gets
// stored as the link target.
func NormalizeURL(raw string) (string, bool) {
	if !schemeRe.MatchString(raw) {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	return raw, true
}

// ValidateURL reports whether raw would be accepted by NormalizeURL.
func ValidateURL(raw string) bool {
	_, ok := NormalizeURL(raw)
	return ok
}

// ValidateCustomSlug checks a user-chosen slug after trimming whitespace:
// 3-20 characters, letters, digits and hyphens only.
func ValidateCustomSlug(slug string) bool {
	return customSlugRe.MatchString(strings.TrimSpace(slug))
}

// GenerateRandomSlug produces a 6-character lowercase alphanumeric code.
// Collision handling is the caller's job: insert, and regenerate on a
// unique-constraint violation.
func GenerateRandomSlug() string {
	b := make([]byte, slugLength)
	for i := range b {
		b[i] = slugCharset[rand.Intn(len(slugCharset))]
	}
	return string(b)
}

// Hostname extracts the lowercase hostname of a URL, or "" if it cannot be
// parsed.
func Hostname(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// IsSelfReferencing reports whether the URL targets one of this service's own
// hostnames, which would create a redirect loop.
func IsSelfReferencing(raw string, serviceHostnames []string) bool {
	host := Hostname(raw)
	if host == "" {
		return false
	}
	for _, h := range serviceHostnames {
		if host == h {
			return true
		}
	}
	return false
}
