// Package redact turns secrets into representations that are safe to log.
//
// Every function here is pure and never fails: malformed input degrades to a
// fully opaque marker instead of leaking the original value.
package redact

import (
	"net/url"
	"strings"
)

const (
	// Mask replaces the hidden middle section of a secret.
	Mask = "****"
	// Opaque is returned for secrets too short to reveal any part of.
	Opaque = "****"
	// UnknownURL is returned when a URL cannot be parsed.
	UnknownURL = "https://***"

	// KeyParam is the query parameter carrying the API key in pooled mode.
	KeyParam = "key"

	minRevealLen = 8
)

// Key reveals the first 4 and last 4 characters of an API key.
func Key(secret string) string {
	return reveal(secret, 4, 4)
}

// Bearer reveals the first 6 and last 4 characters of a bearer token.
func Bearer(token string) string {
	return reveal(token, 6, 4)
}

func reveal(secret string, head, tail int) string {
	if len(secret) < minRevealLen {
		return Opaque
	}
	return secret[:head] + Mask + secret[len(secret)-tail:]
}

// KeyedURL masks only the value of the key query parameter and keeps the rest
// of the URL intact. The scan is textual so the URL does not need to parse.
func KeyedURL(raw string) string {
	needle := KeyParam + "="
	var b strings.Builder
	rest := raw
	for {
		idx := indexParam(rest, needle)
		if idx < 0 {
			b.WriteString(rest)
			return b.String()
		}
		start := idx + len(needle)
		b.WriteString(rest[:start])
		end := strings.IndexAny(rest[start:], "&#")
		value := rest[start:]
		if end >= 0 {
			value = rest[start : start+end]
		}
		b.WriteString(Key(value))
		rest = rest[start+len(value):]
	}
}

// indexParam finds needle only at a parameter boundary so "monkey=" is not
// mistaken for "key=".
func indexParam(s, needle string) int {
	offset := 0
	for {
		i := strings.Index(s[offset:], needle)
		if i < 0 {
			return -1
		}
		pos := offset + i
		if pos == 0 || s[pos-1] == '?' || s[pos-1] == '&' {
			return pos
		}
		offset = pos + len(needle)
	}
}

// ToDomain reduces any URL to scheme://host/***.
func ToDomain(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return UnknownURL
	}
	return u.Scheme + "://" + u.Host + "/***"
}
