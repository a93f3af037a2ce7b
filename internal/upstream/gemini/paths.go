package gemini

import (
	"net/url"
	"strings"
)

// BuildGenerateURL returns {base}/v1beta/models/{model}:generateContent?key={key}.
// The result embeds a secret and must only be logged through redact.KeyedURL.
func BuildGenerateURL(base, model, key string) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(base, "/"))
	sb.WriteString("/v1beta/models/")
	sb.WriteString(url.PathEscape(model))
	sb.WriteString(":generateContent?key=")
	sb.WriteString(url.QueryEscape(key))
	return sb.String()
}
