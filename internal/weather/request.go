package weather

import (
	"net/url"
	"strings"
)

// BuildURL appends the city query and credential to endpoint. The city is
// percent-encoded (spaces as %20); the key is appended verbatim. It never
// fails: a nonsense city is left for the provider to reject.
func BuildURL(city, apiKey, endpoint string) string {
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
		if strings.HasSuffix(endpoint, "?") || strings.HasSuffix(endpoint, "&") {
			sep = ""
		}
	}

	q := strings.ReplaceAll(url.QueryEscape(city), "+", "%20")

	var b strings.Builder
	b.Grow(len(endpoint) + len(q) + len(apiKey) + 10)
	b.WriteString(endpoint)
	b.WriteString(sep)
	b.WriteString("q=")
	b.WriteString(q)
	b.WriteString("&appid=")
	b.WriteString(apiKey)
	return b.String()
}
