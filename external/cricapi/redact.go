package cricapi

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/valyala/bytebufferpool"
)

var apiKeyParamRegex = regexp.MustCompile(`(?i)apikey=[^&\s"]+`)

// redactSecret strips the api key from free text such as transport errors,
// which usually embed the full request URL.
func redactSecret(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "apikey=REDACTED")
}

func redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return apiKeyParamRegex.ReplaceAllString(rawURL, "apikey=REDACTED")
	}
	query := parsed.Query()
	if query.Has("apikey") {
		query.Set("apikey", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

// requestPreview renders a copy-pasteable curl line with the key redacted.
func requestPreview(method, rawURL string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart(method)
	appendPart(shellQuote(redactURL(rawURL)))
	appendPart("-H")
	appendPart(shellQuote("Accept: application/json"))
	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"
}
