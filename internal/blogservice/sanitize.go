package blogservice

import "regexp"

var (
	scriptTagPattern     = regexp.MustCompile(`(?i)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)
	eventHandlerPattern  = regexp.MustCompile(`(?i)\son[a-z]+\s*=\s*("[^"]*"|'[^']*')`)
	javascriptURLPattern = regexp.MustCompile(`(?i)(href|src)\s*=\s*("javascript:[^"]*"|'javascript:[^']*')`)
)

// sanitizeMarkdown strips the HTML vectors that survive within Markdown:
// script tags, inline event handlers and javascript: URLs.
func sanitizeMarkdown(markdown string) string {
	out := scriptTagPattern.ReplaceAllString(markdown, "")
	out = eventHandlerPattern.ReplaceAllString(out, "")
	out = javascriptURLPattern.ReplaceAllString(out, "")
	return out
}
