// ABOUTME: Markdown rendering for post content
// ABOUTME: Converts the body to HTML with goldmark; plain text passes through unchanged

package webui

import (
	"bytes"
	"html/template"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
)

// markdown converts post content to HTML. Post bodies are authored by
// the site owner in the admin console, so the output is trusted.
func (s *Server) markdown(content string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		s.logger.Error("failed to render markdown", "error", err)
		return template.HTML("<p>" + template.HTMLEscapeString(content) + "</p>")
	}
	return template.HTML(buf.String())
}

// excerptLength is how many runes of the body a list card shows.
const excerptLength = 160

// excerpt returns a plain-text preview of the post body for list cards.
func excerpt(content string) string {
	content = strings.Join(strings.Fields(content), " ")
	runes := []rune(content)
	if len(runes) <= excerptLength {
		return content
	}

	cut := excerptLength
	for cut > 0 && !unicode.IsSpace(runes[cut]) {
		cut--
	}
	if cut == 0 {
		cut = excerptLength
	}
	return strings.TrimSpace(string(runes[:cut])) + "…"
}
