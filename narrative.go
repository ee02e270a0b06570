package readiness

import (
	"bytes"
	"html"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// narrativeRenderer abstracts free-text rendering for the report's
// strengths, gaps and recommendations sections.
type narrativeRenderer interface {
	Render(text string) template.HTML
}

// Compile-time interface check
var _ narrativeRenderer = (*goldmarkNarrative)(nil)

// goldmarkNarrative renders counselor free text as HTML. Basic
// Markdown (emphasis, lists, links) is supported; raw HTML in the
// input is escaped rather than passed through.
type goldmarkNarrative struct {
	md goldmark.Markdown
}

// newGoldmarkNarrative creates a renderer with GFM extensions.
func newGoldmarkNarrative() *goldmarkNarrative {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(), // Treat newlines as <br>
			gmhtml.WithXHTML(),     // Self-closing tags
			// Note: WithUnsafe() intentionally NOT used. Counselor text
			// arrives from the request body and must not inject markup.
		),
	)
	return &goldmarkNarrative{md: md}
}

// Render converts free text to an HTML fragment. On converter failure
// the text is returned escaped, so the builder never fails.
func (n *goldmarkNarrative) Render(text string) template.HTML {
	var buf bytes.Buffer
	if err := n.md.Convert([]byte(text), &buf); err != nil {
		return template.HTML("<p>" + html.EscapeString(text) + "</p>") // #nosec G203 -- content is escaped
	}
	return template.HTML(buf.String()) // #nosec G203 -- goldmark escapes raw HTML (no WithUnsafe)
}
