package render

import (
	"bytes"
	"fmt"
	"html/template"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// BodyFormat selects how rich-text bodies are turned into HTML.
type BodyFormat string

const (
	BodyText     BodyFormat = "text"     // escaped, whitespace preserved
	BodyMarkdown BodyFormat = "markdown" // GitHub flavored markdown, raw HTML omitted
)

// Validate reports unknown formats.
func (f BodyFormat) Validate() error {
	switch f {
	case BodyText, BodyMarkdown:
		return nil
	}
	return fmt.Errorf("unknown body format %q", string(f))
}

var (
	markdownOnce     sync.Once
	markdownInstance goldmark.Markdown
)

// markdown returns the shared goldmark instance; it keeps no per-call state.
func markdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		)
	})
	return markdownInstance
}

// body renders a description or comment body according to the configured format.
func (r *Renderer) body(s string) template.HTML {
	if r.format != BodyMarkdown {
		return template.HTML(template.HTMLEscapeString(s)) // nolint:gosec
	}

	var buf bytes.Buffer
	if err := markdown().Convert([]byte(s), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(s)) // nolint:gosec
	}
	return template.HTML(`<div class="markdown">` + buf.String() + `</div>`) // nolint:gosec
}
