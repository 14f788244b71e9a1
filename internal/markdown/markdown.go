// Package markdown renders comment descriptions to HTML
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown source to HTML
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a GitHub-flavoured renderer. Raw HTML is passed
// through because style guide descriptions routinely embed markup.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &Renderer{md: md}
}

// Render converts src to HTML with surrounding newlines removed
func (r *Renderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return strings.Trim(buf.String(), "\r\n"), nil
}

// Func adapts the renderer to a plain function
func (r *Renderer) Func() func(string) (string, error) {
	return r.Render
}
