// Package convert turns plain text into HTML suitable for paragraph blocks.
package convert

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Paragraphs wraps text in a paragraph and turns every newline into a
// paragraph break. Text is not escaped.
func Paragraphs(text string) string {
	return "<p>" + strings.ReplaceAll(text, "\n", "</p><p>") + "</p>"
}

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// Markdown renders CommonMark with GitHub extensions. Raw HTML in the input
// is passed through.
func Markdown(text string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}
