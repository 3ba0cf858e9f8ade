package canvas

import (
	"html"
	"strings"

	"github.com/pagesmith/pagesmith-cli/pkg/models"
)

// RenderHTML renders the canvas as a standalone page. Text blocks are emitted
// verbatim and image blocks as img elements.
func (c *Canvas) RenderHTML() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("    <meta charset=\"UTF-8\">\n")
	b.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	b.WriteString("    <title>Page</title>\n")
	b.WriteString("</head>\n<body>\n")
	for _, blk := range c.blocks {
		b.WriteString(RenderBlock(blk))
		b.WriteString("\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// RenderBlock renders one block as an HTML fragment.
func RenderBlock(blk models.Block) string {
	raw := ""
	if blk.Content != nil {
		raw = blk.Content.Raw()
	}
	var inner string
	switch blk.Content.(type) {
	case models.ImageRef:
		inner = `<img src="` + html.EscapeString(raw) + `" alt="Uploaded content">`
	default:
		inner = raw
	}
	return `<div class="block block-` + string(blk.Type) + `" id="` + html.EscapeString(blk.ID) + `">` + inner + `</div>`
}
