// Package preview composes a workspace into the single self-contained HTML
// document shown by the live preview.
package preview

import (
	"strings"

	"github.com/pagesmith/pagesmith-cli/pkg/models"
)

// BodyFile is the file whose content becomes the document body.
const BodyFile = "index.html"

// Title is the title of every composed document.
const Title = "Live Preview"

// Compose merges every stylesheet into one style block and every script into
// one script block, in iteration order, around the content of index.html.
// The body is embedded verbatim; nothing is escaped or sandboxed.
func Compose(files []models.File) string {
	var css, js []string
	body := ""

	for _, f := range files {
		switch models.RoleOf(f.Name) {
		case models.RoleStylesheet:
			css = append(css, f.Content)
		case models.RoleScript:
			js = append(js, f.Content)
		}
		if f.Name == BodyFile {
			body = f.Content
		}
	}

	var out strings.Builder
	out.WriteString("<!DOCTYPE html>\n")
	out.WriteString("<html lang=\"en\">\n")
	out.WriteString("<head>\n")
	out.WriteString("    <meta charset=\"UTF-8\">\n")
	out.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	out.WriteString("    <title>" + Title + "</title>\n")
	out.WriteString("    <style>" + strings.Join(css, "\n") + "</style>\n")
	out.WriteString("</head>\n")
	out.WriteString("<body>\n")
	out.WriteString(body)
	out.WriteString("\n    <script>" + strings.Join(js, "\n") + "</script>\n")
	out.WriteString("</body>\n")
	out.WriteString("</html>\n")

	return out.String()
}

// Summary counts the files feeding each part of the composed document.
type Summary struct {
	Stylesheets int  `json:"stylesheets" yaml:"stylesheets"`
	Scripts     int  `json:"scripts" yaml:"scripts"`
	Markup      int  `json:"markup" yaml:"markup"`
	HasBody     bool `json:"has_body" yaml:"has_body"`
}

// Summarize counts files per role and notes whether the body file exists.
func Summarize(files []models.File) Summary {
	var s Summary
	for _, f := range files {
		switch models.RoleOf(f.Name) {
		case models.RoleStylesheet:
			s.Stylesheets++
		case models.RoleScript:
			s.Scripts++
		default:
			s.Markup++
		}
		if f.Name == BodyFile {
			s.HasBody = true
		}
	}
	return s
}
