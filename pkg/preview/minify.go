package preview

import (
	"fmt"
	"regexp"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/json"
	"github.com/tdewolff/minify/v2/svg"

	"github.com/pagesmith/pagesmith-cli/pkg/models"
)

// NewMinifier returns a minifier for every media type a workspace file can
// have.
func NewMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	m.AddFuncRegexp(regexp.MustCompile("[/+]json$"), json.Minify)
	return m
}

var minifier = NewMinifier()

// Minify minifies a composed document including its inline style and script.
func Minify(doc string) (string, error) {
	out, err := minifier.String("text/html", doc)
	if err != nil {
		return "", fmt.Errorf("failed to minify document: %w", err)
	}
	return out, nil
}

// MinifyFile minifies one workspace file according to its role. Files with no
// registered minifier are returned unchanged.
func MinifyFile(name, content string) (string, error) {
	mediaType := models.RoleOf(name).MediaType(name)
	if mediaType == "text/plain" {
		return content, nil
	}
	out, err := minifier.String(mediaType, content)
	if err != nil {
		return "", fmt.Errorf("failed to minify %s: %w", name, err)
	}
	return out, nil
}
