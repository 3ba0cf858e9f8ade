package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagesmith/pagesmith-cli/pkg/models"
)

func TestCompose_DefaultProject(t *testing.T) {
	files := []models.File{
		{Name: "index.html", Content: "<h1>Hello</h1>\n<button id=\"b\">Go</button>"},
		{Name: "styles.css", Content: "body { color: green; }"},
		{Name: "script.js", Content: "console.log('hi');"},
	}

	out := Compose(files)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Live Preview</title>")
	assert.Contains(t, out, "<h1>Hello</h1>\n<button id=\"b\">Go</button>")
	assert.Equal(t, 1, strings.Count(out, "<style>"))
	assert.Contains(t, out, "<style>body { color: green; }</style>")
	assert.Equal(t, 1, strings.Count(out, "<script>"))
	assert.Contains(t, out, "<script>console.log('hi');</script>")
}

func TestCompose_MergesInIterationOrder(t *testing.T) {
	files := []models.File{
		{Name: "b.css", Content: "B"},
		{Name: "index.html", Content: "body"},
		{Name: "z.js", Content: "Z"},
		{Name: "a.css", Content: "A"},
		{Name: "a.js", Content: "Y"},
	}

	out := Compose(files)

	assert.Contains(t, out, "<style>B\nA</style>")
	assert.Contains(t, out, "<script>Z\nY</script>")
}

func TestCompose_IgnoresOtherMarkup(t *testing.T) {
	files := []models.File{
		{Name: "about.html", Content: "<p>about</p>"},
		{Name: "notes.txt", Content: "todo"},
	}

	out := Compose(files)

	assert.NotContains(t, out, "about")
	assert.NotContains(t, out, "todo")
	assert.Contains(t, out, "<style></style>")
	assert.Contains(t, out, "<script></script>")
}

func TestCompose_IsDeterministic(t *testing.T) {
	files := []models.File{
		{Name: "index.html", Content: "<main></main>"},
		{Name: "x.css", Content: "p{}"},
		{Name: "y.js", Content: "1"},
	}

	assert.Equal(t, Compose(files), Compose(files))
}

func TestCompose_BodyIsNotEscaped(t *testing.T) {
	files := []models.File{{Name: "index.html", Content: "<script>alert(1)</script>"}}

	assert.Contains(t, Compose(files), "<script>alert(1)</script>")
}

func TestSummarize(t *testing.T) {
	s := Summarize([]models.File{
		{Name: "index.html"},
		{Name: "a.css"},
		{Name: "b.css"},
		{Name: "c.js"},
	})

	assert.Equal(t, Summary{Stylesheets: 2, Scripts: 1, Markup: 1, HasBody: true}, s)
}

func TestMinify(t *testing.T) {
	doc := Compose([]models.File{
		{Name: "index.html", Content: "<p>\n    Hello\n</p>"},
		{Name: "styles.css", Content: "body {\n    color: #ff0000;\n}"},
		{Name: "script.js", Content: "var   x = 1;\n\nconsole.log( x );"},
	})

	out, err := Minify(doc)
	require.NoError(t, err)

	assert.Less(t, len(out), len(doc))
	assert.Contains(t, out, "Hello")
	assert.NotContains(t, out, "color: #ff0000")
	assert.NotContains(t, out, "\n    ")
}

func TestMinifyFile(t *testing.T) {
	css, err := MinifyFile("styles.css", "a {\n  margin: 0px;\n}\n")
	require.NoError(t, err)
	assert.Equal(t, "a{margin:0}", css)

	txt, err := MinifyFile("notes.txt", "  keep   me  ")
	require.NoError(t, err)
	assert.Equal(t, "  keep   me  ", txt)
}
