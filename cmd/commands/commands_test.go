package commands

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagesmith/pagesmith-cli/internal/cli"
	"github.com/pagesmith/pagesmith-cli/pkg/export"
	"github.com/pagesmith/pagesmith-cli/pkg/files"
	"github.com/pagesmith/pagesmith-cli/pkg/models"
	"github.com/pagesmith/pagesmith-cli/pkg/preview"
	"github.com/pagesmith/pagesmith-cli/pkg/storage"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

// setupProject initializes a project in a temp dir and points the commands
// at it.
func setupProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, files.InitProjectStructure(root))

	cli.SetProjectRoot(root)
	cli.SetGlobalFlags(true, true, true)
	cli.SetEphemeral(false)
	t.Cleanup(func() {
		cli.SetProjectRoot(".")
		cli.SetGlobalFlags(false, false, false)
	})
	return root
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	if cmd.Flags().Lookup("output") == nil {
		cmd.Flags().StringP("output", "o", "text", "Output format")
	}
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func loadWorkspace(t *testing.T, root string) *workspace.Workspace {
	t.Helper()
	settings, err := files.ReadSettings(root)
	require.NoError(t, err)
	kv, err := storage.Open(context.Background(), settings, files.ProjectDir(root))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return workspace.Load(context.Background(), kv)
}

func names(fs []models.File) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Name)
	}
	return out
}

func TestCommands_RequireProject(t *testing.T) {
	cli.SetProjectRoot(t.TempDir())
	defer cli.SetProjectRoot(".")

	_, err := execute(t, NewListCommand())
	assert.ErrorIs(t, err, files.ErrNoProject)
}

func TestListCommand(t *testing.T) {
	root := setupProject(t)

	out, err := execute(t, NewListCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "index.html")
	assert.Contains(t, out, "styles.css")
	assert.Contains(t, out, "script.js")

	ws := loadWorkspace(t, root)
	require.NoError(t, ws.HideFile("script.js"))

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"visible only", []string{"-o", "json"}, []string{"index.html", "styles.css"}},
		{"all", []string{"--all", "-o", "json"}, []string{"index.html", "styles.css", "script.js"}},
		{"hidden only", []string{"--hidden", "-o", "json"}, []string{"script.js"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewListCommand(), tt.args...)
			require.NoError(t, err)

			var entries []FileEntry
			require.NoError(t, json.Unmarshal([]byte(out), &entries))
			var got []string
			for _, e := range entries {
				got = append(got, e.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = execute(t, NewListCommand(), "-o", "xml")
	assert.Error(t, err)
}

func TestAddRenameDelete(t *testing.T) {
	root := setupProject(t)

	_, err := execute(t, NewAddCommand(), "about.html", "--content", "<p>About</p>")
	require.NoError(t, err)

	_, err = execute(t, NewAddCommand(), "about.html")
	assert.ErrorIs(t, err, models.ErrFileExists)

	_, err = execute(t, NewAddCommand(), "../evil.html")
	assert.Error(t, err)

	_, err = execute(t, NewRenameCommand(), "about.html", "team.html")
	require.NoError(t, err)

	ws := loadWorkspace(t, root)
	assert.Equal(t, []string{"index.html", "styles.css", "script.js", "team.html"}, names(ws.Files()))
	content, ok := ws.Content("team.html")
	require.True(t, ok)
	assert.Equal(t, "<p>About</p>", content)

	_, err = execute(t, NewDeleteCommand(), "team.html", "--force")
	require.NoError(t, err)
	_, err = execute(t, NewDeleteCommand(), "missing.html", "--force")
	assert.ErrorIs(t, err, models.ErrNotFound)

	ws = loadWorkspace(t, root)
	assert.False(t, ws.Has("team.html"))
}

func TestHideUnhideCommands(t *testing.T) {
	root := setupProject(t)

	_, err := execute(t, NewHideCommand(), "styles.css", "script.js")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"styles.css", "script.js"}, loadWorkspace(t, root).HiddenFiles())

	_, err = execute(t, NewUnhideCommand(), "script.js")
	require.NoError(t, err)
	assert.Equal(t, []string{"styles.css"}, loadWorkspace(t, root).HiddenFiles())

	_, err = execute(t, NewHideCommand(), "index.html", "missing.js")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorContains(t, err, "missing.js")
	assert.Equal(t, []string{"styles.css"}, loadWorkspace(t, root).HiddenFiles())

	_, err = execute(t, NewUnhideCommand(), "styles.css", "missing.js")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, []string{"styles.css"}, loadWorkspace(t, root).HiddenFiles())
}

func TestShowCommand(t *testing.T) {
	setupProject(t)

	out, err := execute(t, NewShowCommand(), "script.js")
	require.NoError(t, err)
	assert.Contains(t, out, "my-button")

	out, err = execute(t, NewShowCommand(), "styles.css", "-o", "json")
	require.NoError(t, err)
	var f models.File
	require.NoError(t, json.Unmarshal([]byte(out), &f))
	assert.Equal(t, "styles.css", f.Name)

	_, err = execute(t, NewShowCommand(), "nope.js")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUploadCommand(t *testing.T) {
	root := setupProject(t)
	src := filepath.Join(t.TempDir(), "theme.css")
	require.NoError(t, os.WriteFile(src, []byte("a { color: red; }"), 0644))

	_, err := execute(t, NewUploadCommand(), src)
	require.NoError(t, err)
	_, err = execute(t, NewUploadCommand(), src, "--name", "styles.css")
	require.NoError(t, err)

	ws := loadWorkspace(t, root)
	content, _ := ws.Content("theme.css")
	assert.Equal(t, "a { color: red; }", content)
	content, _ = ws.Content("styles.css")
	assert.Equal(t, "a { color: red; }", content)
	assert.Equal(t, 4, ws.Len())

	big := filepath.Join(t.TempDir(), "big.txt")
	require.NoError(t, os.WriteFile(big, bytes.Repeat([]byte("x"), models.MaxUploadSize+1), 0644))
	_, err = execute(t, NewUploadCommand(), big)
	assert.ErrorIs(t, err, models.ErrFileTooLarge)
}

func TestExportAndExtract(t *testing.T) {
	root := setupProject(t)

	_, err := execute(t, NewExportCommand(), "--file", "site.zip")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "site.zip"))
	require.NoError(t, err)
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var entries []string
	for _, f := range r.File {
		entries = append(entries, f.Name)
	}
	assert.ElementsMatch(t, []string{"index.html", "styles.css", "script.js"}, entries)

	// a second project imports the archive
	other := setupProject(t)
	_, err = execute(t, NewDeleteCommand(), "script.js", "--force")
	require.NoError(t, err)
	_, err = execute(t, NewUploadCommand(), filepath.Join(root, "site.zip"), "--extract")
	require.NoError(t, err)

	archived, err := export.ReadZip(data)
	require.NoError(t, err)
	ws := loadWorkspace(t, other)
	for _, f := range archived {
		content, ok := ws.Content(f.Name)
		require.True(t, ok, f.Name)
		assert.Equal(t, f.Content, content)
	}
}

func TestPreviewCommand(t *testing.T) {
	root := setupProject(t)

	out, err := execute(t, NewPreviewCommand())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "background-color: #f0fdf4")
	assert.Contains(t, out, "Button clicked!")

	_, err = execute(t, NewPreviewCommand(), "--file", filepath.Join(root, "preview.html"))
	require.NoError(t, err)
	written, err := os.ReadFile(filepath.Join(root, "preview.html"))
	require.NoError(t, err)
	assert.Equal(t, out, string(written))
}

func TestPreviewCommand_Summary(t *testing.T) {
	setupProject(t)

	out, err := execute(t, NewPreviewCommand(), "--summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Stylesheets: 1")
	assert.Contains(t, out, "Body:        index.html")

	out, err = execute(t, NewPreviewCommand(), "--summary", "-o", "json")
	require.NoError(t, err)
	var s preview.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, preview.Summary{Stylesheets: 1, Scripts: 1, Markup: 1, HasBody: true}, s)
}

func TestWatchTarget(t *testing.T) {
	dir := t.TempDir()

	dirStore, err := storage.NewDirStore(filepath.Join(dir, "store"))
	require.NoError(t, err)
	gotDir, gotFile := watchTarget(dirStore)
	assert.Equal(t, filepath.Join(dir, "store"), gotDir)
	assert.Empty(t, gotFile)

	db, err := storage.OpenSQLite(context.Background(), filepath.Join(dir, "pagesmith.db"))
	require.NoError(t, err)
	defer db.Close()
	gotDir, gotFile = watchTarget(db)
	assert.Equal(t, dir, gotDir)
	assert.Equal(t, "pagesmith.db", gotFile)

	gotDir, gotFile = watchTarget(storage.NewMemStore())
	assert.Empty(t, gotDir)
	assert.Empty(t, gotFile)
}

func TestDiffCommand(t *testing.T) {
	setupProject(t)
	local := filepath.Join(t.TempDir(), "script.js")
	require.NoError(t, os.WriteFile(local, []byte("console.log('hi');\n"), 0644))

	out, err := execute(t, NewDiffCommand(), "script.js", local)
	require.NoError(t, err)
	assert.Contains(t, out, "+console.log('hi');")
	assert.Contains(t, out, "-});")

	out, err = execute(t, NewDiffCommand(), "script.js", local, "--stat")
	require.NoError(t, err)
	assert.Contains(t, out, "script.js: +1 -10")
}

func TestConvertCommand(t *testing.T) {
	root := setupProject(t)
	src := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("first\nsecond\n"), 0644))

	out, err := execute(t, NewConvertCommand(), src)
	require.NoError(t, err)
	assert.Equal(t, "<p>first</p><p>second</p>\n", out)

	md := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(md, []byte("# Title\n"), 0644))
	_, err = execute(t, NewConvertCommand(), md, "--markdown", "--into", "notes.html")
	require.NoError(t, err)

	content, ok := loadWorkspace(t, root).Content("notes.html")
	require.True(t, ok)
	assert.Contains(t, content, "<h1>Title</h1>")
}

func TestEditCommand_FromInput(t *testing.T) {
	root := setupProject(t)
	src := filepath.Join(t.TempDir(), "new.js")
	require.NoError(t, os.WriteFile(src, []byte("alert(1);"), 0644))

	_, err := execute(t, NewEditCommand(), "script.js", "--from", src)
	require.NoError(t, err)

	content, _ := loadWorkspace(t, root).Content("script.js")
	assert.Equal(t, "alert(1);", content)
}

func TestConfigCommand(t *testing.T) {
	root := setupProject(t)

	_, err := execute(t, NewConfigCommand(), "set", "preview.addr", "127.0.0.1:9000")
	require.NoError(t, err)
	_, err = execute(t, NewConfigCommand(), "set", "storage.driver", "sqlite")
	require.NoError(t, err)

	out, err := execute(t, NewConfigCommand(), "get", "preview.addr")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000\n", out)

	settings, err := files.ReadSettings(root)
	require.NoError(t, err)
	assert.Equal(t, models.StorageDriverSQLite, settings.Storage.Driver)
	assert.Equal(t, "pagesmith.db", settings.Storage.Path)

	out, err = execute(t, NewConfigCommand(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "preview.addr")
	assert.Contains(t, out, "Store: "+filepath.Join(root, files.PagesmithDir, "pagesmith.db"))

	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"get", "nope"}},
		{"bad bool", []string{"set", "preview.minify", "maybe"}},
		{"bad driver", []string{"set", "storage.driver", "postgres"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, NewConfigCommand(), tt.args...)
			assert.Error(t, err)
		})
	}

	// commands now run against the sqlite store
	_, err = execute(t, NewAddCommand(), "db.html")
	require.NoError(t, err)
	assert.True(t, loadWorkspace(t, root).Has("db.html"))
	assert.FileExists(t, filepath.Join(files.ProjectDir(root), "pagesmith.db"))
}

func TestSearchCommand(t *testing.T) {
	setupProject(t)

	out, err := execute(t, NewSearchCommand(), "role:css", "background-color")
	require.NoError(t, err)
	assert.Contains(t, out, "styles.css  [stylesheet]")
	assert.NotContains(t, out, "index.html")

	out, err = execute(t, NewSearchCommand(), "my-button", "-o", "json")
	require.NoError(t, err)
	var res SearchResultOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 3, res.Count)

	_, err = execute(t, NewSearchCommand(), "tag:nope")
	assert.Error(t, err)
}

func TestExamplesCommand(t *testing.T) {
	root := setupProject(t)

	out, err := execute(t, NewExamplesCommand(), "layout", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "landing.html")
	assert.NotContains(t, out, "card.html")

	_, err = execute(t, NewExamplesCommand(), "widgets")
	assert.ErrorContains(t, err, "invalid category")

	_, err = execute(t, NewExamplesCommand(), "layout")
	require.NoError(t, err)
	ws := loadWorkspace(t, root)
	assert.Subset(t, names(ws.Files()), []string{"landing.html", "landing.css", "sidebar.html", "sidebar.css"})
	require.NoError(t, ws.EditFile("landing.css", "/* mine */"))

	_, err = execute(t, NewExamplesCommand(), "layout")
	require.NoError(t, err)
	got, _ := loadWorkspace(t, root).Content("landing.css")
	assert.Equal(t, "/* mine */", got)

	_, err = execute(t, NewExamplesCommand(), "layout", "--force")
	require.NoError(t, err)
	got, _ = loadWorkspace(t, root).Content("landing.css")
	assert.Contains(t, got, ".hero")
}

func TestBlocksCommand(t *testing.T) {
	root := setupProject(t)

	out, err := execute(t, NewBlocksCommand())
	require.NoError(t, err)
	for _, bt := range models.BlockTypes() {
		assert.Contains(t, out, string(bt))
	}

	out, err = execute(t, NewBlocksCommand(), "Heading", "image")
	require.NoError(t, err)
	assert.Contains(t, out, `<div class="block block-heading" id="heading-1"><h2>New Heading</h2></div>`)
	assert.Contains(t, out, `id="image-2"`)

	out, err = execute(t, NewBlocksCommand(), "--sample", "footer", "-o", "json")
	require.NoError(t, err)
	var blocks []struct {
		ID      string `json:"id"`
		Type    string `json:"type"`
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &blocks))
	require.Len(t, blocks, 4)
	assert.Equal(t, "header-0", blocks[0].ID)
	assert.Equal(t, "footer-1", blocks[3].ID)

	_, err = execute(t, NewBlocksCommand(), "video")
	assert.ErrorIs(t, err, models.ErrUnknownBlockType)

	_, err = execute(t, NewBlocksCommand(), "header", "--into", "page.html")
	require.NoError(t, err)
	page, ok := loadWorkspace(t, root).Content("page.html")
	require.True(t, ok)
	assert.Contains(t, page, "<h1>Your Company Name</h1>")
}

func TestImportEntries_CountsStoredFiles(t *testing.T) {
	ws := workspace.New(nil)

	imported, err := importEntries(ws, []models.File{
		{Name: "a.css", Content: "a{}"},
		{Name: "../escape.js", Content: "alert(1)"},
		{Name: "/etc/passwd", Content: "root"},
		{Name: "b.js", Content: "b()"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, imported)
	assert.True(t, ws.Has("a.css"))
	assert.True(t, ws.Has("b.js"))
	assert.False(t, ws.Has("../escape.js"))

	imported, err = importEntries(ws, []models.File{
		{Name: "c.css", Content: "c{}"},
		{Name: "huge.js", Content: strings.Repeat("x", models.MaxUploadSize+1)},
	})
	assert.ErrorIs(t, err, models.ErrFileTooLarge)
	assert.Equal(t, 1, imported)
}
