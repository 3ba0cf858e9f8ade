package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagesmith/pagesmith-cli/pkg/models"
)

func TestInitProjectStructure(t *testing.T) {
	root := t.TempDir()

	err := InitProjectStructure(root)
	if err != nil {
		t.Fatalf("InitProjectStructure failed: %v", err)
	}

	expectedDirs := []string{
		ProjectDir(root),
		filepath.Join(ProjectDir(root), ExportsDir),
	}
	for _, dir := range expectedDirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			t.Errorf("Expected directory %s does not exist", dir)
		}
	}

	assert.True(t, IsInitialized(root))
	assert.FileExists(t, filepath.Join(ProjectDir(root), SettingsFile))
}

func TestInitProjectStructure_KeepsExistingSettings(t *testing.T) {
	root := t.TempDir()
	custom := models.DefaultSettings()
	custom.Preview.Addr = ":9999"
	require.NoError(t, WriteSettings(root, custom))

	require.NoError(t, InitProjectStructure(root))

	got, err := ReadSettings(root)
	require.NoError(t, err)
	assert.Equal(t, ":9999", got.Preview.Addr)
}

func TestIsInitialized_Missing(t *testing.T) {
	assert.False(t, IsInitialized(t.TempDir()))
}

func TestReadSettings_MissingFileGivesDefaults(t *testing.T) {
	got, err := ReadSettings(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), got)
}

func TestReadSettings_PartialFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(ProjectDir(root), 0755))
	yamlContent := "storage:\n  driver: sqlite\nexport:\n  minify: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(ProjectDir(root), SettingsFile), []byte(yamlContent), 0644))

	got, err := ReadSettings(root)
	require.NoError(t, err)

	assert.Equal(t, models.StorageDriverSQLite, got.Storage.Driver)
	assert.Equal(t, "pagesmith.db", got.Storage.Path)
	assert.True(t, got.UI.ShowPreview)
	assert.True(t, got.Export.Minify)
	assert.Equal(t, "web-project.zip", got.Export.Filename)
	assert.Equal(t, "127.0.0.1:8080", got.Preview.Addr)
}

func TestReadSettings_Malformed(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(ProjectDir(root), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(ProjectDir(root), SettingsFile), []byte("storage: [oops"), 0644))

	_, err := ReadSettings(root)
	assert.Error(t, err)
}

func TestWriteReadSettings_RoundTrip(t *testing.T) {
	root := t.TempDir()
	s := models.DefaultSettings()
	s.UI.StartView = models.StartViewBuilder
	s.Log.Level = "debug"

	require.NoError(t, WriteSettings(root, s))
	got, err := ReadSettings(root)
	require.NoError(t, err)

	assert.Equal(t, s, got)
}

func TestReadUpload(t *testing.T) {
	dir := t.TempDir()

	small := filepath.Join(dir, "small.css")
	require.NoError(t, os.WriteFile(small, []byte("p{}"), 0644))
	content, err := ReadUpload(small)
	require.NoError(t, err)
	assert.Equal(t, "p{}", string(content))

	big := filepath.Join(dir, "big.bin")
	require.NoError(t, os.WriteFile(big, make([]byte, 4<<20), 0644))
	_, err = ReadUpload(big)
	assert.ErrorIs(t, err, models.ErrFileTooLarge)

	_, err = ReadUpload(dir)
	assert.Error(t, err)

	_, err = ReadUpload(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "page.html")

	require.NoError(t, WriteFile(path, []byte("<p/>")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p/>", string(got))
}
