package files

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pagesmith/pagesmith-cli/pkg/models"
	"gopkg.in/yaml.v3"
)

const (
	PagesmithDir  = ".pagesmith"
	SettingsFile  = "settings.yaml"
	LogFile       = "pagesmith.log"
	ExportsDir    = "exports"
	DefaultOutput = "web-project.zip"
)

// ErrNoProject is returned when the project directory has not been
// initialized.
var ErrNoProject = errors.New("no .pagesmith directory found. Run 'pagesmith init' first")

// ProjectDir returns the .pagesmith directory under root.
func ProjectDir(root string) string {
	return filepath.Join(root, PagesmithDir)
}

// LogPath returns the diagnostic log file of the project under root.
func LogPath(root string) string {
	return filepath.Join(ProjectDir(root), LogFile)
}

// IsInitialized reports whether root holds a .pagesmith directory.
func IsInitialized(root string) bool {
	info, err := os.Stat(ProjectDir(root))
	return err == nil && info.IsDir()
}

// InitProjectStructure creates the project directory and writes default
// settings unless a settings file already exists.
func InitProjectStructure(root string) error {
	dirs := []string{
		ProjectDir(root),
		filepath.Join(ProjectDir(root), ExportsDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if _, err := os.Stat(settingsPath(root)); os.IsNotExist(err) {
		return WriteSettings(root, models.DefaultSettings())
	}
	return nil
}

func settingsPath(root string) string {
	return filepath.Join(ProjectDir(root), SettingsFile)
}

// ReadSettings reads the project settings. A missing file yields the
// defaults; missing keys are filled with their defaults.
func ReadSettings(root string) (*models.Settings, error) {
	content, err := os.ReadFile(settingsPath(root))
	if os.IsNotExist(err) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	// ShowPreview defaults to true; other defaults are applied after decoding.
	settings := &models.Settings{UI: models.UISettings{ShowPreview: true}}
	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}
	settings.ApplyDefaults()

	return settings, nil
}

func WriteSettings(root string, settings *models.Settings) error {
	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	if err := os.MkdirAll(ProjectDir(root), 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	if err := os.WriteFile(settingsPath(root), content, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}

// ReadUpload reads a local file for import into the workspace. Files larger
// than models.MaxUploadSize are rejected before they are read.
func ReadUpload(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > models.MaxUploadSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", models.ErrFileTooLarge, filepath.Base(path), info.Size())
	}

	content, err := io.ReadAll(io.LimitReader(f, models.MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(content) > models.MaxUploadSize {
		return nil, fmt.Errorf("%w: %s", models.ErrFileTooLarge, filepath.Base(path))
	}
	return content, nil
}

// WriteFile writes content to a file outside the project directory, such as
// an exported document.
func WriteFile(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
