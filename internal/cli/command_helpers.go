package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pagesmith/pagesmith-cli/internal/logging"
	"github.com/pagesmith/pagesmith-cli/pkg/files"
	"github.com/pagesmith/pagesmith-cli/pkg/models"
	"github.com/pagesmith/pagesmith-cli/pkg/storage"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

// CommandContext manages project validation and common command context
type CommandContext struct {
	Root     string
	Settings *models.Settings
	Logger   logging.Logger

	validated bool
	kv        storage.KV
}

// NewCommandContext creates a new command context for the project root set
// by the --project flag.
func NewCommandContext() *CommandContext {
	return &CommandContext{
		Root:   ProjectRoot(),
		Logger: logging.New(os.Stderr, "warn"),
	}
}

// ValidateProject ensures the project is initialized
func (c *CommandContext) ValidateProject() error {
	if c.validated {
		return nil
	}

	if !files.IsInitialized(c.Root) {
		return files.ErrNoProject
	}

	c.validated = true
	return nil
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	if c.Settings != nil {
		return c.Settings
	}

	settings, err := files.ReadSettings(c.Root)
	if err != nil {
		PrintWarning("Using default settings: %v", err)
		settings = models.DefaultSettings()
	}

	if ephemeral {
		settings.Storage.Driver = models.StorageDriverMemory
	}

	c.Settings = settings
	c.Logger = logging.New(os.Stderr, settings.Log.Level)
	return settings
}

// StoreLocation returns the path of the configured store.
func (c *CommandContext) StoreLocation() string {
	return storage.Location(c.LoadSettingsWithDefault(), files.ProjectDir(c.Root))
}

// OpenStore opens the configured store. Close releases it.
func (c *CommandContext) OpenStore(ctx context.Context) (storage.KV, error) {
	if c.kv != nil {
		return c.kv, nil
	}
	kv, err := storage.Open(ctx, c.LoadSettingsWithDefault(), files.ProjectDir(c.Root))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	c.kv = kv
	return kv, nil
}

// OpenWorkspace validates the project and loads its workspace.
func (c *CommandContext) OpenWorkspace(ctx context.Context) (*workspace.Workspace, error) {
	if err := c.ValidateProject(); err != nil {
		return nil, err
	}
	kv, err := c.OpenStore(ctx)
	if err != nil {
		return nil, err
	}
	return workspace.Load(ctx, kv, workspace.WithLogger(c.Logger)), nil
}

// Close releases the store, if one was opened.
func (c *CommandContext) Close() error {
	if c.kv == nil {
		return nil
	}
	err := c.kv.Close()
	c.kv = nil
	return err
}

// ResolveOutput returns path, or the configured export file name inside the
// project root when path is empty.
func (c *CommandContext) ResolveOutput(path string) string {
	if path == "" {
		path = c.LoadSettingsWithDefault().Export.Filename
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root, path)
}

// ReadInput reads path, or stdin when path is "-" or empty.
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// EditorLauncher handles all editor-related operations
type EditorLauncher struct {
	DefaultEditor string
}

// NewEditorLauncher creates a new editor launcher
func NewEditorLauncher() *EditorLauncher {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	return &EditorLauncher{
		DefaultEditor: editor,
	}
}

// Command returns the command that opens path in the editor.
func (e *EditorLauncher) Command(path string) *exec.Cmd {
	parts := strings.Fields(e.DefaultEditor)
	if len(parts) > 1 {
		return exec.Command(parts[0], append(parts[1:], path)...)
	}
	return exec.Command(e.DefaultEditor, path)
}

// OpenFile opens a file in the configured editor
func (e *EditorLauncher) OpenFile(path string) error {
	editorCmd := e.Command(path)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}

	return nil
}

// EditContent writes content to a temp file named after name, opens it in the
// editor and returns the edited content.
func (e *EditorLauncher) EditContent(name, content string) (string, error) {
	pattern := "pagesmith-*-" + filepath.Base(name)
	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmpFile.Name()
	defer os.Remove(path)

	if _, err := tmpFile.WriteString(content); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := e.OpenFile(path); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return string(edited), nil
}
