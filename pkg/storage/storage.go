// Package storage persists workspace state as opaque values under string
// keys. Backends are interchangeable: a directory of JSON files, a SQLite
// database, or memory.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pagesmith/pagesmith-cli/pkg/models"
)

// Keys used by the workspace.
const (
	KeyFiles  = "files"
	KeyHidden = "hiddenFiles"
)

var (
	ErrInvalidKey    = errors.New("invalid storage key")
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// KV is a durable key-value store. Get returns (nil, nil) when the key has
// never been written.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open returns the backend selected by settings. Relative storage paths are
// resolved against projectDir.
func Open(ctx context.Context, settings *models.Settings, projectDir string) (KV, error) {
	if settings == nil {
		settings = models.DefaultSettings()
	}
	path := Location(settings, projectDir)

	switch settings.Storage.Driver {
	case models.StorageDriverFile, "":
		return NewDirStore(path)
	case models.StorageDriverSQLite:
		return OpenSQLite(ctx, path)
	case models.StorageDriverMemory:
		return NewMemStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, settings.Storage.Driver)
	}
}

// Location returns the absolute or project-relative path of the store.
func Location(settings *models.Settings, projectDir string) string {
	path := settings.Storage.Path
	if path == "" {
		s := *settings
		s.ApplyDefaults()
		path = s.Storage.Path
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(projectDir, path)
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
