package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pagesmith/pagesmith-cli/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()
	dir := t.TempDir()

	ds, err := NewDirStore(filepath.Join(dir, "store"))
	require.NoError(t, err)

	sq, err := OpenSQLite(context.Background(), filepath.Join(dir, "db", "pagesmith.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })

	return map[string]KV{
		"dir":    ds,
		"sqlite": sq,
		"memory": NewMemStore(),
	}
}

func TestKV_GetMissingReturnsNil(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			v, err := kv.Get(context.Background(), KeyFiles)
			require.NoError(t, err)
			assert.Nil(t, v)
		})
	}
}

func TestKV_SetThenGet(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set(ctx, KeyFiles, []byte(`{"a.html":"x"}`)))
			require.NoError(t, kv.Set(ctx, KeyFiles, []byte(`{"b.html":"y"}`)))

			v, err := kv.Get(ctx, KeyFiles)
			require.NoError(t, err)
			assert.Equal(t, `{"b.html":"y"}`, string(v))

			other, err := kv.Get(ctx, KeyHidden)
			require.NoError(t, err)
			assert.Nil(t, other)
		})
	}
}

func TestKV_RejectsInvalidKeys(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "../escape", "a/b", `a\b`} {
				err := kv.Set(ctx, key, []byte("x"))
				assert.ErrorIs(t, err, ErrInvalidKey, key)
				_, err = kv.Get(ctx, key)
				assert.ErrorIs(t, err, ErrInvalidKey, key)
			}
		})
	}
}

func TestDirStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDirStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), KeyHidden, []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hiddenFiles.json", entries[0].Name())
}

func TestDirStore_CancelledContext(t *testing.T) {
	s, err := NewDirStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = s.Set(ctx, KeyFiles, []byte("{}"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pagesmith.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeyHidden, []byte(`["script.js"]`)))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Get(ctx, KeyHidden)
	require.NoError(t, err)
	assert.Equal(t, `["script.js"]`, string(v))
	assert.Equal(t, path, s.Path())
}

func TestMemStore_FailSet(t *testing.T) {
	s := NewMemStore()
	s.FailSet = errors.New("disk full")

	err := s.Set(context.Background(), KeyFiles, []byte("{}"))
	assert.EqualError(t, err, "disk full")
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name    string
		driver  string
		want    any
		wantErr error
	}{
		{"default file", "", &DirStore{}, nil},
		{"file", models.StorageDriverFile, &DirStore{}, nil},
		{"sqlite", models.StorageDriverSQLite, &SQLiteStore{}, nil},
		{"memory", "memory", &MemStore{}, nil},
		{"unknown", "redis", nil, ErrUnknownDriver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := models.DefaultSettings()
			settings.Storage.Driver = tt.driver
			settings.Storage.Path = ""

			kv, err := Open(ctx, settings, filepath.Join(dir, tt.name))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer kv.Close()
			assert.IsType(t, tt.want, kv)
		})
	}
}

func TestLocation(t *testing.T) {
	s := models.DefaultSettings()
	assert.Equal(t, filepath.Join("proj", "store"), Location(s, "proj"))

	s.Storage.Driver = models.StorageDriverSQLite
	s.Storage.Path = ""
	assert.Equal(t, filepath.Join("proj", "pagesmith.db"), Location(s, "proj"))

	abs := filepath.Join(t.TempDir(), "elsewhere")
	s.Storage.Path = abs
	assert.Equal(t, abs, Location(s, "proj"))
}
