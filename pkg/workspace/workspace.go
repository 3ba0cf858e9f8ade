// Package workspace holds the Document Model: an ordered set of named text
// files, the file open for editing, the names hidden from the file list, and
// the composed preview derived from all of them.
//
// A Workspace has a single owner. Every successful mutation is written to the
// backing store in full; write failures are logged and never returned, so
// editing continues in memory when the store is unavailable.
package workspace

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pagesmith/pagesmith-cli/internal/logging"
	"github.com/pagesmith/pagesmith-cli/pkg/models"
	"github.com/pagesmith/pagesmith-cli/pkg/preview"
	"github.com/pagesmith/pagesmith-cli/pkg/storage"
)

// File is one named text file of the workspace.
type File = models.File

const persistTimeout = 5 * time.Second

type Workspace struct {
	names   []string
	content map[string]string
	hidden  []string
	active  models.Selection
	preview string

	kv  storage.KV
	log logging.Logger
}

type Option func(*Workspace)

// WithLogger sets the logger used for persistence warnings.
func WithLogger(l logging.Logger) Option {
	return func(w *Workspace) {
		if l != nil {
			w.log = l
		}
	}
}

// New returns a workspace holding files, or the starter project when files is
// empty. Duplicate names keep their first position and last content. The
// workspace is not backed by a store until Load is used.
func New(files []File, opts ...Option) *Workspace {
	w := &Workspace{
		content: make(map[string]string),
		kv:      storage.NewMemStore(),
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if len(files) == 0 {
		files = DefaultFiles()
	}
	w.reset(files, nil)
	return w
}

// Load reads the workspace from kv. A missing, malformed or empty files value
// falls back to the starter project; hidden names that are not files are
// dropped. The active file is index.html when present, otherwise the first
// file.
func Load(ctx context.Context, kv storage.KV, opts ...Option) *Workspace {
	w := &Workspace{
		content: make(map[string]string),
		kv:      kv,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.kv == nil {
		w.kv = storage.NewMemStore()
	}
	w.log = w.log.With("component", "workspace")

	files := w.loadFiles(ctx)
	if len(files) == 0 {
		files = DefaultFiles()
	}
	w.reset(files, w.loadHidden(ctx))
	return w
}

func (w *Workspace) loadFiles(ctx context.Context) []File {
	data, err := w.kv.Get(ctx, storage.KeyFiles)
	if err != nil {
		w.log.Warn(ctx, "failed to load files, using starter project", "err", err)
		return nil
	}
	if data == nil {
		return nil
	}
	files, err := decodeFiles(data)
	if err != nil {
		w.log.Warn(ctx, "stored files are malformed, using starter project", "err", err)
		return nil
	}
	return files
}

func (w *Workspace) loadHidden(ctx context.Context) []string {
	data, err := w.kv.Get(ctx, storage.KeyHidden)
	if err != nil {
		w.log.Warn(ctx, "failed to load hidden files", "err", err)
		return nil
	}
	if data == nil {
		return nil
	}
	var hidden []string
	if err := json.Unmarshal(data, &hidden); err != nil {
		w.log.Warn(ctx, "stored hidden files are malformed, ignoring", "err", err)
		return nil
	}
	return hidden
}

func (w *Workspace) reset(files []File, hidden []string) {
	w.names = w.names[:0]
	w.content = make(map[string]string, len(files))
	for _, f := range files {
		if _, ok := w.content[f.Name]; !ok {
			w.names = append(w.names, f.Name)
		}
		w.content[f.Name] = f.Content
	}

	w.hidden = nil
	for _, name := range hidden {
		if _, ok := w.content[name]; ok && !w.isHidden(name) {
			w.hidden = append(w.hidden, name)
		}
	}

	if _, ok := w.content[preview.BodyFile]; ok {
		w.active = models.Select(preview.BodyFile)
	} else {
		w.active = models.Select(w.names[0])
	}
	w.recompose()
}

// Files returns every file in iteration order.
func (w *Workspace) Files() []File {
	files := make([]File, len(w.names))
	for i, name := range w.names {
		files[i] = File{Name: name, Content: w.content[name]}
	}
	return files
}

// VisibleFiles returns the files not in the hidden set, in iteration order.
func (w *Workspace) VisibleFiles() []File {
	var files []File
	for _, name := range w.names {
		if !w.isHidden(name) {
			files = append(files, File{Name: name, Content: w.content[name]})
		}
	}
	return files
}

// HiddenFiles returns the hidden names in the order they were hidden.
func (w *Workspace) HiddenFiles() []string {
	return append([]string(nil), w.hidden...)
}

// IsHidden reports whether name is in the hidden set.
func (w *Workspace) IsHidden(name string) bool {
	return w.isHidden(name)
}

// Active returns the name of the file open for editing. It always names an
// existing file.
func (w *Workspace) Active() string {
	return w.active.String()
}

// Content returns the content of name and whether it exists.
func (w *Workspace) Content(name string) (string, bool) {
	c, ok := w.content[name]
	return c, ok
}

func (w *Workspace) Has(name string) bool {
	_, ok := w.content[name]
	return ok
}

func (w *Workspace) Len() int {
	return len(w.names)
}

// Preview returns the composed document for the current files.
func (w *Workspace) Preview() string {
	return w.preview
}

func (w *Workspace) isHidden(name string) bool {
	for _, h := range w.hidden {
		if h == name {
			return true
		}
	}
	return false
}

func (w *Workspace) indexOf(name string) int {
	for i, n := range w.names {
		if n == name {
			return i
		}
	}
	return -1
}

func (w *Workspace) recompose() {
	w.preview = preview.Compose(w.Files())
}

// persist writes the full state. Failures are logged only.
func (w *Workspace) persist() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	files, err := encodeFiles(w.Files())
	if err != nil {
		w.log.Warn(ctx, "failed to encode files", "err", err)
	} else if err := w.kv.Set(ctx, storage.KeyFiles, files); err != nil {
		w.log.Warn(ctx, "failed to persist files", "key", storage.KeyFiles, "err", err)
	}

	hidden := w.hidden
	if hidden == nil {
		hidden = []string{}
	}
	data, err := json.Marshal(hidden)
	if err != nil {
		w.log.Warn(ctx, "failed to encode hidden files", "err", err)
		return
	}
	if err := w.kv.Set(ctx, storage.KeyHidden, data); err != nil {
		w.log.Warn(ctx, "failed to persist hidden files", "key", storage.KeyHidden, "err", err)
	}
}
