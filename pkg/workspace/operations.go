package workspace

import (
	"fmt"
	"strings"

	"github.com/pagesmith/pagesmith-cli/pkg/models"
)

// AddFile creates a file and makes it active. The name is trimmed.
func (w *Workspace) AddFile(name, content string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ErrEmptyName
	}
	if w.Has(name) {
		return fmt.Errorf("%w: %s", models.ErrFileExists, name)
	}

	w.names = append(w.names, name)
	w.content[name] = content
	w.active = models.Select(name)

	w.recompose()
	w.persist()
	return nil
}

// UploadFile stores an imported file and makes it active. Content larger
// than models.MaxUploadSize is rejected. An existing file of the same name is
// overwritten in place.
func (w *Workspace) UploadFile(name string, content []byte) error {
	if len(content) > models.MaxUploadSize {
		return fmt.Errorf("%w: %s is %d bytes", models.ErrFileTooLarge, name, len(content))
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ErrEmptyName
	}

	if !w.Has(name) {
		w.names = append(w.names, name)
	}
	w.content[name] = string(content)
	w.active = models.Select(name)

	w.recompose()
	w.persist()
	return nil
}

// DeleteFile removes a file. The last remaining file cannot be deleted. When
// the active file is removed the first remaining file becomes active.
func (w *Workspace) DeleteFile(name string) error {
	i := w.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", models.ErrNotFound, name)
	}
	if len(w.names) == 1 {
		return models.ErrLastFile
	}

	w.names = append(w.names[:i], w.names[i+1:]...)
	delete(w.content, name)
	w.unhide(name)
	if w.active.Is(name) {
		w.active = models.Select(w.names[0])
	}

	w.recompose()
	w.persist()
	return nil
}

// RenameFile moves content to a new name in one step. The file keeps its
// position, hidden state and active state. The new name is trimmed.
func (w *Workspace) RenameFile(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return models.ErrEmptyName
	}
	i := w.indexOf(oldName)
	if i < 0 {
		return fmt.Errorf("%w: %s", models.ErrNotFound, oldName)
	}
	if newName == oldName {
		return nil
	}
	if w.Has(newName) {
		return fmt.Errorf("%w: %s", models.ErrFileExists, newName)
	}

	w.names[i] = newName
	w.content[newName] = w.content[oldName]
	delete(w.content, oldName)
	for j, h := range w.hidden {
		if h == oldName {
			w.hidden[j] = newName
		}
	}
	if w.active.Is(oldName) {
		w.active = models.Select(newName)
	}

	w.recompose()
	w.persist()
	return nil
}

// HideFile removes a file from the visible listing. Hiding the active file
// moves the active pointer to the first other visible file, or to the first
// other file when every other file is hidden. A workspace with a single file
// keeps it active.
func (w *Workspace) HideFile(name string) error {
	if !w.Has(name) {
		return fmt.Errorf("%w: %s", models.ErrNotFound, name)
	}
	if !w.isHidden(name) {
		w.hidden = append(w.hidden, name)
	}
	if w.active.Is(name) {
		if next, ok := w.fallback(name); ok {
			w.active = models.Select(next)
		}
	}

	w.persist()
	return nil
}

// UnhideFile returns a hidden file to the visible listing. Unhiding a visible
// file is a no-op.
func (w *Workspace) UnhideFile(name string) error {
	if !w.Has(name) {
		return fmt.Errorf("%w: %s", models.ErrNotFound, name)
	}
	if !w.isHidden(name) {
		return nil
	}
	w.unhide(name)

	w.persist()
	return nil
}

// EditFile replaces the content of a file wholesale.
func (w *Workspace) EditFile(name, content string) error {
	if !w.Has(name) {
		return fmt.Errorf("%w: %s", models.ErrNotFound, name)
	}
	w.content[name] = content

	w.recompose()
	w.persist()
	return nil
}

// SetActive opens a file for editing. Hidden files may be active.
func (w *Workspace) SetActive(name string) error {
	if !w.Has(name) {
		return fmt.Errorf("%w: %s", models.ErrNotFound, name)
	}
	w.active = models.Select(name)
	return nil
}

func (w *Workspace) fallback(name string) (string, bool) {
	for _, n := range w.names {
		if n != name && !w.isHidden(n) {
			return n, true
		}
	}
	for _, n := range w.names {
		if n != name {
			return n, true
		}
	}
	return "", false
}

func (w *Workspace) unhide(name string) {
	for i, h := range w.hidden {
		if h == name {
			w.hidden = append(w.hidden[:i], w.hidden[i+1:]...)
			return
		}
	}
}
