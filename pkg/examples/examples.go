// Package examples ships ready-made snippets that can be installed into a
// workspace to get a page started.
package examples

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pagesmith/pagesmith-cli/pkg/models"
)

// ExampleSet represents a collection of related files
type ExampleSet struct {
	Category    string
	Name        string
	Description string
	Files       []models.File
}

// Workspace is the part of a workspace an installer writes to.
type Workspace interface {
	Has(name string) bool
	AddFile(name, content string) error
	EditFile(name, content string) error
}

// ErrExists is returned by Install for a file that is already present when
// force is off.
var ErrExists = errors.New("example already exists")

const CategoryAll = "all"

var registry = map[string]func() []ExampleSet{
	"layout":     getLayoutExamples,
	"components": getComponentExamples,
	"scripts":    getScriptExamples,
}

// Categories returns the installable categories in display order, followed
// by "all".
func Categories() []string {
	cats := make([]string, 0, len(registry)+1)
	for c := range registry {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return append(cats, CategoryAll)
}

// ValidCategory reports whether category names a set group or "all".
func ValidCategory(category string) bool {
	if category == CategoryAll {
		return true
	}
	_, ok := registry[category]
	return ok
}

// GetExamples returns example sets for the given category
func GetExamples(category string) []ExampleSet {
	if category == CategoryAll {
		var all []ExampleSet
		for _, c := range Categories() {
			if c != CategoryAll {
				all = append(all, GetExamples(c)...)
			}
		}
		return all
	}

	get, ok := registry[category]
	if !ok {
		return []ExampleSet{}
	}
	sets := get()
	for i := range sets {
		sets[i].Category = category
	}
	return sets
}

// Install writes a single example file. An existing file is left alone and
// reported with ErrExists unless force is set, in which case its content is
// replaced.
func Install(ws Workspace, file models.File, force bool) error {
	if ws.Has(file.Name) {
		if !force {
			return fmt.Errorf("%w: %s", ErrExists, file.Name)
		}
		return ws.EditFile(file.Name, file.Content)
	}
	return ws.AddFile(file.Name, file.Content)
}
