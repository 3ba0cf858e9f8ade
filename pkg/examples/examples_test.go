package examples

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagesmith/pagesmith-cli/pkg/models"
	"github.com/pagesmith/pagesmith-cli/pkg/workspace"
)

func TestGetExamples(t *testing.T) {
	tests := []struct {
		name     string
		category string
		wantNone bool
	}{
		{name: "layout", category: "layout"},
		{name: "components", category: "components"},
		{name: "scripts", category: "scripts"},
		{name: "all", category: CategoryAll},
		{name: "unknown", category: "ai", wantNone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sets := GetExamples(tt.category)
			if tt.wantNone {
				assert.Empty(t, sets)
				assert.False(t, ValidCategory(tt.category))
				return
			}
			require.NotEmpty(t, sets)
			assert.True(t, ValidCategory(tt.category))
			for _, set := range sets {
				assert.NotEmpty(t, set.Category)
				assert.NotEmpty(t, set.Files, set.Name)
				if tt.category != CategoryAll {
					assert.Equal(t, tt.category, set.Category)
				}
			}
		})
	}
}

func TestExampleFileNamesAreUnique(t *testing.T) {
	seen := map[string]string{}
	for _, set := range GetExamples(CategoryAll) {
		for _, f := range set.Files {
			prev, dup := seen[f.Name]
			assert.False(t, dup, "%s defined by %s and %s", f.Name, prev, set.Name)
			seen[f.Name] = set.Name
		}
	}
}

func TestCategoriesEndWithAll(t *testing.T) {
	cats := Categories()
	require.NotEmpty(t, cats)
	assert.Equal(t, CategoryAll, cats[len(cats)-1])
	assert.Equal(t, []string{"components", "layout", "scripts", "all"}, cats)
}

func TestInstall(t *testing.T) {
	ws := workspace.New(nil)
	file := models.File{Name: "card.css", Content: ".card{}"}

	require.NoError(t, Install(ws, file, false))
	got, ok := ws.Content("card.css")
	require.True(t, ok)
	assert.Equal(t, ".card{}", got)

	err := Install(ws, models.File{Name: "card.css", Content: "changed"}, false)
	assert.True(t, errors.Is(err, ErrExists))
	got, _ = ws.Content("card.css")
	assert.Equal(t, ".card{}", got)

	require.NoError(t, Install(ws, models.File{Name: "card.css", Content: "changed"}, true))
	got, _ = ws.Content("card.css")
	assert.Equal(t, "changed", got)
}
