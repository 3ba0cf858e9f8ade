package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseBlockType(t *testing.T) {
	tests := []struct {
		input   string
		want    BlockType
		wantErr bool
	}{
		{"heading", BlockHeading, false},
		{"  Paragraph ", BlockParagraph, false},
		{"IMAGE", BlockImage, false},
		{"footer", BlockFooter, false},
		{"video", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBlockType(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownBlockType))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBlock_Marshal(t *testing.T) {
	blk := Block{ID: "image-3", Type: BlockImage, Content: ImageRef{URL: "data:image/png;base64,AA=="}}

	data, err := json.Marshal(blk)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"image-3","type":"image","content":"data:image/png;base64,AA=="}`, string(data))

	out, err := yaml.Marshal([]Block{blk, {ID: "empty-1", Type: BlockHeading}})
	require.NoError(t, err)
	assert.Contains(t, string(out), "id: image-3")
	assert.Contains(t, string(out), "content: data:image/png;base64,AA==")
	assert.Contains(t, string(out), "id: empty-1")
}

func TestDefaultContent(t *testing.T) {
	for _, bt := range BlockTypes() {
		c := DefaultContent(bt)
		assert.NotEmpty(t, c.Raw(), bt)
		_, isImage := c.(ImageRef)
		assert.Equal(t, bt == BlockImage, isImage, bt)
	}
}
