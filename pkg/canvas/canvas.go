// Package canvas holds the Canvas Model of the page builder: an ordered
// sequence of typed blocks and a selection pointer. The canvas lives in
// memory only.
package canvas

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/pagesmith/pagesmith-cli/pkg/models"
)

type Canvas struct {
	blocks   []models.Block
	nextID   int
	selected models.Selection
}

// New returns an empty canvas. The first block inserted gets counter 1.
func New() *Canvas {
	return &Canvas{nextID: 1}
}

// NewSample returns the starter layout shown on first load.
func NewSample() *Canvas {
	c := New()
	c.blocks = []models.Block{
		{ID: "header-0", Type: models.BlockHeader, Content: models.RichText{HTML: "<h1>Welcome to My Website</h1>"}},
		{ID: "heading-0", Type: models.BlockHeading, Content: models.RichText{HTML: "<h2>About This Builder</h2>"}},
		{ID: "paragraph-0", Type: models.BlockParagraph, Content: models.RichText{HTML: "<p>Drag and drop components to create your layout. Select any component to edit its content.</p>"}},
	}
	return c
}

// Blocks returns the blocks in display order.
func (c *Canvas) Blocks() []models.Block {
	return append([]models.Block(nil), c.blocks...)
}

func (c *Canvas) Len() int {
	return len(c.blocks)
}

// Block returns the block with the given id.
func (c *Canvas) Block(id string) (models.Block, bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return models.Block{}, false
	}
	return c.blocks[i], true
}

// IndexOf returns the position of id, or -1.
func (c *Canvas) IndexOf(id string) int {
	for i, b := range c.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Selected returns the selected block, if any.
func (c *Canvas) Selected() (models.Block, bool) {
	id, ok := c.selected.ID()
	if !ok {
		return models.Block{}, false
	}
	return c.Block(id)
}

// Insert appends a block of type t with its default content and selects it.
func (c *Canvas) Insert(t models.BlockType) (models.Block, error) {
	return c.InsertAt(t, len(c.blocks))
}

// InsertAt inserts a block of type t before index and selects it. The index
// is clamped into [0, len].
func (c *Canvas) InsertAt(t models.BlockType, index int) (models.Block, error) {
	if !t.Valid() {
		return models.Block{}, fmt.Errorf("%w: %q", models.ErrUnknownBlockType, t)
	}

	b := models.Block{
		ID:      fmt.Sprintf("%s-%d", t, c.nextID),
		Type:    t,
		Content: models.DefaultContent(t),
	}
	c.nextID++

	index = clamp(index, 0, len(c.blocks))
	c.blocks = append(c.blocks, models.Block{})
	copy(c.blocks[index+1:], c.blocks[index:])
	c.blocks[index] = b

	c.selected = models.Select(b.ID)
	return b, nil
}

// Move removes the block at from and reinserts it at to. Both indices are
// clamped into [0, len-1]. Ids and contents are unchanged.
func (c *Canvas) Move(from, to int) {
	if len(c.blocks) == 0 {
		return
	}
	last := len(c.blocks) - 1
	from = clamp(from, 0, last)
	to = clamp(to, 0, last)
	if from == to {
		return
	}

	b := c.blocks[from]
	if from < to {
		copy(c.blocks[from:to], c.blocks[from+1:to+1])
	} else {
		copy(c.blocks[to+1:from+1], c.blocks[to:from])
	}
	c.blocks[to] = b
}

// Edit replaces the content of a block wholesale.
func (c *Canvas) Edit(id, content string) error {
	i := c.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: block %s", models.ErrNotFound, id)
	}
	c.blocks[i].Content = models.ContentFor(c.blocks[i].Type, content)
	return nil
}

// SetImageData sets an image block's content to a base64 data URI.
func (c *Canvas) SetImageData(id, mime string, data []byte) error {
	i := c.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: block %s", models.ErrNotFound, id)
	}
	if c.blocks[i].Type != models.BlockImage {
		return fmt.Errorf("%w: %s", models.ErrNotImageBlock, id)
	}
	c.blocks[i].Content = models.ImageRef{URL: DataURI(mime, data)}
	return nil
}

// Delete removes a block and clears the selection if it pointed at it. It
// reports whether a block was removed.
func (c *Canvas) Delete(id string) bool {
	i := c.IndexOf(id)
	if i < 0 {
		return false
	}
	c.blocks = append(c.blocks[:i], c.blocks[i+1:]...)
	if c.selected.Is(id) {
		c.selected = models.Selection{}
	}
	return true
}

func (c *Canvas) Select(id string) error {
	if c.IndexOf(id) < 0 {
		return fmt.Errorf("%w: block %s", models.ErrNotFound, id)
	}
	c.selected = models.Select(id)
	return nil
}

func (c *Canvas) ClearSelection() {
	c.selected = models.Selection{}
}

// DataURI encodes data as a base64 data URI.
func DataURI(mime string, data []byte) string {
	mime = strings.TrimSpace(mime)
	if mime == "" {
		mime = "application/octet-stream"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
