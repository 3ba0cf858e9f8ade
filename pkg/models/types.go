package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BlockType is the closed set of blocks the page builder knows about.
type BlockType string

const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockImage     BlockType = "image"
	BlockHeader    BlockType = "header"
	BlockFooter    BlockType = "footer"
)

// BlockTypes returns every block type in palette order.
func BlockTypes() []BlockType {
	return []BlockType{BlockHeading, BlockParagraph, BlockImage, BlockHeader, BlockFooter}
}

// ParseBlockType converts user input into a BlockType
func ParseBlockType(s string) (BlockType, error) {
	t := BlockType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownBlockType, s)
	}
	return t, nil
}

func (t BlockType) Valid() bool {
	switch t {
	case BlockHeading, BlockParagraph, BlockImage, BlockHeader, BlockFooter:
		return true
	}
	return false
}

// Label is the human readable palette name.
func (t BlockType) Label() string {
	if t == "" {
		return ""
	}
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Content is the payload of a block. It is either RichText or ImageRef.
type Content interface {
	// Raw returns the content as the string the user edits.
	Raw() string
	isContent()
}

// RichText is HTML markup for heading, paragraph, header and footer blocks.
type RichText struct {
	HTML string
}

func (c RichText) Raw() string { return c.HTML }
func (RichText) isContent()    {}

// ImageRef is an image URL or data URI.
type ImageRef struct {
	URL string
}

func (c ImageRef) Raw() string { return c.URL }
func (ImageRef) isContent()    {}

// ContentFor wraps raw into the content variant used by blocks of type t.
func ContentFor(t BlockType, raw string) Content {
	if t == BlockImage {
		return ImageRef{URL: raw}
	}
	return RichText{HTML: raw}
}

// Block is one unit of content on the builder canvas.
type Block struct {
	ID      string
	Type    BlockType
	Content Content
}

// blockView is the serialized form of a Block: content is flattened to the
// string the user edits.
type blockView struct {
	ID      string    `json:"id" yaml:"id"`
	Type    BlockType `json:"type" yaml:"type"`
	Content string    `json:"content" yaml:"content"`
}

func (b Block) view() blockView {
	var raw string
	if b.Content != nil {
		raw = b.Content.Raw()
	}
	return blockView{ID: b.ID, Type: b.Type, Content: raw}
}

func (b Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.view())
}

func (b Block) MarshalYAML() (interface{}, error) {
	return b.view(), nil
}

// DefaultContent returns the content a freshly dropped block starts with.
func DefaultContent(t BlockType) Content {
	switch t {
	case BlockHeading:
		return RichText{HTML: "<h2>New Heading</h2>"}
	case BlockParagraph:
		return RichText{HTML: "<p>This is a new paragraph. Start typing to edit...</p>"}
	case BlockImage:
		return ImageRef{URL: "https://placehold.co/600x400/94A3B8/FFFFFF?text=Upload+Image"}
	case BlockHeader:
		return RichText{HTML: "<h1>Your Company Name</h1>"}
	case BlockFooter:
		return RichText{HTML: "<p>&copy; 2024 Your Company. All rights reserved.</p>"}
	}
	return RichText{}
}
