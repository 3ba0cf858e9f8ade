package models

import "errors"

// MaxUploadSize is the largest file accepted by an upload, in bytes.
const MaxUploadSize = 3 << 20

// Workspace and canvas errors. All of them are recoverable: the operation that
// returned one was aborted without changing any state.
var (
	ErrFileExists       = errors.New("file already exists")
	ErrEmptyName        = errors.New("file name cannot be empty")
	ErrFileTooLarge     = errors.New("file size exceeds 3MB limit")
	ErrLastFile         = errors.New("cannot delete the last file")
	ErrNotFound         = errors.New("not found")
	ErrUnknownBlockType = errors.New("unknown block type")
	ErrNotImageBlock    = errors.New("block is not an image")
)
