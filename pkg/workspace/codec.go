package workspace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pagesmith/pagesmith-cli/pkg/models"
)

var errNotObject = errors.New("files value is not a JSON object")

// encodeFiles writes files as a flat JSON object. Keys are emitted in slice
// order so that reloading reproduces the iteration order.
func encodeFiles(files []models.File) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range files {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Content)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeFiles reads a flat JSON object of name to content in document order.
// A repeated key keeps its first position and its last value. Non-string
// values are rejected.
func decodeFiles(data []byte) ([]models.File, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to decode files: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}

	var files []models.File
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to decode files: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, errNotObject
		}
		var content string
		if err := dec.Decode(&content); err != nil {
			return nil, fmt.Errorf("failed to decode content of %q: %w", name, err)
		}
		if i, seen := index[name]; seen {
			files[i].Content = content
			continue
		}
		index[name] = len(files)
		files = append(files, models.File{Name: name, Content: content})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to decode files: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("failed to decode files: trailing data")
	}
	return files, nil
}
