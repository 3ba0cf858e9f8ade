// Package export packages workspace files into a zip archive and reads such
// archives back.
package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/pagesmith/pagesmith-cli/pkg/models"
	"github.com/pagesmith/pagesmith-cli/pkg/preview"
)

// DefaultFilename is the archive name used when settings do not name one.
const DefaultFilename = "web-project.zip"

type Options struct {
	// Minify minifies stylesheet, script and HTML entries.
	Minify bool
	// Modified is stamped on every entry. Zero means now.
	Modified time.Time
}

// WriteZip writes one entry per file, in iteration order.
func WriteZip(w io.Writer, files []models.File, opts Options) error {
	modified := opts.Modified
	if modified.IsZero() {
		modified = time.Now()
	}

	zw := zip.NewWriter(w)
	for _, f := range files {
		content := f.Content
		if opts.Minify {
			min, err := preview.MinifyFile(f.Name, content)
			if err != nil {
				return err
			}
			content = min
		}

		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return fmt.Errorf("failed to add %s to archive: %w", f.Name, err)
		}
		if _, err := io.WriteString(fw, content); err != nil {
			return fmt.Errorf("failed to write %s to archive: %w", f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}

// ReadZip returns the regular files of an archive in archive order. Entries
// larger than models.MaxUploadSize are rejected with models.ErrFileTooLarge.
func ReadZip(data []byte) ([]models.File, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	var files []models.File
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() || strings.HasPrefix(path.Base(zf.Name), "__MACOSX") {
			continue
		}
		if zf.UncompressedSize64 > models.MaxUploadSize {
			return nil, fmt.Errorf("%w: %s", models.ErrFileTooLarge, zf.Name)
		}

		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", zf.Name, err)
		}
		body, err := io.ReadAll(io.LimitReader(rc, models.MaxUploadSize+1))
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", zf.Name, err)
		}
		if len(body) > models.MaxUploadSize {
			return nil, fmt.Errorf("%w: %s", models.ErrFileTooLarge, zf.Name)
		}

		files = append(files, models.File{Name: zf.Name, Content: string(body)})
	}
	return files, nil
}
