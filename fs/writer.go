// Package fs persists scrape output to the local filesystem.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/aline-ai/kbscrape"
)

// Ensure Writer implements kbscrape.CollectionWriter at compile time.
var _ kbscrape.CollectionWriter = (*Writer)(nil)

// Writer writes a collection to a JSON file with atomic semantics: the
// content goes to a temp file in the target directory, then an os.Rename
// replaces the destination, so a failed run never leaves a partial file.
type Writer struct {
	path string
}

// NewWriter creates a Writer targeting the given file path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// WriteCollection serializes the collection as indented JSON and atomically
// replaces the target file.
func (w *Writer) WriteCollection(ctx context.Context, c *kbscrape.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c == nil {
		return kbscrape.Errorf(kbscrape.EINVALID, "nil collection")
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(w.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, w.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
