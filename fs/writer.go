// Package fs persists document collections as JSON artifacts on disk.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/connexin/atlascrape"
)

// Ensure Writer implements atlascrape.ArtifactWriter at compile time.
var _ atlascrape.ArtifactWriter = (*Writer)(nil)

// Writer writes document collections to a directory with atomic replace
// semantics. Each artifact is written to a temporary file in the same
// directory and renamed into place, so a crash or failed write leaves
// either the prior valid file or no file, never a truncated one.
type Writer struct {
	dir string
}

// NewWriter creates a new Writer that writes to the given directory.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// WriteDocuments serializes docs as a pretty-printed UTF-8 JSON array
// and atomically replaces the named artifact.
func (w *Writer) WriteDocuments(ctx context.Context, name string, docs []*atlascrape.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return atlascrape.Errorf(atlascrape.EINTERNAL, "create output directory %s: %v", w.dir, err)
	}

	// An empty collection is still a valid artifact: an empty array.
	if docs == nil {
		docs = []*atlascrape.Document{}
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return atlascrape.Errorf(atlascrape.EINTERNAL, "marshal artifact %s: %v", name, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(w.dir, name+".tmp-*")
	if err != nil {
		return atlascrape.Errorf(atlascrape.EINTERNAL, "create temp file for %s: %v", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return atlascrape.Errorf(atlascrape.EINTERNAL, "write artifact %s: %v", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return atlascrape.Errorf(atlascrape.EINTERNAL, "sync artifact %s: %v", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return atlascrape.Errorf(atlascrape.EINTERNAL, "close artifact %s: %v", name, err)
	}

	if err := os.Rename(tmpName, filepath.Join(w.dir, name)); err != nil {
		os.Remove(tmpName)
		return atlascrape.Errorf(atlascrape.EINTERNAL, "replace artifact %s: %v", name, err)
	}

	return nil
}

// ReadDocuments loads an artifact written by Writer.
// Returns ENOTFOUND if the file does not exist and EINVALID if its
// contents cannot be parsed.
func ReadDocuments(path string) ([]*atlascrape.Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, atlascrape.Errorf(atlascrape.ENOTFOUND, "artifact not found: %s", path)
	}
	if err != nil {
		return nil, atlascrape.Errorf(atlascrape.EINTERNAL, "read artifact %s: %v", path, err)
	}

	var docs []*atlascrape.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, atlascrape.Errorf(atlascrape.EINVALID, "artifact %s is corrupt: %v", path, err)
	}
	return docs, nil
}
