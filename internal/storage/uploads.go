// Package storage implements the local-filesystem attachment store.
// Uploads are written under a single directory and referenced from the
// complaints table by filename only. There is no content addressing and no
// collision handling: a second upload with the same name overwrites the
// first. Filenames are reduced to their base component before writing so a
// crafted name cannot escape the upload directory.
package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// UploadStore saves complaint attachments under Dir.
type UploadStore struct {
	Dir string
}

func NewUploadStore(dir string) *UploadStore { return &UploadStore{Dir: dir} }

// Save writes src to disk under the base component of name and returns the
// stored filename. An empty or path-only name returns "" without writing
// anything. The directory is created on first use.
func (s *UploadStore) Save(name string, src io.Reader) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", nil
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(filepath.Join(s.Dir, base))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return base, nil
}
