package mapping

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spendmap/spendmap/internal/model"
)

// FileStore keeps mappings in a CSV file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore for path. The file need not exist.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Location returns the file path.
func (s *FileStore) Location() string {
	return s.path
}

// Load reads the file. A missing file is an empty table.
func (s *FileStore) Load(_ context.Context) ([]model.Mapping, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening mappings: %w", err)
	}
	defer f.Close()

	return ReadMappings(f)
}

// Save overwrites the file with entries. The new content is written to a
// temporary file in the same directory and renamed into place.
func (s *FileStore) Save(_ context.Context, entries []model.Mapping) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating mappings dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".mappings-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteMappings(tmp, entries); err != nil {
		tmp.Close()
		return fmt.Errorf("writing mappings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting mappings mode: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing mappings: %w", err)
	}
	return nil
}
