package persist

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// Store is a keyed byte store used to mirror cell values.
type Store interface {
	// Load returns the stored bytes for key, or found=false if the key
	// has never been saved.
	Load(key string) (data []byte, found bool, err error)
	// Save stores data under key, replacing any existing value.
	Save(key string, data []byte) error
	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string) error
}

// FileStore is a Store that keeps one file per key inside a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store
// rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Load(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *FileStore) Save(key string, data []byte) error {
	// Write-then-rename so readers never observe a partial value.
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(key))
}

func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}
