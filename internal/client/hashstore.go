package client

import (
	"os"
	"path/filepath"
	"strings"
)

// HashStore persists the last hash a client observed, surviving
// restarts the way browser local storage survives page loads.
type HashStore struct {
	path string
}

// NewHashStore stores the hash at path. Parent directories are created
// on the first Save.
func NewHashStore(path string) *HashStore {
	return &HashStore{path: path}
}

// Load returns the persisted hash. ok is false when nothing has been
// stored yet.
func (s *HashStore) Load() (hash string, ok bool, err error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(string(data)), true, nil
}

// Save persists the hash, replacing any previous value.
func (s *HashStore) Save(hash string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(hash+"\n"), 0o644)
}
