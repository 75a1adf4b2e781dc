package save

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned when a save slot does not exist.
var ErrNotFound = errors.New("save slot not found")

// Store persists snapshot bytes by slot name.
type Store interface {
	Put(slot string, data []byte) error
	Get(slot string) ([]byte, error)
	List() ([]string, error)
}

// FileStore keeps one JSON file per slot under a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the save directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating save directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) path(slot string) string {
	return filepath.Join(fs.dir, slot+".json")
}

// Put writes slot data, replacing any existing save.
func (fs *FileStore) Put(slot string, data []byte) error {
	return os.WriteFile(fs.path(slot), data, 0o644)
}

// Get reads slot data, or ErrNotFound.
func (fs *FileStore) Get(slot string) ([]byte, error) {
	data, err := os.ReadFile(fs.path(slot))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// List returns slot names sorted alphabetically.
func (fs *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, err
	}
	var slots []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		slots = append(slots, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(slots)
	return slots, nil
}
