package gen

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/syssam/odatagen/internal/fsutil"
)

// Storage persists generated artifacts by file name.
type Storage interface {
	// Exists reports whether an artifact with the given name was already written.
	Exists(name string) (bool, error)
	// WriteFile stores the complete artifact. A failed write must leave no
	// partial artifact behind.
	WriteFile(name string, data []byte) error
}

// Reader is implemented by storages that can return a stored artifact.
type Reader interface {
	ReadFile(name string) ([]byte, error)
}

// DirStorage writes artifacts into a directory.
type DirStorage struct {
	Dir string
}

// Exists implements Storage.
func (s DirStorage) Exists(name string) (bool, error) {
	return fsutil.Exists(filepath.Join(s.Dir, name))
}

// WriteFile implements Storage. The file is replaced atomically.
func (s DirStorage) WriteFile(name string, data []byte) error {
	return fsutil.WriteFileAtomic(filepath.Join(s.Dir, name), data, 0o644)
}

// ReadFile implements Reader.
func (s DirStorage) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.Dir, name))
}

// MemStorage keeps artifacts in memory. It is useful for dry runs and tests.
type MemStorage struct {
	mu     sync.Mutex
	files  map[string][]byte
	writes int
}

// NewMemStorage returns an empty MemStorage.
func NewMemStorage() *MemStorage {
	return &MemStorage{files: make(map[string][]byte)}
}

// Exists implements Storage.
func (s *MemStorage) Exists(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[name]
	return ok, nil
}

// WriteFile implements Storage.
func (s *MemStorage) WriteFile(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = append([]byte(nil), data...)
	s.writes++
	return nil
}

// File returns the content stored under name.
func (s *MemStorage) File(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	return data, ok
}

// Writes returns the number of WriteFile calls.
func (s *MemStorage) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// ReadFile implements Reader.
func (s *MemStorage) ReadFile(name string) ([]byte, error) {
	data, ok := s.File(name)
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}
