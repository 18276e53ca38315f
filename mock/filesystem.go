package mock

import (
	"time"

	"github.com/fwojciec/h2wp"
)

// Compile-time interface verification.
var (
	_ h2wp.FileSystem = (*FileSystem)(nil)
	_ h2wp.Scanner    = (*Scanner)(nil)
)

// FileSystem is a mock implementation of h2wp.FileSystem.
type FileSystem struct {
	ReadFileFn       func(path string) ([]byte, error)
	ModTimeFn        func(path string) (time.Time, bool)
	IsReadableFileFn func(path string) bool
	RemoveFn         func(path string) error
}

func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	return fs.ReadFileFn(path)
}

func (fs *FileSystem) ModTime(path string) (time.Time, bool) {
	return fs.ModTimeFn(path)
}

func (fs *FileSystem) IsReadableFile(path string) bool {
	return fs.IsReadableFileFn(path)
}

func (fs *FileSystem) Remove(path string) error {
	return fs.RemoveFn(path)
}

// Scanner is a mock implementation of h2wp.Scanner.
type Scanner struct {
	ScanFn func(root string) ([]string, error)
}

func (s *Scanner) Scan(root string) ([]string, error) {
	return s.ScanFn(root)
}
