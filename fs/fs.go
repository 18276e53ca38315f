// Package fs provides the local filesystem side of an import: reading the
// source tree, discovering HTML files and storing uploaded media.
package fs

import (
	"os"
	"time"

	"github.com/fwojciec/h2wp"
)

// Ensure FileSystem implements h2wp.FileSystem at compile time.
var _ h2wp.FileSystem = (*FileSystem)(nil)

// FileSystem implements h2wp.FileSystem on top of the os package.
type FileSystem struct{}

// NewFileSystem creates a new FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (fs *FileSystem) ModTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// IsReadableFile follows symlinks, so a link to a regular file counts.
func (fs *FileSystem) IsReadableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

func (fs *FileSystem) Remove(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return h2wp.Errorf(h2wp.EINVALID, "refusing to remove non-regular file %s", path)
	}
	return os.Remove(path)
}
