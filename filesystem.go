package h2wp

import "time"

// FileSystem is the read side of the source tree plus cleanup deletes.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)

	// ModTime returns the modification time, or false if unavailable.
	ModTime(path string) (time.Time, bool)

	// IsReadableFile reports whether path exists, is a regular file and
	// can be opened for reading.
	IsReadableFile(path string) bool

	// Remove deletes a regular file. Directories are never removed.
	Remove(path string) error
}

// Scanner discovers the HTML files to import below a directory.
type Scanner interface {
	// Scan returns absolute paths of .html/.htm files in lexical order.
	// Returns EINVALID if root is not a directory.
	Scan(root string) ([]string, error)
}
