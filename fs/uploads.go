package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/h2wp"
)

// Ensure UploadStore implements h2wp.UploadStore at compile time.
var _ h2wp.UploadStore = (*UploadStore)(nil)

// UploadStore implements h2wp.UploadStore as a WordPress-style uploads
// directory: files land in year/month subdirectories under unique names.
//
// Each file is written to a temporary name and renamed into place, so a
// reader never observes a partial upload. UploadStore is not safe for
// concurrent use by multiple processes writing the same name.
type UploadStore struct {
	dir     string
	baseURL string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewUploadStore creates a new UploadStore.
// dir is the uploads root on disk, baseURL the URL it is served from.
func NewUploadStore(dir, baseURL string) *UploadStore {
	return &UploadStore{
		dir:     dir,
		baseURL: baseURL,
		Now:     time.Now,
	}
}

func (s *UploadStore) Put(ctx context.Context, name string, data []byte) (*h2wp.Upload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sub := s.Now().Format("2006/01")
	dir := filepath.Join(s.dir, filepath.FromSlash(sub))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	final, err := uniqueName(dir, SanitizeFileName(name))
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}
	if err := os.Rename(tmpPath, filepath.Join(dir, final)); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	file := path.Join(sub, final)
	u, err := url.JoinPath(s.baseURL, sub, final)
	if err != nil {
		return nil, h2wp.Errorf(h2wp.EINVALID, "invalid uploads URL %q", s.baseURL)
	}
	return &h2wp.Upload{File: file, URL: u}, nil
}

// SanitizeFileName turns name into a safe, lowercase file name that keeps
// its extension.
// Example: "My Photo (1).JPG" → "my-photo-1.jpg"
func SanitizeFileName(name string) string {
	base := path.Base(filepath.ToSlash(name))
	ext := strings.ToLower(path.Ext(base))
	stem := h2wp.Slugify(strings.TrimSuffix(base, path.Ext(base)))
	if stem == "" {
		stem = "file"
	}
	if h2wp.Slugify(ext) == "" {
		ext = ""
	}
	return stem + ext
}

// uniqueName returns name, or name with a -1, -2, ... suffix before the
// extension if a file with that name already exists in dir.
func uniqueName(dir, name string) (string, error) {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := name
	for i := 1; ; i++ {
		_, err := os.Lstat(filepath.Join(dir, candidate))
		if os.IsNotExist(err) {
			return candidate, nil
		} else if err != nil {
			return "", fmt.Errorf("failed to check upload name: %w", err)
		}
		candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
	}
}
