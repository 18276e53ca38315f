package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/h2wp/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUploadStore(t *testing.T) (*fs.UploadStore, string) {
	t.Helper()
	dir := t.TempDir()
	s := fs.NewUploadStore(dir, "https://cms.test/uploads/")
	s.Now = func() time.Time { return time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC) }
	return s, dir
}

func TestUploadStore_Put(t *testing.T) {
	t.Parallel()

	t.Run("stores file under year and month", func(t *testing.T) {
		t.Parallel()

		s, dir := newUploadStore(t)

		up, err := s.Put(context.Background(), "/site/img/Logo.PNG", []byte("png"))

		require.NoError(t, err)
		assert.Equal(t, "2024/07/logo.png", up.File)
		assert.Equal(t, "https://cms.test/uploads/2024/07/logo.png", up.URL)

		data, err := os.ReadFile(filepath.Join(dir, "2024", "07", "logo.png"))
		require.NoError(t, err)
		assert.Equal(t, "png", string(data))
	})

	t.Run("suffixes duplicate names", func(t *testing.T) {
		t.Parallel()

		s, _ := newUploadStore(t)

		first, err := s.Put(context.Background(), "a.pdf", []byte("1"))
		require.NoError(t, err)
		second, err := s.Put(context.Background(), "a.pdf", []byte("2"))
		require.NoError(t, err)
		third, err := s.Put(context.Background(), "a.pdf", []byte("3"))
		require.NoError(t, err)

		assert.Equal(t, "2024/07/a.pdf", first.File)
		assert.Equal(t, "2024/07/a-1.pdf", second.File)
		assert.Equal(t, "2024/07/a-2.pdf", third.File)
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		s, dir := newUploadStore(t)

		_, err := s.Put(context.Background(), "a.png", []byte("png"))
		require.NoError(t, err)

		entries, err := os.ReadDir(filepath.Join(dir, "2024", "07"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "a.png", entries[0].Name())
	})

	t.Run("honors canceled context", func(t *testing.T) {
		t.Parallel()

		s, _ := newUploadStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.Put(ctx, "a.png", []byte("png"))

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSanitizeFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases and hyphenates", "My Photo (1).JPG", "my-photo-1.jpg"},
		{"folds accents", "Café.png", "cafe.png"},
		{"drops directories", "../../etc/passwd", "passwd"},
		{"empty stem", "().pdf", "file.pdf"},
		{"no extension", "README", "readme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fs.SanitizeFileName(tt.in))
		})
	}
}
