package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/fwojciec/h2wp"
	"github.com/fwojciec/h2wp/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_Scan(t *testing.T) {
	t.Parallel()

	t.Run("finds html files recursively in lexical order", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "b.html"), "b")
		writeFile(t, filepath.Join(root, "a", "z.HTM"), "z")
		writeFile(t, filepath.Join(root, "a", "index.html"), "i")
		writeFile(t, filepath.Join(root, "a", "img", "logo.png"), "png")
		writeFile(t, filepath.Join(root, "notes.txt"), "txt")

		files, err := fs.NewScanner().Scan(root)

		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "a", "index.html"),
			filepath.Join(root, "a", "z.HTM"),
			filepath.Join(root, "b.html"),
		}, files)
	})

	t.Run("includes dot directories by default", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "page.html"), "p")
		writeFile(t, filepath.Join(root, ".well-known", "security.html"), "s")

		files, err := fs.NewScanner().Scan(root)

		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, ".well-known", "security.html"),
			filepath.Join(root, "page.html"),
		}, files)
	})

	t.Run("skips dot files and directories when asked", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "page.html"), "p")
		writeFile(t, filepath.Join(root, ".draft.html"), "d")
		writeFile(t, filepath.Join(root, ".git", "index.html"), "g")

		files, err := (&fs.Scanner{SkipHidden: true}).Scan(root)

		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "page.html")}, files)
	})

	t.Run("applies ignore file", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, fs.IgnoreFileName), "# comment\n\ndrafts/\n*.old.html\n")
		writeFile(t, filepath.Join(root, "page.html"), "p")
		writeFile(t, filepath.Join(root, "page.old.html"), "o")
		writeFile(t, filepath.Join(root, "drafts", "wip.html"), "w")

		files, err := fs.NewScanner().Scan(root)

		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "page.html")}, files)
	})

	t.Run("skips vendored directories when asked", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "page.html"), "p")
		writeFile(t, filepath.Join(root, "node_modules", "pkg", "readme.html"), "r")

		all, err := fs.NewScanner().Scan(root)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		s := &fs.Scanner{SkipVendored: true}
		files, err := s.Scan(root)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "page.html")}, files)
	})

	t.Run("empty directory yields no files", func(t *testing.T) {
		t.Parallel()

		files, err := fs.NewScanner().Scan(t.TempDir())

		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("missing directory is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewScanner().Scan(filepath.Join(t.TempDir(), "missing"))

		assert.Equal(t, h2wp.EINVALID, h2wp.ErrorCode(err))
	})

	t.Run("file instead of directory is invalid", func(t *testing.T) {
		t.Parallel()

		file := filepath.Join(t.TempDir(), "a.html")
		writeFile(t, file, "x")

		_, err := fs.NewScanner().Scan(file)

		assert.Equal(t, h2wp.EINVALID, h2wp.ErrorCode(err))
	})
}
