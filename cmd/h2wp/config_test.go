package main_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/h2wp"
	main "github.com/fwojciec/h2wp/cmd/h2wp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOptions(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadOptions(t *testing.T) {
	t.Parallel()

	t.Run("reads all fields", func(t *testing.T) {
		t.Parallel()

		path := writeOptions(t, `
post_type: page
status: publish
author_id: 4
category: news
base_url: https://example.com
keep_dates: true
set_featured: true
dry_run: true
extract_main: true
cleanup:
  - /tmp/site.zip
`)

		opts, err := main.LoadOptions(path)

		require.NoError(t, err)
		assert.Equal(t, h2wp.ImportOptions{
			PostType:    "page",
			Status:      "publish",
			AuthorID:    4,
			Category:    "news",
			BaseURL:     "https://example.com",
			KeepDates:   true,
			SetFeatured: true,
			DryRun:      true,
			ExtractMain: true,
			Cleanup:     []string{"/tmp/site.zip"},
		}, opts)
	})

	t.Run("empty file yields zero options", func(t *testing.T) {
		t.Parallel()

		opts, err := main.LoadOptions(writeOptions(t, ""))

		require.NoError(t, err)
		assert.Equal(t, h2wp.ImportOptions{}, opts)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadOptions(writeOptions(t, "post_typo: page\n"))

		require.Error(t, err)
		assert.Equal(t, h2wp.EINVALID, h2wp.ErrorCode(err))
	})

	t.Run("missing file is not found", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadOptions(filepath.Join(t.TempDir(), "nope.yaml"))

		assert.Equal(t, h2wp.ENOTFOUND, h2wp.ErrorCode(err))
	})
}

func TestOptionFlags_ImportOptions(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults and base path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		flags := &main.OptionFlags{}

		opts, err := flags.ImportOptions(dir)

		require.NoError(t, err)
		assert.Equal(t, dir, opts.BasePath)
		assert.Equal(t, h2wp.DefaultPostType, opts.PostType)
		assert.Equal(t, h2wp.DefaultStatus, opts.Status)
		assert.Equal(t, int64(h2wp.DefaultAuthorID), opts.AuthorID)
		require.NoError(t, opts.Validate())
	})

	t.Run("flags override options file", func(t *testing.T) {
		t.Parallel()

		path := writeOptions(t, "post_type: page\nstatus: publish\ncategory: news\nkeep_dates: true\n")
		flags := &main.OptionFlags{Options: path, Status: "private", SetFeatured: true}

		opts, err := flags.ImportOptions(t.TempDir())

		require.NoError(t, err)
		assert.Equal(t, "page", opts.PostType)
		assert.Equal(t, "private", opts.Status)
		assert.Equal(t, "news", opts.Category)
		assert.True(t, opts.KeepDates)
		assert.True(t, opts.SetFeatured)
	})

	t.Run("makes cleanup paths absolute", func(t *testing.T) {
		t.Parallel()

		flags := &main.OptionFlags{Cleanup: []string{"site.zip"}}

		opts, err := flags.ImportOptions(t.TempDir())

		require.NoError(t, err)
		require.Len(t, opts.Cleanup, 1)
		assert.True(t, filepath.IsAbs(opts.Cleanup[0]))
		assert.Equal(t, "site.zip", filepath.Base(opts.Cleanup[0]))
	})

	t.Run("returns options file error", func(t *testing.T) {
		t.Parallel()

		flags := &main.OptionFlags{Options: filepath.Join(t.TempDir(), "missing.yaml")}

		_, err := flags.ImportOptions(t.TempDir())

		assert.Equal(t, h2wp.ENOTFOUND, h2wp.ErrorCode(err))
	})
}
