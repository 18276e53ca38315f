package main_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/h2wp"
	main "github.com/fwojciec/h2wp/cmd/h2wp"
	"github.com/fwojciec/h2wp/mock"
	"github.com/fwojciec/h2wp/wxr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExporter(posts []*h2wp.Post, postsErr error) *wxr.Exporter {
	return &wxr.Exporter{
		Posts: &mock.PostService{
			FindPostsFn: func(context.Context, h2wp.PostFilter) ([]*h2wp.Post, error) { return posts, postsErr },
		},
		Media: &mock.MediaService{
			FindAttachmentsFn: func(context.Context) ([]*h2wp.Attachment, error) { return nil, nil },
		},
		Terms: &mock.TermService{
			FindTermsFn: func(context.Context, h2wp.TermFilter) ([]*h2wp.Term, error) { return nil, nil },
		},
	}
}

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes file", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "export.xml")
		deps, stdout, _ := newDeps(newMemoryJobs().service())
		deps.Exporter = newTestExporter([]*h2wp.Post{{ID: 1, Type: "post", Status: "draft", Title: "Hello", Slug: "hello"}}, nil)

		err := (&main.ExportCmd{Output: out, SiteTitle: "Cafe", SiteURL: "https://cafe.test"}).Run(deps)

		require.NoError(t, err)
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<title>Cafe</title>")
		assert.Contains(t, string(data), "<wp:post_name>hello</wp:post_name>")
		assert.Contains(t, stdout.String(), "Exported to "+out)
	})

	t.Run("writes to stdout", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(newMemoryJobs().service())
		deps.Exporter = newTestExporter(nil, nil)

		err := (&main.ExportCmd{Output: "-", SiteTitle: "Cafe", SiteURL: "https://cafe.test"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "<wp:wxr_version>1.2</wp:wxr_version>")
	})

	t.Run("leaves no file on failure", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		out := filepath.Join(dir, "export.xml")
		deps, _, _ := newDeps(newMemoryJobs().service())
		deps.Exporter = newTestExporter(nil, errors.New("db closed"))

		err := (&main.ExportCmd{Output: out}).Run(deps)

		require.Error(t, err)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
