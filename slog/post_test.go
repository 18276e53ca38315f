package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/h2wp"
	"github.com/fwojciec/h2wp/mock"
	h2wpslog "github.com/fwojciec/h2wp/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingPostService_CreatePost(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.PostService{
		CreatePostFn: func(_ context.Context, post *h2wp.Post) error {
			post.ID = 9
			return nil
		},
	}

	posts := h2wpslog.NewLoggingPostService(inner, logger)
	err := posts.CreatePost(context.Background(), &h2wp.Post{Type: "page", Slug: "about", Title: "About"})

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "create post")
	assert.Contains(t, output, "id=9")
	assert.Contains(t, output, "type=page")
	assert.Contains(t, output, "slug=about")
}

func TestLoggingPostService_AttachCategory(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.PostService{
		AttachCategoryFn: func(context.Context, int64, string) error {
			return h2wp.Errorf(h2wp.ENOTFOUND, "category not found")
		},
	}

	posts := h2wpslog.NewLoggingPostService(inner, logger)
	err := posts.AttachCategory(context.Background(), 9, "news")

	require.Error(t, err)
	output := buf.String()
	assert.Contains(t, output, "category=news")
	assert.Contains(t, output, "err=")
}

func TestLoggingPostService_SetFeaturedImage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.PostService{
		SetFeaturedImageFn: func(context.Context, int64, int64) error { return nil },
	}

	posts := h2wpslog.NewLoggingPostService(inner, logger)
	err := posts.SetFeaturedImage(context.Background(), 9, 4)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "attachment_id=4")
}

func TestLoggingPostService_SetPostMeta(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inner := &mock.PostService{
		SetPostMetaFn: func(context.Context, int64, string, string) error { return errors.New("boom") },
	}

	posts := h2wpslog.NewLoggingPostService(inner, logger)
	err := posts.SetPostMeta(context.Background(), 9, h2wp.MetaSource, "a.html")

	require.Error(t, err)
	assert.Contains(t, buf.String(), "key=_h2wp_source")
}

func TestLoggingPostService_FindPosts(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.PostService{
		FindPostsFn: func(context.Context, h2wp.PostFilter) ([]*h2wp.Post, error) {
			return []*h2wp.Post{{ID: 1}, {ID: 2}, {ID: 3}}, nil
		},
	}

	posts := h2wpslog.NewLoggingPostService(inner, logger)
	got, err := posts.FindPosts(context.Background(), h2wp.PostFilter{})

	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Contains(t, buf.String(), "count=3")
}
