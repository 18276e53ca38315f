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

func TestLoggingMediaService_Sideload(t *testing.T) {
	t.Parallel()

	t.Run("logs attachment id", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.MediaService{
			SideloadFn: func(context.Context, string) (int64, error) { return 42, nil },
		}

		media := h2wpslog.NewLoggingMediaService(inner, logger)
		id, err := media.Sideload(context.Background(), "/site/img/a.png")

		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
		output := buf.String()
		assert.Contains(t, output, "sideload")
		assert.Contains(t, output, "path=/site/img/a.png")
		assert.Contains(t, output, "attachment_id=42")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.MediaService{
			SideloadFn: func(context.Context, string) (int64, error) { return 0, errors.New("disk full") },
		}

		media := h2wpslog.NewLoggingMediaService(inner, logger)
		_, err := media.Sideload(context.Background(), "/site/img/a.png")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="disk full"`)
	})
}

func TestLoggingMediaService_AttachmentURL(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inner := &mock.MediaService{
		AttachmentURLFn: func(context.Context, int64) (string, error) {
			return "https://cms.test/uploads/a.png", nil
		},
	}

	media := h2wpslog.NewLoggingMediaService(inner, logger)
	url, err := media.AttachmentURL(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, "https://cms.test/uploads/a.png", url)
	assert.Contains(t, buf.String(), "url=https://cms.test/uploads/a.png")
}

func TestLoggingMediaService_FindAttachments(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.MediaService{
		FindAttachmentsFn: func(context.Context) ([]*h2wp.Attachment, error) {
			return []*h2wp.Attachment{{ID: 1}}, nil
		},
	}

	media := h2wpslog.NewLoggingMediaService(inner, logger)
	_, err := media.FindAttachments(context.Background())

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "count=1")
}
