package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/h2wp"
	"github.com/fwojciec/h2wp/fs"
	"github.com/fwojciec/h2wp/mock"
	"github.com/fwojciec/h2wp/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUploads(t *testing.T) *fs.UploadStore {
	t.Helper()
	s := fs.NewUploadStore(t.TempDir(), "https://cms.test/wp-content/uploads")
	s.Now = func() time.Time { return time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

// writeAsset writes a source file into a fresh temp dir and returns its path.
func writeAsset(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMediaService_Sideload(t *testing.T) {
	t.Parallel()

	t.Run("creates attachment with upload url", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		svc := sqlite.NewMediaService(setupTestDB(t), newTestUploads(t))

		id, err := svc.Sideload(ctx, writeAsset(t, "Team Photo.JPG", "jpeg bytes"))
		require.NoError(t, err)
		assert.NotZero(t, id)

		url, err := svc.AttachmentURL(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "https://cms.test/wp-content/uploads/2024/07/team-photo.jpg", url)

		attachments, err := svc.FindAttachments(ctx)
		require.NoError(t, err)
		require.Len(t, attachments, 1)
		a := attachments[0]
		assert.Equal(t, id, a.ID)
		assert.Equal(t, "Team Photo", a.Title)
		assert.Equal(t, "image/jpeg", a.MimeType)
		assert.Equal(t, "2024/07/team-photo.jpg", a.File)
		assert.Len(t, a.ContentHash, 16)
	})

	t.Run("reuses attachment for identical content", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		var puts int
		uploads := newTestUploads(t)
		counting := &mock.UploadStore{
			PutFn: func(ctx context.Context, name string, data []byte) (*h2wp.Upload, error) {
				puts++
				return uploads.Put(ctx, name, data)
			},
		}
		svc := sqlite.NewMediaService(setupTestDB(t), counting)

		first, err := svc.Sideload(ctx, writeAsset(t, "a.png", "same"))
		require.NoError(t, err)
		second, err := svc.Sideload(ctx, writeAsset(t, "copy.png", "same"))
		require.NoError(t, err)
		third, err := svc.Sideload(ctx, writeAsset(t, "b.png", "different"))
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.NotEqual(t, first, third)
		assert.Equal(t, 2, puts)
	})

	t.Run("dedupes against attachments from earlier runs", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := setupTestDB(t)
		uploads := newTestUploads(t)
		path := writeAsset(t, "a.pdf", "%PDF-1.4")

		first, err := sqlite.NewMediaService(db, uploads).Sideload(ctx, path)
		require.NoError(t, err)
		second, err := sqlite.NewMediaService(db, uploads).Sideload(ctx, path)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("returns error for unreadable file", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewMediaService(setupTestDB(t), newTestUploads(t))

		_, err := svc.Sideload(context.Background(), filepath.Join(t.TempDir(), "missing.png"))

		assert.Equal(t, h2wp.EINVALID, h2wp.ErrorCode(err))
	})

	t.Run("leaves no attachment when upload fails", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		uploads := &mock.UploadStore{
			PutFn: func(context.Context, string, []byte) (*h2wp.Upload, error) {
				return nil, h2wp.Errorf(h2wp.EINTERNAL, "disk full")
			},
		}
		svc := sqlite.NewMediaService(setupTestDB(t), uploads)

		_, err := svc.Sideload(ctx, writeAsset(t, "a.png", "png"))
		require.Error(t, err)

		attachments, err := svc.FindAttachments(ctx)
		require.NoError(t, err)
		assert.Empty(t, attachments)
	})
}

func TestMediaService_AttachmentURL(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for posts", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := setupTestDB(t)
		post := newTestPost("A")
		require.NoError(t, sqlite.NewPostService(db).CreatePost(ctx, post))

		_, err := sqlite.NewMediaService(db, newTestUploads(t)).AttachmentURL(ctx, post.ID)

		assert.Equal(t, h2wp.ENOTFOUND, h2wp.ErrorCode(err))
	})
}
