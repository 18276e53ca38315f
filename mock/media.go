package mock

import (
	"context"

	"github.com/fwojciec/h2wp"
)

// Compile-time interface verification.
var (
	_ h2wp.MediaService = (*MediaService)(nil)
	_ h2wp.UploadStore  = (*UploadStore)(nil)
)

// MediaService is a mock implementation of h2wp.MediaService.
type MediaService struct {
	SideloadFn        func(ctx context.Context, path string) (int64, error)
	AttachmentURLFn   func(ctx context.Context, id int64) (string, error)
	FindAttachmentsFn func(ctx context.Context) ([]*h2wp.Attachment, error)
}

func (s *MediaService) Sideload(ctx context.Context, path string) (int64, error) {
	return s.SideloadFn(ctx, path)
}

func (s *MediaService) AttachmentURL(ctx context.Context, id int64) (string, error) {
	return s.AttachmentURLFn(ctx, id)
}

func (s *MediaService) FindAttachments(ctx context.Context) ([]*h2wp.Attachment, error) {
	return s.FindAttachmentsFn(ctx)
}

// UploadStore is a mock implementation of h2wp.UploadStore.
type UploadStore struct {
	PutFn func(ctx context.Context, name string, data []byte) (*h2wp.Upload, error)
}

func (s *UploadStore) Put(ctx context.Context, name string, data []byte) (*h2wp.Upload, error) {
	return s.PutFn(ctx, name, data)
}
