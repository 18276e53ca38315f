package h2wp

import (
	"context"
	"time"
)

// Attachment is a file imported into the media library.
type Attachment struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	MimeType    string    `json:"mimeType"`
	File        string    `json:"file"`
	URL         string    `json:"url"`
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MediaService imports local files into the media library.
type MediaService interface {
	// Sideload imports the file at an absolute local path and returns the
	// attachment ID.
	Sideload(ctx context.Context, path string) (int64, error)

	// AttachmentURL returns the served URL of an attachment.
	// Returns ENOTFOUND if the attachment does not exist.
	AttachmentURL(ctx context.Context, id int64) (string, error)

	// FindAttachments retrieves all attachments, oldest first.
	FindAttachments(ctx context.Context) ([]*Attachment, error)
}

// Upload describes a file stored by an UploadStore.
type Upload struct {
	// File is the path relative to the upload root, slash-separated.
	File string

	// URL is where the stored file is served from.
	URL string
}

// UploadStore stores the bytes of imported media.
type UploadStore interface {
	// Put stores data under a unique name derived from name.
	Put(ctx context.Context, name string, data []byte) (*Upload, error)
}
