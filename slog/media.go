package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/h2wp"
)

// Ensure LoggingMediaService implements h2wp.MediaService.
var _ h2wp.MediaService = (*LoggingMediaService)(nil)

// LoggingMediaService wraps a MediaService with logging.
type LoggingMediaService struct {
	next   h2wp.MediaService
	logger *slog.Logger
}

// NewLoggingMediaService creates a new LoggingMediaService.
func NewLoggingMediaService(next h2wp.MediaService, logger *slog.Logger) *LoggingMediaService {
	return &LoggingMediaService{next: next, logger: logger}
}

// Sideload delegates to the wrapped service and logs the attachment ID.
func (s *LoggingMediaService) Sideload(ctx context.Context, path string) (id int64, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sideload",
			"path", path,
			"attachment_id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Sideload(ctx, path)
}

// AttachmentURL delegates to the wrapped service.
func (s *LoggingMediaService) AttachmentURL(ctx context.Context, id int64) (url string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("attachment url",
			"attachment_id", id,
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.AttachmentURL(ctx, id)
}

// FindAttachments delegates to the wrapped service.
func (s *LoggingMediaService) FindAttachments(ctx context.Context) (attachments []*h2wp.Attachment, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find attachments",
			"count", len(attachments),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindAttachments(ctx)
}
