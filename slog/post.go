package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/h2wp"
)

// Ensure LoggingPostService implements h2wp.PostService.
var _ h2wp.PostService = (*LoggingPostService)(nil)

// LoggingPostService wraps a PostService with logging.
type LoggingPostService struct {
	next   h2wp.PostService
	logger *slog.Logger
}

// NewLoggingPostService creates a new LoggingPostService.
func NewLoggingPostService(next h2wp.PostService, logger *slog.Logger) *LoggingPostService {
	return &LoggingPostService{next: next, logger: logger}
}

// CreatePost delegates to the wrapped service and logs the assigned ID.
func (s *LoggingPostService) CreatePost(ctx context.Context, post *h2wp.Post) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create post",
			"id", post.ID,
			"type", post.Type,
			"slug", post.Slug,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreatePost(ctx, post)
}

// AttachCategory delegates to the wrapped service.
func (s *LoggingPostService) AttachCategory(ctx context.Context, postID int64, slug string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("attach category",
			"post_id", postID,
			"category", slug,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.AttachCategory(ctx, postID, slug)
}

// SetFeaturedImage delegates to the wrapped service.
func (s *LoggingPostService) SetFeaturedImage(ctx context.Context, postID, attachmentID int64) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("set featured image",
			"post_id", postID,
			"attachment_id", attachmentID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SetFeaturedImage(ctx, postID, attachmentID)
}

// SetPostMeta delegates to the wrapped service.
func (s *LoggingPostService) SetPostMeta(ctx context.Context, postID int64, key, value string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("set post meta",
			"post_id", postID,
			"key", key,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SetPostMeta(ctx, postID, key, value)
}

// FindPosts delegates to the wrapped service.
func (s *LoggingPostService) FindPosts(ctx context.Context, filter h2wp.PostFilter) (posts []*h2wp.Post, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find posts",
			"count", len(posts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindPosts(ctx, filter)
}
