package mock

import (
	"context"

	"github.com/fwojciec/h2wp"
)

// Compile-time interface verification.
var (
	_ h2wp.PostService = (*PostService)(nil)
	_ h2wp.TermService = (*TermService)(nil)
)

// PostService is a mock implementation of h2wp.PostService.
type PostService struct {
	CreatePostFn       func(ctx context.Context, post *h2wp.Post) error
	AttachCategoryFn   func(ctx context.Context, postID int64, slug string) error
	SetFeaturedImageFn func(ctx context.Context, postID, attachmentID int64) error
	SetPostMetaFn      func(ctx context.Context, postID int64, key, value string) error
	FindPostsFn        func(ctx context.Context, filter h2wp.PostFilter) ([]*h2wp.Post, error)
}

func (s *PostService) CreatePost(ctx context.Context, post *h2wp.Post) error {
	return s.CreatePostFn(ctx, post)
}

func (s *PostService) AttachCategory(ctx context.Context, postID int64, slug string) error {
	return s.AttachCategoryFn(ctx, postID, slug)
}

func (s *PostService) SetFeaturedImage(ctx context.Context, postID, attachmentID int64) error {
	return s.SetFeaturedImageFn(ctx, postID, attachmentID)
}

func (s *PostService) SetPostMeta(ctx context.Context, postID int64, key, value string) error {
	return s.SetPostMetaFn(ctx, postID, key, value)
}

func (s *PostService) FindPosts(ctx context.Context, filter h2wp.PostFilter) ([]*h2wp.Post, error) {
	return s.FindPostsFn(ctx, filter)
}

// TermService is a mock implementation of h2wp.TermService.
type TermService struct {
	CreateTermFn func(ctx context.Context, term *h2wp.Term) error
	FindTermsFn  func(ctx context.Context, filter h2wp.TermFilter) ([]*h2wp.Term, error)
}

func (s *TermService) CreateTerm(ctx context.Context, term *h2wp.Term) error {
	return s.CreateTermFn(ctx, term)
}

func (s *TermService) FindTerms(ctx context.Context, filter h2wp.TermFilter) ([]*h2wp.Term, error) {
	return s.FindTermsFn(ctx, filter)
}
