package h2wp

import (
	"context"
	"time"
)

// Well-known post meta keys.
const (
	MetaSource       = "_h2wp_source"
	MetaThumbnailID  = "_thumbnail_id"
	MetaAttachedFile = "_wp_attached_file"
	MetaContentHash  = "_h2wp_hash"
)

// TaxonomyCategory is the taxonomy of post categories.
const TaxonomyCategory = "category"

// PostTypeAttachment is the post type used for media library items.
const PostTypeAttachment = "attachment"

// Post represents a content item in the target store.
type Post struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	AuthorID int64  `json:"authorId"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Slug     string `json:"slug"`

	// Date and DateGMT are zero unless set explicitly, in which case the
	// store uses CreatedAt.
	Date    time.Time `json:"date"`
	DateGMT time.Time `json:"dateGmt"`

	CreatedAt time.Time `json:"createdAt"`

	// Populated on read.
	Categories []string          `json:"categories,omitempty"`
	Meta       map[string]string `json:"meta,omitempty"`
}

// Validate returns an error if the post contains invalid fields.
func (p *Post) Validate() error {
	if p.Type == "" {
		return Errorf(EINVALID, "post type required")
	}
	if p.Title == "" {
		return Errorf(EINVALID, "post title required")
	}
	return nil
}

// PostService represents a service for managing posts.
type PostService interface {
	// CreatePost creates a new post and assigns its ID.
	// The slug is made unique among posts of the same type.
	CreatePost(ctx context.Context, post *Post) error

	// AttachCategory adds the category with the given slug to a post.
	// Returns ENOTFOUND if the post or category does not exist.
	AttachCategory(ctx context.Context, postID int64, slug string) error

	// SetFeaturedImage sets the attachment shown as the post thumbnail.
	// Returns ENOTFOUND if the post or attachment does not exist.
	SetFeaturedImage(ctx context.Context, postID, attachmentID int64) error

	// SetPostMeta stores a meta value, replacing any previous value.
	// Returns ENOTFOUND if the post does not exist.
	SetPostMeta(ctx context.Context, postID int64, key, value string) error

	// FindPosts retrieves non-attachment posts matching the filter.
	FindPosts(ctx context.Context, filter PostFilter) ([]*Post, error)
}

// PostFilter represents a filter for FindPosts.
type PostFilter struct {
	ID     *int64  `json:"id"`
	Type   *string `json:"type"`
	Status *string `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Term represents a taxonomy term such as a category.
type Term struct {
	ID       int64  `json:"id"`
	Taxonomy string `json:"taxonomy"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
}

// Validate returns an error if the term contains invalid fields.
func (t *Term) Validate() error {
	if t.Taxonomy == "" {
		return Errorf(EINVALID, "term taxonomy required")
	}
	if t.Slug == "" {
		return Errorf(EINVALID, "term slug required")
	}
	if t.Name == "" {
		return Errorf(EINVALID, "term name required")
	}
	return nil
}

// TermService represents a service for managing taxonomy terms.
type TermService interface {
	// CreateTerm creates a new term.
	// Returns ECONFLICT if a term with the same taxonomy and slug exists.
	CreateTerm(ctx context.Context, term *Term) error

	// FindTerms retrieves terms matching the filter.
	FindTerms(ctx context.Context, filter TermFilter) ([]*Term, error)
}

// TermFilter represents a filter for FindTerms.
type TermFilter struct {
	Taxonomy *string `json:"taxonomy"`
	Slug     *string `json:"slug"`
}
