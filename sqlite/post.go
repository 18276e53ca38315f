package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/fwojciec/h2wp"
)

// Compile-time interface verification.
var _ h2wp.PostService = (*PostService)(nil)

// PostService implements h2wp.PostService using SQLite.
type PostService struct {
	db *DB
}

// NewPostService creates a new PostService.
func NewPostService(db *DB) *PostService {
	return &PostService{db: db}
}

// CreatePost creates a new post.
//
// An empty slug is derived from the title. Empty dates default to the
// creation time.
func (s *PostService) CreatePost(ctx context.Context, post *h2wp.Post) error {
	if err := post.Validate(); err != nil {
		return err
	}
	if post.Status == "" {
		post.Status = h2wp.DefaultStatus
	}
	if post.AuthorID == 0 {
		post.AuthorID = h2wp.DefaultAuthorID
	}

	slug := post.Slug
	if slug == "" {
		slug = h2wp.Slugify(post.Title)
	}
	if slug == "" {
		slug = post.Type
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if slug, err = uniqueSlug(ctx, tx, post.Type, slug); err != nil {
		return err
	}

	post.CreatedAt = now()
	if post.Date.IsZero() {
		post.Date = post.CreatedAt
	}
	if post.DateGMT.IsZero() {
		post.DateGMT = post.Date.UTC()
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO posts (type, status, author_id, title, content, slug, post_date, post_date_gmt, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, post.Type, post.Status, post.AuthorID, post.Title, post.Content, slug,
		formatTime(post.Date), formatTime(post.DateGMT), formatTime(post.CreatedAt))
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	post.ID = id
	post.Slug = slug
	return nil
}

// AttachCategory adds an existing category to a post.
// Attaching the same category twice is a no-op.
func (s *PostService) AttachCategory(ctx context.Context, postID int64, slug string) error {
	if err := postExists(ctx, s.db, postID, ""); err != nil {
		return err
	}

	var termID int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM terms WHERE taxonomy = ? AND slug = ?",
		h2wp.TaxonomyCategory, slug).Scan(&termID)
	if err == sql.ErrNoRows {
		return h2wp.Errorf(h2wp.ENOTFOUND, "category %q not found", slug)
	}
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO post_terms (post_id, term_id) VALUES (?, ?)",
		postID, termID)
	return err
}

// SetFeaturedImage stores the attachment ID as the post's thumbnail meta.
func (s *PostService) SetFeaturedImage(ctx context.Context, postID, attachmentID int64) error {
	if err := postExists(ctx, s.db, postID, ""); err != nil {
		return err
	}
	if err := postExists(ctx, s.db, attachmentID, h2wp.PostTypeAttachment); err != nil {
		return err
	}
	return setMeta(ctx, s.db, postID, h2wp.MetaThumbnailID, strconv.FormatInt(attachmentID, 10))
}

// SetPostMeta stores a meta value on any post, attachments included.
func (s *PostService) SetPostMeta(ctx context.Context, postID int64, key, value string) error {
	if key == "" {
		return h2wp.Errorf(h2wp.EINVALID, "meta key required")
	}

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts WHERE id = ?", postID).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return h2wp.Errorf(h2wp.ENOTFOUND, "post %d not found", postID)
	}

	return setMeta(ctx, s.db, postID, key, value)
}

// FindPosts retrieves posts matching the filter in ID order, with their
// categories and meta.
func (s *PostService) FindPosts(ctx context.Context, filter h2wp.PostFilter) ([]*h2wp.Post, error) {
	var query strings.Builder
	args := []any{h2wp.PostTypeAttachment}

	query.WriteString(`
		SELECT id, type, status, author_id, title, content, slug, post_date, post_date_gmt, created_at
		FROM posts WHERE type != ?`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Type != nil {
		query.WriteString(" AND type = ?")
		args = append(args, *filter.Type)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, *filter.Status)
	}

	query.WriteString(" ORDER BY id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	posts, err := s.queryPosts(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}

	for _, post := range posts {
		if post.Categories, err = s.findCategories(ctx, post.ID); err != nil {
			return nil, err
		}
		if post.Meta, err = findMeta(ctx, s.db, post.ID); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

func (s *PostService) queryPosts(ctx context.Context, query string, args ...any) ([]*h2wp.Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*h2wp.Post
	for rows.Next() {
		var post h2wp.Post
		var date, dateGMT, createdAt string

		if err := rows.Scan(&post.ID, &post.Type, &post.Status, &post.AuthorID, &post.Title,
			&post.Content, &post.Slug, &date, &dateGMT, &createdAt); err != nil {
			return nil, err
		}

		if post.Date, err = parseRFC3339(date, "post_date"); err != nil {
			return nil, err
		}
		if post.DateGMT, err = parseRFC3339(dateGMT, "post_date_gmt"); err != nil {
			return nil, err
		}
		if post.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		posts = append(posts, &post)
	}

	return posts, rows.Err()
}

// findCategories returns the category slugs of a post in name order.
func (s *PostService) findCategories(ctx context.Context, postID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.slug FROM terms t
		JOIN post_terms pt ON pt.term_id = t.id
		WHERE pt.post_id = ? AND t.taxonomy = ?
		ORDER BY t.name
	`, postID, h2wp.TaxonomyCategory)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

// findMeta returns all meta values of a post.
func findMeta(ctx context.Context, db *DB, postID int64) (map[string]string, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT meta_key, meta_value FROM post_meta WHERE post_id = ?", postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meta := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		meta[key] = value
	}
	return meta, rows.Err()
}
