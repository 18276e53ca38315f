package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/h2wp"
)

// querier is satisfied by both *DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// now returns the current UTC time at the precision stored in the database.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// formatTime formats t for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		// SQLite only accepts OFFSET after a LIMIT.
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// postExists returns ENOTFOUND unless a row with id and postType exists.
// An empty postType matches any non-attachment post.
func postExists(ctx context.Context, q querier, id int64, postType string) error {
	query := "SELECT COUNT(*) FROM posts WHERE id = ? AND type != ?"
	args := []any{id, h2wp.PostTypeAttachment}
	if postType != "" {
		query = "SELECT COUNT(*) FROM posts WHERE id = ? AND type = ?"
		args = []any{id, postType}
	}

	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		if postType == h2wp.PostTypeAttachment {
			return h2wp.Errorf(h2wp.ENOTFOUND, "attachment %d not found", id)
		}
		return h2wp.Errorf(h2wp.ENOTFOUND, "post %d not found", id)
	}
	return nil
}

// uniqueSlug returns slug, or slug with a -2, -3, ... suffix if another row
// of the same type already uses it.
func uniqueSlug(ctx context.Context, q querier, postType, slug string) (string, error) {
	candidate := slug
	for i := 2; ; i++ {
		var n int
		err := q.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM posts WHERE type = ? AND slug = ?",
			postType, candidate).Scan(&n)
		if err != nil {
			return "", err
		}
		if n == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
	}
}

// setMeta upserts a single post meta value.
func setMeta(ctx context.Context, q querier, postID int64, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO post_meta (post_id, meta_key, meta_value)
		VALUES (?, ?, ?)
		ON CONFLICT (post_id, meta_key) DO UPDATE SET meta_value = excluded.meta_value
	`, postID, key, value)
	return err
}
