package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/h2wp"
	"github.com/fwojciec/h2wp/bloom"
)

// AttachmentStatus is the post status of every attachment.
const AttachmentStatus = "inherit"

// Sizing of the content-hash filter. Libraries larger than this still work,
// with a higher false positive rate costing extra lookups.
const (
	hashFilterSize   = 100_000
	hashFilterFPRate = 0.001
)

// Compile-time interface verification.
var _ h2wp.MediaService = (*MediaService)(nil)

// MediaService implements h2wp.MediaService using SQLite for attachment
// records and an h2wp.UploadStore for the file bytes.
//
// Files with identical content are stored once: sideloading a file whose
// xxhash matches an existing attachment returns that attachment.
type MediaService struct {
	db      *DB
	uploads h2wp.UploadStore

	mu     sync.Mutex
	hashes *bloom.Filter // nil until loaded from the database
}

// NewMediaService creates a new MediaService.
func NewMediaService(db *DB, uploads h2wp.UploadStore) *MediaService {
	return &MediaService{db: db, uploads: uploads}
}

// Sideload imports the file at path into the media library.
func (s *MediaService) Sideload(ctx context.Context, path string) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, h2wp.Errorf(h2wp.EINVALID, "failed to read %s: %v", path, err)
	}
	hash := fmt.Sprintf("%016x", xxhash.Sum64(data))

	s.mu.Lock()
	defer s.mu.Unlock()

	hashes, err := s.hashFilter(ctx)
	if err != nil {
		return 0, err
	}
	if hashes.Test(hash) {
		id, err := s.findByHash(ctx, hash)
		if err != nil {
			return 0, err
		}
		if id != 0 {
			return id, nil
		}
	}

	upload, err := s.uploads.Put(ctx, filepath.Base(path), data)
	if err != nil {
		return 0, fmt.Errorf("failed to store upload: %w", err)
	}

	name := filepath.Base(path)
	title := strings.TrimSuffix(name, filepath.Ext(name))
	id, err := s.insertAttachment(ctx, title, detectMimeType(name, data), upload, hash)
	if err != nil {
		return 0, err
	}

	hashes.Add(hash)
	return id, nil
}

// AttachmentURL returns the URL an attachment is served from.
func (s *MediaService) AttachmentURL(ctx context.Context, id int64) (string, error) {
	var url string
	err := s.db.QueryRowContext(ctx,
		"SELECT guid FROM posts WHERE id = ? AND type = ?",
		id, h2wp.PostTypeAttachment).Scan(&url)
	if err == sql.ErrNoRows {
		return "", h2wp.Errorf(h2wp.ENOTFOUND, "attachment %d not found", id)
	}
	if err != nil {
		return "", err
	}
	return url, nil
}

// FindAttachments retrieves all attachments in ID order.
func (s *MediaService) FindAttachments(ctx context.Context) ([]*h2wp.Attachment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.title, p.mime_type, p.guid, p.created_at,
			COALESCE(f.meta_value, ''), COALESCE(h.meta_value, '')
		FROM posts p
		LEFT JOIN post_meta f ON f.post_id = p.id AND f.meta_key = ?
		LEFT JOIN post_meta h ON h.post_id = p.id AND h.meta_key = ?
		WHERE p.type = ?
		ORDER BY p.id
	`, h2wp.MetaAttachedFile, h2wp.MetaContentHash, h2wp.PostTypeAttachment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []*h2wp.Attachment
	for rows.Next() {
		var a h2wp.Attachment
		var createdAt string

		if err := rows.Scan(&a.ID, &a.Title, &a.MimeType, &a.URL, &createdAt, &a.File, &a.ContentHash); err != nil {
			return nil, err
		}
		if a.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		attachments = append(attachments, &a)
	}

	return attachments, rows.Err()
}

// hashFilter returns the content-hash filter, loading it on first use.
// The caller must hold s.mu.
func (s *MediaService) hashFilter(ctx context.Context) (*bloom.Filter, error) {
	if s.hashes != nil {
		return s.hashes, nil
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT meta_value FROM post_meta WHERE meta_key = ?", h2wp.MetaContentHash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	f := bloom.NewFilter(hashFilterSize, hashFilterFPRate)
	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return nil, err
		}
		f.Add(hash)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.hashes = f
	return f, nil
}

// findByHash returns the attachment with the given content hash, or zero.
func (s *MediaService) findByHash(ctx context.Context, hash string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		SELECT p.id FROM posts p
		JOIN post_meta m ON m.post_id = p.id
		WHERE p.type = ? AND m.meta_key = ? AND m.meta_value = ?
		ORDER BY p.id LIMIT 1
	`, h2wp.PostTypeAttachment, h2wp.MetaContentHash, hash).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return id, err
}

func (s *MediaService) insertAttachment(ctx context.Context, title, mimeType string, upload *h2wp.Upload, hash string) (int64, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	slug := h2wp.Slugify(title)
	if slug == "" {
		slug = h2wp.PostTypeAttachment
	}
	if slug, err = uniqueSlug(ctx, tx, h2wp.PostTypeAttachment, slug); err != nil {
		return 0, err
	}

	ts := formatTime(now())
	result, err := tx.ExecContext(ctx, `
		INSERT INTO posts (type, status, author_id, title, slug, post_date, post_date_gmt, mime_type, guid, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, h2wp.PostTypeAttachment, AttachmentStatus, h2wp.DefaultAuthorID, title, slug,
		ts, ts, mimeType, upload.URL, ts)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := setMeta(ctx, tx, id, h2wp.MetaAttachedFile, upload.File); err != nil {
		return 0, err
	}
	if err := setMeta(ctx, tx, id, h2wp.MetaContentHash, hash); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// detectMimeType guesses the MIME type from the extension, falling back to
// content sniffing.
func detectMimeType(name string, data []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); t != "" {
		if mt, _, err := mime.ParseMediaType(t); err == nil {
			return mt
		}
		return t
	}
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return mt
}
