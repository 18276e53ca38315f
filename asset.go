package h2wp

import (
	"context"
	"net/url"
	"path"
	"strings"
)

// mediaLinkExtensions lists the <a href> targets that are imported as media.
var mediaLinkExtensions = map[string]bool{
	"pdf":  true,
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
	"svg":  true,
}

// IsMediaLink reports whether href points at an importable media file,
// judged by the extension of its path component.
func IsMediaLink(href string) bool {
	p := href
	if u, err := url.Parse(href); err == nil {
		p = u.Path
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	return mediaLinkExtensions[ext]
}

// AssetResolution is the outcome of resolving one asset reference.
type AssetResolution struct {
	// URL replaces the original reference. It equals the original when the
	// asset is external, unresolved, or the job is a dry run.
	URL string

	// AttachmentID is set when the asset was sideloaded into the media
	// library, zero otherwise.
	AttachmentID int64
}

// Sideloaded reports whether the resolution produced an attachment.
func (r AssetResolution) Sideloaded() bool {
	return r.AttachmentID != 0
}

// AssetResolver maps asset references found in one document to their
// imported copies.
type AssetResolver interface {
	// Resolve never fails: unresolvable references come back unchanged.
	Resolve(ctx context.Context, ref string) AssetResolution
}

// RewriteResult is the outcome of rewriting the assets of one document.
type RewriteResult struct {
	HTML string

	// FirstImageID is the attachment of the first <img> that was
	// sideloaded, zero if none was.
	FirstImageID int64

	// Rewritten counts the attributes that were changed.
	Rewritten int
}

// AssetRewriter rewrites <img src> and media <a href> references in HTML.
type AssetRewriter interface {
	Rewrite(ctx context.Context, html string, resolver AssetResolver) (*RewriteResult, error)
}
