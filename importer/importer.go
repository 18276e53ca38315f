// Package importer implements the single-file import pipeline and the batch
// job runner that drives it over a queue of files.
package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/h2wp"
)

// Ensure Importer implements h2wp.Importer at compile time.
var _ h2wp.Importer = (*Importer)(nil)

// Importer turns one HTML file into a post.
type Importer struct {
	Files    h2wp.FileSystem
	Parser   h2wp.Parser
	Rewriter h2wp.AssetRewriter
	Media    h2wp.MediaService
	Posts    h2wp.PostService

	// Extractor is optional. When set, jobs with ExtractMain use it to
	// strip boilerplate from the document before assets are rewritten.
	Extractor h2wp.Extractor
}

// ImportFile extracts, rewrites and persists a single file.
//
// Dry runs stop before anything is persisted. Category and featured image
// assignment are best-effort and never fail the import.
func (i *Importer) ImportFile(ctx context.Context, path string, opts h2wp.ImportOptions) h2wp.ImportResult {
	raw, err := i.Files.ReadFile(path)
	if err != nil {
		return failed("Failed to parse: %s", path)
	}
	doc, err := i.Parser.Parse(raw)
	if err != nil {
		return failed("Failed to parse: %s", path)
	}

	title := doc.Title
	if title == "" {
		title = h2wp.TitleFromFilename(path)
	}
	content := i.content(doc, opts)
	rel := RelativePath(opts.BasePath, path)

	resolver := NewAssetResolver(i.Files, i.Media, opts, path)
	var firstImageID int64
	if rewritten, err := i.Rewriter.Rewrite(ctx, content, resolver); err == nil {
		content = rewritten.HTML
		firstImageID = rewritten.FirstImageID
	}

	if opts.DryRun {
		return succeeded("[DRY] Would import \"%s\" from %s", title, rel)
	}

	post := &h2wp.Post{
		Type:     opts.PostType,
		Status:   opts.Status,
		AuthorID: opts.AuthorID,
		Title:    title,
		Content:  content,
		Slug:     h2wp.Slugify(h2wp.StripHTMLExt(rel)),
	}
	if opts.KeepDates {
		if mtime, ok := i.Files.ModTime(path); ok {
			post.Date = mtime.UTC()
			post.DateGMT = mtime.UTC()
		}
	}

	if err := i.Posts.CreatePost(ctx, post); err != nil {
		return failed("Insert failed for %s: %s", rel, h2wp.ErrorMessage(err))
	}

	if opts.Category != "" && opts.PostType == h2wp.DefaultPostType {
		_ = i.Posts.AttachCategory(ctx, post.ID, opts.Category)
	}
	if opts.SetFeatured && firstImageID != 0 {
		_ = i.Posts.SetFeaturedImage(ctx, post.ID, firstImageID)
	}
	_ = i.Posts.SetPostMeta(ctx, post.ID, h2wp.MetaSource, rel)

	return succeeded("Created #%d \"%s\"", post.ID, title)
}

// content returns the HTML to import: the main content when extraction is
// requested and yields something, otherwise the body or raw document.
func (i *Importer) content(doc *h2wp.ParsedDocument, opts h2wp.ImportOptions) string {
	if opts.ExtractMain && i.Extractor != nil {
		if res, err := i.Extractor.Extract(doc.Raw); err == nil && strings.TrimSpace(res.ContentHTML) != "" {
			return res.ContentHTML
		}
	}
	return doc.Content()
}

// RelativePath returns path relative to basePath with forward slashes.
// Paths outside basePath are returned whole, without a leading slash.
func RelativePath(basePath, path string) string {
	if basePath != "" {
		rel, err := filepath.Rel(filepath.Clean(basePath), filepath.Clean(path))
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return filepath.ToSlash(rel)
		}
	}
	return strings.TrimLeft(filepath.ToSlash(path), "/")
}

func succeeded(format string, args ...any) h2wp.ImportResult {
	return h2wp.ImportResult{OK: true, Message: fmt.Sprintf(format, args...)}
}

func failed(format string, args ...any) h2wp.ImportResult {
	return h2wp.ImportResult{OK: false, Message: fmt.Sprintf(format, args...)}
}
