// Package wxr exports imported content as WordPress eXtended RSS (WXR 1.2),
// the format read by the WordPress importer.
package wxr

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/h2wp"
)

// Version is the WXR version written to exports.
const Version = "1.2"

// XML namespaces declared on the root element.
var namespaces = [][2]string{
	{"xmlns:excerpt", "http://wordpress.org/export/1.2/excerpt/"},
	{"xmlns:content", "http://purl.org/rss/1.0/modules/content/"},
	{"xmlns:wfw", "http://wellformedweb.org/CommentAPI/"},
	{"xmlns:dc", "http://purl.org/dc/elements/1.1/"},
	{"xmlns:wp", "http://wordpress.org/export/1.2/"},
}

// wpDateLayout is the layout of wp:post_date values.
const wpDateLayout = "2006-01-02 15:04:05"

// Exporter writes every post, attachment and category as one WXR document.
type Exporter struct {
	Posts h2wp.PostService
	Media h2wp.MediaService
	Terms h2wp.TermService

	// SiteTitle and SiteURL fill the channel header.
	SiteTitle string
	SiteURL   string

	// Now returns the export time. Defaults to time.Now.
	Now func() time.Time
}

// Export writes the WXR document to w.
func (e *Exporter) Export(ctx context.Context, w io.Writer) error {
	taxonomy := h2wp.TaxonomyCategory
	categories, err := e.Terms.FindTerms(ctx, h2wp.TermFilter{Taxonomy: &taxonomy})
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	attachments, err := e.Media.FindAttachments(ctx)
	if err != nil {
		return fmt.Errorf("failed to load attachments: %w", err)
	}
	posts, err := e.Posts.FindPosts(ctx, h2wp.PostFilter{})
	if err != nil {
		return fmt.Errorf("failed to load posts: %w", err)
	}

	doc := e.build(categories, attachments, posts)
	doc.Indent(2)
	_, err = doc.WriteTo(w)
	return err
}

func (e *Exporter) build(categories []*h2wp.Term, attachments []*h2wp.Attachment, posts []*h2wp.Post) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	for _, ns := range namespaces {
		rss.CreateAttr(ns[0], ns[1])
	}

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(e.SiteTitle)
	channel.CreateElement("link").SetText(e.SiteURL)
	channel.CreateElement("description")
	channel.CreateElement("pubDate").SetText(e.now().UTC().Format(time.RFC1123Z))
	channel.CreateElement("language").SetText("en")
	channel.CreateElement("wp:wxr_version").SetText(Version)
	channel.CreateElement("wp:base_site_url").SetText(e.SiteURL)
	channel.CreateElement("wp:base_blog_url").SetText(e.SiteURL)

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.Slug] = c.Name

		cat := channel.CreateElement("wp:category")
		cat.CreateElement("wp:term_id").SetText(strconv.FormatInt(c.ID, 10))
		cat.CreateElement("wp:category_nicename").SetText(c.Slug)
		cat.CreateElement("wp:category_parent")
		cdata(cat.CreateElement("wp:cat_name"), c.Name)
	}

	for _, a := range attachments {
		e.writeAttachment(channel, a)
	}
	for _, p := range posts {
		e.writePost(channel, p, names)
	}

	return doc
}

func (e *Exporter) writePost(channel *etree.Element, p *h2wp.Post, categoryNames map[string]string) {
	item := channel.CreateElement("item")
	item.CreateElement("title").SetText(p.Title)
	item.CreateElement("pubDate").SetText(p.DateGMT.UTC().Format(time.RFC1123Z))
	guid := item.CreateElement("guid")
	guid.CreateAttr("isPermaLink", "false")
	guid.SetText(fmt.Sprintf("%s/?p=%d", strings.TrimRight(e.SiteURL, "/"), p.ID))
	item.CreateElement("description")
	cdata(item.CreateElement("content:encoded"), p.Content)
	cdata(item.CreateElement("excerpt:encoded"), "")

	writeItemFields(item, itemFields{
		id:       p.ID,
		authorID: p.AuthorID,
		date:     p.Date,
		dateGMT:  p.DateGMT,
		slug:     p.Slug,
		status:   p.Status,
		postType: p.Type,
	})

	for _, slug := range p.Categories {
		cat := item.CreateElement("category")
		cat.CreateAttr("domain", h2wp.TaxonomyCategory)
		cat.CreateAttr("nicename", slug)
		name := categoryNames[slug]
		if name == "" {
			name = slug
		}
		cdata(cat, name)
	}

	writeMeta(item, p.Meta)
}

func (e *Exporter) writeAttachment(channel *etree.Element, a *h2wp.Attachment) {
	item := channel.CreateElement("item")
	item.CreateElement("title").SetText(a.Title)
	item.CreateElement("pubDate").SetText(a.CreatedAt.UTC().Format(time.RFC1123Z))
	guid := item.CreateElement("guid")
	guid.CreateAttr("isPermaLink", "false")
	guid.SetText(a.URL)
	item.CreateElement("description")
	cdata(item.CreateElement("content:encoded"), "")
	cdata(item.CreateElement("excerpt:encoded"), "")

	writeItemFields(item, itemFields{
		id:       a.ID,
		authorID: h2wp.DefaultAuthorID,
		date:     a.CreatedAt,
		dateGMT:  a.CreatedAt,
		slug:     h2wp.Slugify(a.Title),
		status:   "inherit",
		postType: h2wp.PostTypeAttachment,
	})
	item.CreateElement("wp:attachment_url").SetText(a.URL)

	writeMeta(item, map[string]string{
		h2wp.MetaAttachedFile: a.File,
		h2wp.MetaContentHash:  a.ContentHash,
	})
}

type itemFields struct {
	id       int64
	authorID int64
	date     time.Time
	dateGMT  time.Time
	slug     string
	status   string
	postType string
}

func writeItemFields(item *etree.Element, f itemFields) {
	item.CreateElement("dc:creator").SetText(strconv.FormatInt(f.authorID, 10))
	item.CreateElement("wp:post_id").SetText(strconv.FormatInt(f.id, 10))
	item.CreateElement("wp:post_date").SetText(f.date.Format(wpDateLayout))
	item.CreateElement("wp:post_date_gmt").SetText(f.dateGMT.UTC().Format(wpDateLayout))
	item.CreateElement("wp:comment_status").SetText("closed")
	item.CreateElement("wp:ping_status").SetText("closed")
	item.CreateElement("wp:post_name").SetText(f.slug)
	item.CreateElement("wp:status").SetText(f.status)
	item.CreateElement("wp:post_parent").SetText("0")
	item.CreateElement("wp:menu_order").SetText("0")
	item.CreateElement("wp:post_type").SetText(f.postType)
	item.CreateElement("wp:post_password")
	item.CreateElement("wp:is_sticky").SetText("0")
}

// writeMeta writes meta entries in key order.
func writeMeta(item *etree.Element, meta map[string]string) {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		pm := item.CreateElement("wp:postmeta")
		pm.CreateElement("wp:meta_key").SetText(k)
		cdata(pm.CreateElement("wp:meta_value"), meta[k])
	}
}

// cdata sets the content of el to a CDATA section. A "]]>" inside s is split
// across two sections.
func cdata(el *etree.Element, s string) {
	parts := strings.Split(s, "]]>")
	for i, part := range parts {
		if i < len(parts)-1 {
			part += "]]"
		}
		if i > 0 {
			part = ">" + part
		}
		el.CreateCData(part)
	}
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
