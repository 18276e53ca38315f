package htmltomarkdown

import (
	"strings"

	"github.com/fwojciec/h2wp"
)

// Preview is what a file would become when imported.
type Preview struct {
	Source   string
	Title    string
	Slug     string
	Markdown string
}

// NewPreview converts a parsed document into a Preview. rel is the file's
// path relative to the source root and determines the slug.
func NewPreview(conv h2wp.Converter, rel string, doc *h2wp.ParsedDocument, fallbackTitle string) (*Preview, error) {
	title := doc.Title
	if title == "" {
		title = fallbackTitle
	}

	p := &Preview{
		Source: rel,
		Title:  title,
		Slug:   h2wp.Slugify(h2wp.StripHTMLExt(rel)),
	}

	if content := doc.Content(); strings.TrimSpace(content) != "" {
		md, err := conv.Convert(content)
		if err != nil {
			return nil, err
		}
		p.Markdown = md
	}
	return p, nil
}

// Format renders the preview as Markdown with YAML frontmatter.
func (p *Preview) Format() string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(p.Source)
	b.WriteString("\ntitle: ")
	b.WriteString(p.Title)
	b.WriteString("\nslug: ")
	b.WriteString(p.Slug)
	b.WriteString("\n---\n\n")
	b.WriteString(p.Markdown)
	if !strings.HasSuffix(p.Markdown, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}
