package h2wp

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// ParsedDocument holds the content extracted from one HTML file.
type ParsedDocument struct {
	// Title is the trimmed <title> text, else the first <h1>, else empty.
	Title string

	// BodyFragment is the inner HTML of <body>. It is empty when the
	// source has no <body> element.
	BodyFragment string

	// Raw is the unmodified source text.
	Raw string
}

// Content returns the body fragment, falling back to the raw document.
func (d *ParsedDocument) Content() string {
	if d.BodyFragment != "" {
		return d.BodyFragment
	}
	return d.Raw
}

// Parser extracts title and body content from HTML.
type Parser interface {
	// Parse never fails on malformed markup; best-effort output is returned.
	// An error means the input could not be read at all.
	Parse(raw []byte) (*ParsedDocument, error)
}

// ImportResult is the outcome of importing one file.
type ImportResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Importer imports a single HTML file.
type Importer interface {
	// ImportFile never returns an error: every failure is captured in the
	// result so a batch can continue with the next file.
	ImportFile(ctx context.Context, path string, opts ImportOptions) ImportResult
}

var htmlExtRe = regexp.MustCompile(`(?i)\.(html|htm)$`)

// IsHTMLFile reports whether name has an .html or .htm extension.
func IsHTMLFile(name string) bool {
	return htmlExtRe.MatchString(name)
}

// StripHTMLExt removes a trailing .html or .htm extension, any case.
func StripHTMLExt(name string) string {
	return htmlExtRe.ReplaceAllString(name, "")
}

// TitleFromFilename derives a title from a file path.
// Example: /site/my-first_post.html → My First Post
func TitleFromFilename(path string) string {
	base := StripHTMLExt(filepath.Base(path))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	base = strings.TrimSpace(base)

	var sb strings.Builder
	startOfWord := true
	for _, r := range base {
		if startOfWord {
			sb.WriteRune(unicode.ToUpper(r))
		} else {
			sb.WriteRune(r)
		}
		startOfWord = unicode.IsSpace(r)
	}
	return sb.String()
}
