// Package trafilatura strips boilerplate from full HTML pages using
// go-trafilatura, keeping the links and images a migrated post needs.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/h2wp"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements h2wp.Extractor at compile time.
var _ h2wp.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
// ContentHTML is a fragment: the children of the extracted content node.
func (e *Extractor) Extract(rawHTML string) (*h2wp.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, h2wp.Errorf(h2wp.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		IncludeImages:  true,
		IncludeLinks:   true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderChildren(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &h2wp.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: strings.TrimSpace(contentHTML),
	}, nil
}

// renderChildren renders the child nodes of n without n itself.
func renderChildren(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
