// Package goquery implements HTML extraction and asset rewriting on top of
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/h2wp"
	"golang.org/x/net/html"
)

// Ensure Parser implements h2wp.Parser at compile time.
var _ h2wp.Parser = (*Parser)(nil)

// Parser extracts the title and body fragment of HTML documents.
// Malformed markup is repaired by the HTML5 parsing algorithm rather than
// rejected.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse extracts the title and body fragment from raw.
func (p *Parser) Parse(raw []byte) (*h2wp.ParsedDocument, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, h2wp.Errorf(h2wp.EINVALID, "failed to parse HTML: %v", err)
	}

	parsed := &h2wp.ParsedDocument{Raw: string(raw)}

	parsed.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if parsed.Title == "" {
		parsed.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	// The parser always synthesizes a <body>; only an explicit one counts.
	if containsTag(raw, "body") {
		if body, err := doc.Find("body").First().Html(); err == nil {
			parsed.BodyFragment = strings.TrimSpace(body)
		}
	}

	return parsed, nil
}

// containsTag reports whether raw has a start tag with one of the given
// names. Tags inside comments, scripts and attribute values do not count.
func containsTag(raw []byte, names ...string) bool {
	z := html.NewTokenizer(bytes.NewReader(raw))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			tag, _ := z.TagName()
			for _, name := range names {
				if string(tag) == name {
					return true
				}
			}
		}
	}
}
