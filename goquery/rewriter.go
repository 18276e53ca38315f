package goquery

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/h2wp"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Rewriter implements h2wp.AssetRewriter at compile time.
var _ h2wp.AssetRewriter = (*Rewriter)(nil)

// Rewriter replaces <img src> and media <a href> references using an
// h2wp.AssetResolver.
type Rewriter struct{}

// NewRewriter creates a new Rewriter.
func NewRewriter() *Rewriter {
	return &Rewriter{}
}

// Rewrite resolves every <img src> and media <a href> in document order.
//
// Only changed attributes are touched. When nothing changes the input is
// returned unmodified; otherwise the fragment is re-serialized. Fragments
// are parsed in body context, so leading comments, <style>, <link> and
// <script> stay where they are. Input that carries its own <html>, <head> or
// <body> tags is serialized as a whole document.
func (r *Rewriter) Rewrite(ctx context.Context, fragment string, resolver h2wp.AssetResolver) (*h2wp.RewriteResult, error) {
	result := &h2wp.RewriteResult{HTML: fragment}
	if strings.TrimSpace(fragment) == "" {
		return result, nil
	}

	whole := containsTag([]byte(fragment), "html", "head", "body")

	var doc *goquery.Document
	var body *html.Node
	if whole {
		d, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
		if err != nil {
			return nil, h2wp.Errorf(h2wp.EINVALID, "failed to parse HTML: %v", err)
		}
		doc = d
	} else {
		b, err := parseBodyFragment(fragment)
		if err != nil {
			return nil, h2wp.Errorf(h2wp.EINVALID, "failed to parse HTML: %v", err)
		}
		body = b
		doc = goquery.NewDocumentFromNode(body)
	}

	doc.Find("img[src], a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if ctx.Err() != nil {
			return false
		}

		isImage := goquery.NodeName(sel) == "img"
		attr := "href"
		if isImage {
			attr = "src"
		}

		ref, _ := sel.Attr(attr)
		if strings.TrimSpace(ref) == "" {
			return true
		}
		if !isImage && !h2wp.IsMediaLink(ref) {
			return true
		}

		res := resolver.Resolve(ctx, ref)

		// Links never choose the featured image.
		if isImage && result.FirstImageID == 0 && res.Sideloaded() {
			result.FirstImageID = res.AttachmentID
		}

		if res.URL != "" && res.URL != ref {
			sel.SetAttr(attr, res.URL)
			result.Rewritten++
		}
		return true
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if result.Rewritten == 0 {
		return result, nil
	}

	var out string
	var err error
	if whole {
		out, err = doc.Html()
	} else {
		out, err = renderChildren(body)
	}
	if err != nil {
		return nil, err
	}
	result.HTML = out

	return result, nil
}

// parseBodyFragment parses fragment as the content of a <body> element and
// returns a synthesized body node holding the result.
func parseBodyFragment(fragment string) (*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return body, nil
}

func renderChildren(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
