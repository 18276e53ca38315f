package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/h2wp"
	"github.com/fwojciec/h2wp/htmltomarkdown"
	"github.com/fwojciec/h2wp/importer"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	path, err := filepath.Abs(c.File)
	if err != nil {
		return err
	}
	base := c.Base
	if base == "" {
		base = filepath.Dir(path)
	}

	opts, err := c.ImportOptions(base)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", h2wp.ErrorMessage(err))
		return err
	}
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", h2wp.ErrorMessage(err))
		return err
	}

	result := deps.Importer.ImportFile(deps.Ctx, path, opts)
	if !result.OK {
		fmt.Fprintf(deps.Stderr, "error: %s\n", result.Message)
		return h2wp.Errorf(h2wp.EINVALID, "%s", result.Message)
	}

	fmt.Fprintln(deps.Stdout, result.Message)
	return nil
}

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	path, err := filepath.Abs(c.File)
	if err != nil {
		return err
	}
	base := c.Base
	if base == "" {
		base = filepath.Dir(path)
	}

	raw, err := deps.Files.ReadFile(path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", h2wp.ErrorMessage(err))
		return err
	}
	doc, err := deps.Parser.Parse(raw)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", h2wp.ErrorMessage(err))
		return err
	}

	if c.ExtractMain && deps.Extractor != nil {
		if res, err := deps.Extractor.Extract(doc.Raw); err == nil && strings.TrimSpace(res.ContentHTML) != "" {
			doc.BodyFragment = res.ContentHTML
		}
	}

	rel := importer.RelativePath(base, path)
	conv := deps.Converter
	if hc, ok := conv.(*htmltomarkdown.Converter); ok && c.SiteURL != "" {
		withDomain := *hc
		withDomain.Domain = c.SiteURL
		conv = &withDomain
	}
	preview, err := htmltomarkdown.NewPreview(conv, rel, doc, h2wp.TitleFromFilename(path))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", h2wp.ErrorMessage(err))
		return err
	}

	fmt.Fprint(deps.Stdout, preview.Format())
	return nil
}
