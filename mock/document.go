package mock

import (
	"context"

	"github.com/fwojciec/h2wp"
)

// Compile-time interface verification.
var (
	_ h2wp.Parser    = (*Parser)(nil)
	_ h2wp.Importer  = (*Importer)(nil)
	_ h2wp.Extractor = (*Extractor)(nil)
	_ h2wp.Converter = (*Converter)(nil)
)

// Parser is a mock implementation of h2wp.Parser.
type Parser struct {
	ParseFn func(raw []byte) (*h2wp.ParsedDocument, error)
}

func (p *Parser) Parse(raw []byte) (*h2wp.ParsedDocument, error) {
	return p.ParseFn(raw)
}

// Importer is a mock implementation of h2wp.Importer.
type Importer struct {
	ImportFileFn func(ctx context.Context, path string, opts h2wp.ImportOptions) h2wp.ImportResult
}

func (i *Importer) ImportFile(ctx context.Context, path string, opts h2wp.ImportOptions) h2wp.ImportResult {
	return i.ImportFileFn(ctx, path, opts)
}

// Extractor is a mock implementation of h2wp.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*h2wp.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*h2wp.ExtractResult, error) {
	return e.ExtractFn(html)
}

// Converter is a mock implementation of h2wp.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
