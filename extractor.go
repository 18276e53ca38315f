package h2wp

// ExtractResult is the main content of a page with boilerplate removed.
type ExtractResult struct {
	Title       string
	ContentHTML string
}

// Extractor strips navigation, footers and sidebars from a full page. The
// importer consults it only for jobs with ImportOptions.ExtractMain set and
// falls back to the whole body when extraction yields nothing.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
