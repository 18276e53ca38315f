package h2wp

// Converter renders post content as Markdown so an import can be inspected
// before anything is written to the site.
type Converter interface {
	Convert(html string) (string, error)
}
