package h2wp

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify creates a URL-safe slug the way WordPress sanitizes titles:
// accents are folded, letters are lowercased, underscores are kept and every
// run of other characters becomes a single hyphen. Path separators also
// become hyphens, so nested sources keep their directory in the slug.
// Example: "Blog/Café_Notes" → "blog-cafe_notes"
func Slugify(s string) string {
	// Transformers carry state, so the chain is built per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			sb.WriteRune(r)
			prevHyphen = false
		} else if !prevHyphen && sb.Len() > 0 {
			sb.WriteRune('-')
			prevHyphen = true
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
