package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/h2wp"
	"github.com/fwojciec/h2wp/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Spring Menu - Corner Bistro</title>
<meta property="og:title" content="Spring Menu">
</head>
<body>
<nav>Navigation here</nav>
<main>
<h1>Spring Menu</h1>
<p>Our spring menu features seasonal vegetables from local farms and a new dessert list.</p>
</main>
<footer>Footer content</footer>
</body>
</html>`

		result, err := trafilatura.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("removes site chrome around article", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Post</title></head>
<body>
<nav class="main-nav"><ul><li><a href="/">Home</a></li><li><a href="/about.html">About</a></li></ul></nav>
<article>
<h1>Moving Day</h1>
<p>After twelve years in the old building we finally moved the whole office across town last weekend.</p>
<p>Everyone helped carry boxes and the new space has far more natural light than before.</p>
</article>
<footer><p>Copyright 2009 Example Corp</p></footer>
</body>
</html>`

		result, err := trafilatura.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "moved the whole office")
		assert.NotContains(t, result.ContentHTML, "main-nav")
		assert.NotContains(t, result.ContentHTML, "Copyright 2009 Example Corp")
	})

	t.Run("returns fragment without body wrapper", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article><p>Simple content that is long enough to be considered the main text of the page.</p></article></body></html>`

		result, err := trafilatura.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Simple content")
		assert.NotContains(t, result.ContentHTML, "<body")
	})

	t.Run("returns EINVALID for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract("  ")

		assert.Equal(t, h2wp.EINVALID, h2wp.ErrorCode(err))
	})
}
