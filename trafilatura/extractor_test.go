package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/linkex"
	"github.com/fwojciec/linkex/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements linkex.ContentExtractor at compile time.
var _ linkex.ContentExtractor = (*trafilatura.Extractor)(nil)

const postPage = `<!DOCTYPE html>
<html>
<head>
<title>Shipping the new storage engine | Jane Doe</title>
<meta property="og:title" content="Shipping the new storage engine">
<meta name="author" content="Jane Doe">
</head>
<body>
<nav><a href="/">Home</a><a href="/jobs">Jobs</a></nav>
<main>
<article>
<h1>Shipping the new storage engine</h1>
<p>After eighteen months of work our team shipped the new storage engine to every region this week.</p>
<p>Write latency dropped by half and the on-call rotation has been quiet ever since, which is the best review a system can get.</p>
</article>
</main>
<footer>Copyright 2024 Example Corp</footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(postPage)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("extracts main text without boilerplate", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(postPage)

		require.NoError(t, err)
		assert.Contains(t, result.Text, "eighteen months of work")
		assert.NotContains(t, result.Text, "Copyright 2024")
		assert.Contains(t, result.ContentHTML, "Write latency dropped")
	})

	t.Run("returns EINVALID for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract("   ")

		require.Error(t, err)
		assert.Equal(t, linkex.EINVALID, linkex.ErrorCode(err))
	})
}
