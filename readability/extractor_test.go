package readability_test

import (
	"testing"

	"github.com/fwojciec/linkex"
	"github.com/fwojciec/linkex/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head>
<title>On Writing Design Docs | LinkedIn</title>
<meta name="author" content="Jane Doe">
</head>
<body>
<nav><a href="/feed">Home Nav Link</a><a href="/jobs">Jobs Nav Link</a></nav>
<main>
<article>
<h1>On Writing Design Docs</h1>
<p>A design doc is a conversation starter, not a contract. The best ones are short and name their non-goals early so reviewers know what to skip.</p>
<h2>Start with the problem</h2>
<p>Explain what breaks today and who feels it. A reader who understands the pain will forgive a rough proposal far more readily than a polished one that solves nothing.</p>
<ul><li>State the constraint</li><li>Name the owner</li></ul>
</article>
</main>
<aside>Sidebar: People also viewed</aside>
<footer>Footer copyright notice</footer>
</body>
</html>`

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := readability.NewExtractor().Extract(" ")

	require.Error(t, err)
	assert.Equal(t, linkex.EINVALID, linkex.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	result, err := readability.NewExtractor().Extract(articlePage)

	require.NoError(t, err)
	assert.Contains(t, result.Title, "On Writing Design Docs")
}

func TestExtractor_RemovesBoilerplate(t *testing.T) {
	t.Parallel()

	result, err := readability.NewExtractor().Extract(articlePage)

	require.NoError(t, err)
	assert.NotContains(t, result.ContentHTML, "Home Nav Link")
	assert.NotContains(t, result.ContentHTML, "Footer copyright notice")
	assert.NotContains(t, result.ContentHTML, "People also viewed")
}

func TestExtractor_KeepsArticleStructure(t *testing.T) {
	t.Parallel()

	result, err := readability.NewExtractor().Extract(articlePage)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "<h2")
	assert.Contains(t, result.ContentHTML, "<li>State the constraint</li>")
	assert.Contains(t, result.Text, "conversation starter")
}
