package textsplitter_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/linkex"
	"github.com/fwojciec/linkex/textsplitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitter_Split(t *testing.T) {
	t.Parallel()

	t.Run("returns no chunks for blank text", func(t *testing.T) {
		t.Parallel()

		s, err := textsplitter.NewSplitter()
		require.NoError(t, err)

		chunks, err := s.Split(" \n\t ")

		require.NoError(t, err)
		assert.Empty(t, chunks)
	})

	t.Run("keeps short text in one chunk", func(t *testing.T) {
		t.Parallel()

		s, err := textsplitter.NewSplitter()
		require.NoError(t, err)

		chunks, err := s.Split("Name: Jane Doe\nHeadline: Staff Engineer")

		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Contains(t, chunks[0], "Jane Doe")
		assert.Contains(t, chunks[0], "Staff Engineer")
	})

	t.Run("splits long text on lines within the size limit", func(t *testing.T) {
		t.Parallel()

		s, err := textsplitter.NewSplitter(textsplitter.WithChunkSize(100), textsplitter.WithChunkOverlap(20))
		require.NoError(t, err)

		var lines []string
		for i := range 30 {
			lines = append(lines, fmt.Sprintf("%d. Engineer at Company %d", i+1, i+1))
		}
		chunks, err := s.Split(strings.Join(lines, "\n"))

		require.NoError(t, err)
		assert.Greater(t, len(chunks), 1)
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), 100)
		}
		assert.Contains(t, chunks[0], "1. Engineer at Company 1")
		assert.Contains(t, chunks[len(chunks)-1], "30. Engineer at Company 30")
	})
}

func TestNewSplitter_RejectsInvalidSizes(t *testing.T) {
	t.Parallel()

	_, err := textsplitter.NewSplitter(textsplitter.WithChunkSize(0))
	assert.Equal(t, linkex.EINVALID, linkex.ErrorCode(err))

	_, err = textsplitter.NewSplitter(textsplitter.WithChunkSize(100), textsplitter.WithChunkOverlap(100))
	assert.Equal(t, linkex.EINVALID, linkex.ErrorCode(err))
}
