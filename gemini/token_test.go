package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/linkex"
	"github.com/fwojciec/linkex/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("")
	require.NoError(t, err)

	var _ linkex.TokenCounter = tc

	t.Run("counts tokens in record text", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "Name: Jane Doe\nHeadline: Staff Engineer at Acme")

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("blank text returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "  \n")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("longer text returns more tokens", func(t *testing.T) {
		t.Parallel()

		shortCount, err := tc.CountTokens(context.Background(), "Engineer")
		require.NoError(t, err)

		longCount, err := tc.CountTokens(context.Background(), "Staff Engineer at Acme since 2020, previously a senior engineer at Initech working on data platforms.")
		require.NoError(t, err)

		assert.Greater(t, longCount, shortCount)
	})
}

func TestNewTokenCounter_RejectsUnknownModel(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewTokenCounter("not-a-model")

	assert.Equal(t, linkex.EINVALID, linkex.ErrorCode(err))
}
