package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/linkex/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://www.linkedin.com/in/jane-doe/"))

	f.Add("https://www.linkedin.com/in/jane-doe/")

	assert.True(t, f.Test("https://www.linkedin.com/in/jane-doe/"))
	assert.False(t, f.Test("https://www.linkedin.com/in/john-roe/"))
}

func TestFilter_TestAndAdd(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.TestAndAdd("https://www.linkedin.com/company/acme/"))
	assert.True(t, f.TestAndAdd("https://www.linkedin.com/company/acme/"))
	assert.True(t, f.Test("https://www.linkedin.com/company/acme/"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("https://www.linkedin.com/in/a/")
	f.Add("https://www.linkedin.com/in/b/")
	f.Add("https://www.linkedin.com/in/c/")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_NoFalseNegatives(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(500, 0.01)
	for i := range 500 {
		f.Add(fmt.Sprintf("https://www.linkedin.com/in/member-%d/", i))
	}
	for i := range 500 {
		assert.True(t, f.Test(fmt.Sprintf("https://www.linkedin.com/in/member-%d/", i)))
	}
}
