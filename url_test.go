package linkex_test

import (
	"testing"

	"github.com/fwojciec/linkex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"adds trailing slash to profile", "https://www.linkedin.com/in/jane-doe", "https://www.linkedin.com/in/jane-doe/"},
		{"strips query and fragment", "https://www.linkedin.com/in/jane-doe/?trk=public#about", "https://www.linkedin.com/in/jane-doe/"},
		{"maps country subdomain", "https://de.linkedin.com/in/jane-doe/", "https://www.linkedin.com/in/jane-doe/"},
		{"maps bare host and http", "http://linkedin.com/company/acme", "https://www.linkedin.com/company/acme/"},
		{"drops sub-pages of profile", "https://www.linkedin.com/in/jane-doe/details/experience/", "https://www.linkedin.com/in/jane-doe/"},
		{"collapses duplicate slashes", "https://www.linkedin.com//posts//jane_post-123", "https://www.linkedin.com/posts/jane_post-123"},
		{"keeps post path without slash", "https://www.linkedin.com/posts/jane_post-123", "https://www.linkedin.com/posts/jane_post-123"},
		{"lowercases host", "https://WWW.LinkedIn.com/in/jane-doe/", "https://www.linkedin.com/in/jane-doe/"},
		{"keeps other hosts", "http://127.0.0.1:8080/in/jane?x=1", "http://127.0.0.1:8080/in/jane/"},
		{"root path", "https://example.com", "https://example.com/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := linkex.NormalizeURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeURL_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "ftp://www.linkedin.com/in/x", "not a url", "https://", "mailto:jane@example.com"} {
		_, err := linkex.NormalizeURL(in)
		require.Error(t, err, in)
		assert.Equal(t, linkex.EINVALID, linkex.ErrorCode(err), in)
	}
}

func TestClassifyURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want linkex.Kind
	}{
		{"https://www.linkedin.com/in/jane-doe/", linkex.KindProfile},
		{"https://www.linkedin.com/company/acme/about/", linkex.KindCompany},
		{"https://www.linkedin.com/school/stanford-university/", linkex.KindCompany},
		{"https://www.linkedin.com/posts/jane_hello-activity-123", linkex.KindPost},
		{"https://www.linkedin.com/feed/update/urn:li:activity:123/", linkex.KindPost},
		{"https://www.linkedin.com/pulse/on-writing-jane-doe", linkex.KindArticle},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := linkex.ClassifyURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyURL_Rejects(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"https://www.linkedin.com/jobs/view/123",
		"https://www.linkedin.com/login",
		"https://www.linkedin.com/feed/",
		"https://www.linkedin.com/in/",
		"https://example.com/in/jane-doe/",
	} {
		_, err := linkex.ClassifyURL(in)
		require.Error(t, err, in)
		assert.Equal(t, linkex.EINVALID, linkex.ErrorCode(err), in)
	}
}

func TestSlugFromURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "jane-doe", linkex.SlugFromURL("https://www.linkedin.com/in/jane-doe/"))
	assert.Equal(t, "acme", linkex.SlugFromURL("https://www.linkedin.com/company/acme/"))
	assert.Equal(t, "urn:li:activity:123", linkex.SlugFromURL("https://www.linkedin.com/feed/update/urn:li:activity:123/"))
	assert.Equal(t, "", linkex.SlugFromURL("https://www.linkedin.com/"))
}

func TestIsAuthwallURL(t *testing.T) {
	t.Parallel()

	assert.True(t, linkex.IsAuthwallURL("https://www.linkedin.com/authwall?trk=gf&sessionRedirect=x"))
	assert.True(t, linkex.IsAuthwallURL("https://www.linkedin.com/login"))
	assert.True(t, linkex.IsAuthwallURL("https://www.linkedin.com/uas/login?session_redirect=y"))
	assert.False(t, linkex.IsAuthwallURL("https://www.linkedin.com/in/jane-doe/"))
	assert.False(t, linkex.IsAuthwallURL("://bad"))
}
