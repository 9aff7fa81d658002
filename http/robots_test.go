package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/linkex"
	linkexhttp "github.com/fwojciec/linkex/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func robotsServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			hits.Add(1)
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
			return
		}
		_, _ = w.Write([]byte("page"))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func TestRobotsChecker_Allowed(t *testing.T) {
	t.Parallel()

	const robots = `# comment
User-agent: *
Disallow: /private/
Allow: /private/public-page
Disallow: /*.pdf$

User-agent: linkex
User-agent: otherbot
Disallow: /in/
Allow: /in/jane/
`

	tests := []struct {
		name      string
		userAgent string
		path      string
		want      bool
	}{
		{"wildcard group allows unlisted path", "somebot/1.0", "/about", true},
		{"wildcard group disallows prefix", "somebot/1.0", "/private/x", false},
		{"longer allow wins", "somebot/1.0", "/private/public-page", true},
		{"end anchor matches", "somebot/1.0", "/docs/file.pdf", false},
		{"end anchor does not match longer path", "somebot/1.0", "/docs/file.pdf.html", true},
		{"specific group replaces wildcard", "linkex/1.0 (+https://example.com)", "/private/x", true},
		{"specific group disallows", "linkex/1.0", "/in/john/", false},
		{"specific group longer allow", "linkex/1.0", "/in/jane/", true},
		{"agent matching ignores case", "LinkEx/2.0", "/in/john/", false},
		{"query string is part of the path", "somebot/1.0", "/private/public-page?trk=x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server, _ := robotsServer(t, http.StatusOK, robots)
			checker := linkexhttp.NewRobotsChecker(server.Client(), tt.userAgent)

			got, err := checker.Allowed(context.Background(), server.URL+tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRobotsChecker_CachesPerHost(t *testing.T) {
	t.Parallel()

	server, hits := robotsServer(t, http.StatusOK, "User-agent: *\nDisallow: /x\n")
	checker := linkexhttp.NewRobotsChecker(server.Client(), "")
	ctx := context.Background()

	for _, path := range []string{"/a", "/b", "/x"} {
		_, err := checker.Allowed(ctx, server.URL+path)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	t.Parallel()

	server, _ := robotsServer(t, http.StatusNotFound, "")
	checker := linkexhttp.NewRobotsChecker(server.Client(), "")

	got, err := checker.Allowed(context.Background(), server.URL+"/in/jane/")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestRobotsChecker_ServerErrorIsUnavailable(t *testing.T) {
	t.Parallel()

	server, hits := robotsServer(t, http.StatusServiceUnavailable, "")
	checker := linkexhttp.NewRobotsChecker(server.Client(), "")
	ctx := context.Background()

	_, err := checker.Allowed(ctx, server.URL+"/in/jane/")
	require.Error(t, err)
	assert.Equal(t, linkex.EUNAVAILABLE, linkex.ErrorCode(err))

	_, _ = checker.Allowed(ctx, server.URL+"/in/jane/")
	assert.Equal(t, int32(2), hits.Load(), "errors are not cached")
}

func TestRobotsChecker_NetworkErrorDenies(t *testing.T) {
	t.Parallel()

	checker := linkexhttp.NewRobotsChecker(nil, "")
	allowed, err := checker.Allowed(context.Background(), "http://non-existent-host.invalid/page")
	require.Error(t, err)
	assert.False(t, allowed)
	assert.Equal(t, linkex.EUNAVAILABLE, linkex.ErrorCode(err))
}

func TestRobotsChecker_InvalidURL(t *testing.T) {
	t.Parallel()

	checker := linkexhttp.NewRobotsChecker(nil, "")
	_, err := checker.Allowed(context.Background(), "not a url")
	assert.Equal(t, linkex.EINVALID, linkex.ErrorCode(err))
}

func TestRobotsChecker_AgentPrefixGroupDoesNotApply(t *testing.T) {
	t.Parallel()

	const robots = `User-agent: link
Disallow: /

User-agent: *
Disallow: /private/
`
	server, _ := robotsServer(t, http.StatusOK, robots)
	checker := linkexhttp.NewRobotsChecker(server.Client(), "linkex/1.0")
	ctx := context.Background()

	got, err := checker.Allowed(ctx, server.URL+"/in/jane/")
	require.NoError(t, err)
	assert.True(t, got, "the link group must not apply to linkex")

	got, err = checker.Allowed(ctx, server.URL+"/private/x")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestRobotsChecker_ExactAgentGroupApplies(t *testing.T) {
	t.Parallel()

	const robots = `User-agent: link
Allow: /

User-agent: linkex
Disallow: /in/
`
	server, _ := robotsServer(t, http.StatusOK, robots)
	checker := linkexhttp.NewRobotsChecker(server.Client(), "linkex/1.0")

	got, err := checker.Allowed(context.Background(), server.URL+"/in/jane/")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestRobotsChecker_UnparsableRobotsIsInvalid(t *testing.T) {
	t.Parallel()

	server, _ := robotsServer(t, http.StatusOK, "Disallow: /\n")
	checker := linkexhttp.NewRobotsChecker(server.Client(), "")

	allowed, err := checker.Allowed(context.Background(), server.URL+"/in/jane/")
	assert.False(t, allowed)
	assert.Equal(t, linkex.EINVALID, linkex.ErrorCode(err))
}
