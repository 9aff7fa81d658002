package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/fwojciec/linkex"
	"github.com/temoto/robotstxt"
)

// Ensure RobotsChecker implements linkex.RobotsChecker.
var _ linkex.RobotsChecker = (*RobotsChecker)(nil)

// RobotsChecker answers whether robots.txt allows fetching a URL.
// Rules are fetched once per scheme and host and cached for the lifetime of
// the checker.
type RobotsChecker struct {
	client    *http.Client
	userAgent string

	mu    sync.Mutex
	cache map[string]*robotstxt.Group
}

// NewRobotsChecker creates a new RobotsChecker with the given HTTP client.
// If client is nil, http.DefaultClient is used. The product token of
// userAgent (the part before the first "/") selects the rule group.
func NewRobotsChecker(client *http.Client, userAgent string) *RobotsChecker {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &RobotsChecker{
		client:    client,
		userAgent: userAgent,
		cache:     make(map[string]*robotstxt.Group),
	}
}

// Allowed reports whether the URL may be fetched.
//
// A robots.txt answered with a 4xx status allows everything. Network
// errors and 5xx responses return EUNAVAILABLE and are not cached.
func (c *RobotsChecker) Allowed(ctx context.Context, rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false, linkex.Errorf(linkex.EINVALID, "invalid URL %q", rawURL)
	}

	group, err := c.group(ctx, u)
	if err != nil {
		return false, err
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return group.Test(path), nil
}

func (c *RobotsChecker) group(ctx context.Context, u *url.URL) (*robotstxt.Group, error) {
	key := u.Scheme + "://" + u.Host

	c.mu.Lock()
	cached, ok := c.cache[key]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	data, err := c.fetchRobots(ctx, key+"/robots.txt")
	if err != nil {
		return nil, err
	}
	group := selectGroup(data, agentToken(c.userAgent))

	c.mu.Lock()
	c.cache[key] = group
	c.mu.Unlock()
	return group, nil
}

func (c *RobotsChecker) fetchRobots(ctx context.Context, robotsURL string) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, linkex.Errorf(linkex.EUNAVAILABLE, "fetching %s: %v", robotsURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, linkex.Errorf(linkex.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, robotsURL)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, linkex.Errorf(linkex.EUNAVAILABLE, "reading %s: %v", robotsURL, err)
	}
	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil, linkex.Errorf(linkex.EINVALID, "cannot parse %s: %v", robotsURL, err)
	}
	return data, nil
}

// selectGroup returns the rule group for the product token. FindGroup
// matches agents by prefix; a group whose agent is only a prefix of the
// token gives way to the "*" group.
func selectGroup(data *robotstxt.RobotsData, token string) *robotstxt.Group {
	if token == "" {
		return data.FindGroup("*")
	}
	group := data.FindGroup(token)
	if group == data.FindGroup(token[:len(token)-1]) {
		return data.FindGroup("*")
	}
	return group
}

// agentToken extracts the lowercase product token from a User-Agent.
func agentToken(userAgent string) string {
	token, _, _ := strings.Cut(userAgent, "/")
	token, _, _ = strings.Cut(token, " ")
	return strings.ToLower(strings.TrimSpace(token))
}
