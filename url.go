package linkex

import (
	"net/url"
	"strings"
)

// CanonicalHost is the host all recognized network URLs are normalized to.
const CanonicalHost = "www.linkedin.com"

// NormalizeURL returns the canonical form of a page URL used as the record key.
//
// The scheme must be http or https. Known hosts (bare, www and country
// subdomains) are rewritten to CanonicalHost over https. Query strings and
// fragments are dropped, repeated slashes are collapsed, and profile and
// company paths get exactly one trailing slash. Other hosts keep their
// scheme and host but are otherwise cleaned the same way.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", Errorf(EINVALID, "URL required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", Errorf(EINVALID, "URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", raw)
	}

	host := strings.ToLower(u.Host)
	if isKnownHost(host) {
		host = CanonicalHost
		scheme = "https"
	}

	path := collapseSlashes(u.EscapedPath())
	segments := pathSegments(path)
	if len(segments) >= 2 && isDirectorySection(segments[0]) {
		path = "/" + segments[0] + "/" + segments[1] + "/"
	} else if path == "" {
		path = "/"
	}

	return scheme + "://" + host + path, nil
}

// ClassifyURL returns the record kind served at the given URL.
// Returns EINVALID for URLs that do not point at a public profile,
// company, school, post or article page.
func ClassifyURL(raw string) (Kind, error) {
	normalized, err := NormalizeURL(raw)
	if err != nil {
		return KindUnknown, err
	}
	u, err := url.Parse(normalized)
	if err != nil {
		return KindUnknown, Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	if u.Host != CanonicalHost {
		return KindUnknown, Errorf(EINVALID, "unsupported host %q; pass an explicit kind for other hosts", u.Host)
	}

	segments := pathSegments(u.Path)
	if len(segments) >= 2 {
		switch segments[0] {
		case "in":
			return KindProfile, nil
		case "company", "school":
			return KindCompany, nil
		case "posts":
			return KindPost, nil
		case "pulse":
			return KindArticle, nil
		case "feed":
			if segments[1] == "update" && len(segments) >= 3 {
				return KindPost, nil
			}
		}
	}
	return KindUnknown, Errorf(EINVALID, "URL %q is not a public profile, company, post or article page", raw)
}

// SlugFromURL returns the identifying path segment of a page URL,
// e.g. "jane-doe" for https://www.linkedin.com/in/jane-doe/.
func SlugFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	segments := pathSegments(u.Path)
	switch {
	case len(segments) == 0:
		return ""
	case len(segments) >= 3 && segments[0] == "feed" && segments[1] == "update":
		return segments[2]
	case len(segments) >= 2:
		return segments[1]
	default:
		return segments[0]
	}
}

func isKnownHost(host string) bool {
	host = strings.TrimSuffix(host, ":443")
	host = strings.TrimSuffix(host, ":80")
	return host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com")
}

func isDirectorySection(segment string) bool {
	return segment == "in" || segment == "company" || segment == "school"
}

func collapseSlashes(path string) string {
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	return path
}

func pathSegments(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// IsAuthwallURL reports whether a URL is a login interstitial served in
// place of public content.
func IsAuthwallURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	for _, prefix := range []string{"/authwall", "/login", "/uas/login", "/checkpoint", "/signup"} {
		if strings.HasPrefix(u.Path, prefix) {
			return true
		}
	}
	return false
}
