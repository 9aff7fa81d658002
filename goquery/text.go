package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/linkex"
)

// parseDocument parses html, rejecting blank input.
func parseDocument(html string) (*goquery.Document, error) {
	if strings.TrimSpace(html) == "" {
		return nil, linkex.Errorf(linkex.EINVALID, "empty HTML")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, linkex.Errorf(linkex.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// cleanText collapses all runs of whitespace to single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// text returns the whitespace-collapsed text of a selection.
func text(sel *goquery.Selection) string {
	return cleanText(sel.Text())
}

// firstText returns the text of the first non-empty match among the
// selectors, tried in order.
func firstText(root *goquery.Selection, selectors ...string) string {
	for _, selector := range selectors {
		var found string
		root.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			found = text(s)
			return found == ""
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// metaContent returns the content attribute of the first meta tag with the
// given property or name.
func metaContent(doc *goquery.Document, key string) string {
	sel := doc.Find(`meta[property="` + key + `"], meta[name="` + key + `"]`).First()
	content, _ := sel.Attr("content")
	return cleanText(content)
}

// parseCount reads an engagement or follower count such as "1,234",
// "1.2K reactions" or "3M followers". Returns linkex.UnknownCount when no
// number is present.
func parseCount(s string) int {
	s = strings.TrimSpace(s)
	start := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if start < 0 {
		return linkex.UnknownCount
	}

	end := start
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == ',' || s[end] == '.') {
		end++
	}
	number := strings.TrimRight(strings.ReplaceAll(s[start:end], ",", ""), ".")

	multiplier := 1.0
	if end < len(s) {
		switch s[end] {
		case 'k', 'K':
			multiplier = 1e3
		case 'm', 'M':
			multiplier = 1e6
		case 'b', 'B':
			multiplier = 1e9
		}
	}

	f, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return linkex.UnknownCount
	}
	return int(f*multiplier + 0.5)
}

// isAuthwallPage reports whether the document is a login interstitial
// rather than public content.
func isAuthwallPage(doc *goquery.Document) bool {
	if doc.Find(".authwall-join-form, .authwall-sign-in-form, form.login__form, form[action*='login-submit']").Length() > 0 {
		return true
	}
	if canonical, ok := doc.Find(`link[rel="canonical"]`).Attr("href"); ok && linkex.IsAuthwallURL(canonical) {
		return true
	}
	return false
}

// IsAuthwallHTML reports whether html is a login interstitial. Blank or
// unparsable input is not treated as one.
func IsAuthwallHTML(html string) bool {
	doc, err := parseDocument(html)
	if err != nil {
		return false
	}
	return isAuthwallPage(doc)
}

// checkPage parses html and rejects login walls.
func checkPage(html, sourceURL string) (*goquery.Document, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}
	if isAuthwallPage(doc) {
		return nil, linkex.Errorf(linkex.EUNAUTHORIZED, "%s returned a login wall instead of public content", sourceURL)
	}
	return doc, nil
}
