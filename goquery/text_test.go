package goquery

import (
	"testing"

	"github.com/fwojciec/linkex"
	"github.com/stretchr/testify/assert"
)

func TestParseCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"1,234 reactions", 1234},
		{"1.2K", 1200},
		{"3M followers", 3000000},
		{"12", 12},
		{"  7 comments ", 7},
		{"no number", linkex.UnknownCount},
		{"", linkex.UnknownCount},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseCount(tt.in), tt.in)
	}
}

func TestFollowerCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 987, followerCount("Software · Berlin · 987 followers"))
	assert.Equal(t, 1500, followerCount("1.5K Followers"))
	assert.Equal(t, linkex.UnknownCount, followerCount("Software · Berlin"))
}

func TestCleanText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", cleanText("  a\n\tb   c "))
}

func TestIsAuthwallHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want bool
	}{
		{"join form", `<form class="authwall-join-form"></form>`, true},
		{"sign in form", `<div><form class="authwall-sign-in-form"></form></div>`, true},
		{"login submit action", `<form action="/checkpoint/lg/login-submit"></form>`, true},
		{"canonical authwall", `<head><link rel="canonical" href="https://www.linkedin.com/authwall?trk=x"></head>`, true},
		{"public article", `<head><link rel="canonical" href="https://www.linkedin.com/pulse/notes"></head><article>text</article>`, false},
		{"blank", "  ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsAuthwallHTML(tt.html))
		})
	}
}
