package scrape

import "fmt"

// TruncateURL shortens a URL for progress display, keeping the end,
// which holds the slug.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats a fetched page size in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatTokens formats a token count in human-readable form.
func FormatTokens(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("~%d tokens", tokens)
	}
	return fmt.Sprintf("~%dk tokens", (tokens+500)/1000)
}

// Summary renders a one-line account of a scrape.
func (r *Result) Summary() string {
	s := fmt.Sprintf("%d saved, %d unchanged, %d skipped, %d failed (%s",
		r.Saved, r.Unchanged, r.Skipped, r.Failed, FormatBytes(r.Bytes))
	if r.Tokens > 0 {
		s += ", " + FormatTokens(r.Tokens)
	}
	return s + ")"
}
