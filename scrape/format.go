package scrape

import "fmt"

// Truncate shortens a query or URL for display, keeping the end which is
// usually the more informative part.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return s[:min(len(s), maxLen)]
	}
	if len(s) <= maxLen {
		return s
	}
	return "..." + s[len(s)-maxLen+3:]
}

// FormatCount formats a count of places in human-readable form.
func FormatCount(n int) string {
	if n == 1 {
		return "1 place"
	}
	return fmt.Sprintf("%d places", n)
}
