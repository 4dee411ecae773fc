// Package linkextract recovers candidate document URLs from tender summary
// PDFs and from procurement-platform web pages. Both paths are best effort:
// upstream pages are uncontrolled third-party HTML and the PDFs are scanned
// with pattern matching, so false positives and negatives are tolerated.
package linkextract

import (
	"regexp"
	"strings"
)

// urlPattern recovers URL-shaped substrings from free text: full http(s)
// URLs, www-prefixed hosts, and bare domain/path strings ending in a small
// fixed set of top-level domains.
var urlPattern = regexp.MustCompile(`(?i)\bhttps?://[^\s<>"')\]]+|\bwww\.[^\s<>"')\]]+|\b[a-z0-9][a-z0-9.-]*\.(?:es|com|org|net|eu)/[^\s<>"')\]]+`)

// FindUrls extracts every URL-shaped substring from the given text,
// normalizing www-prefixed and bare-domain matches to https.
func FindUrls(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range urlPattern.FindAllString(text, -1) {
		u := strings.TrimRight(m, ".,;")
		if !strings.HasPrefix(strings.ToLower(u), "http") {
			u = "https://" + u
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
