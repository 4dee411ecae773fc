// Package classify assigns downloaded or linked tender files to a document
// category by keyword matching. It is a best-effort heuristic: a wrong
// category is an accepted outcome, not an error.
package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Category is the document slot a file belongs to.
type Category string

const (
	CategoryAdmin   Category = "ADMIN" // PCAP, administrative clauses
	CategoryTech    Category = "TECH"  // PPT, technical specifications
	CategoryUnknown Category = "UNKNOWN"
)

// adminKeywords are tested before techKeywords: a string matching both sets
// is classified ADMIN.
var adminKeywords = []string{"pcap", "admin", "clausula", "juridico", "caratula", "bases", "anexo"}

var techKeywords = []string{"ppt", "tecnic", "prescrip", "memoria", "proyecto"}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases the input and strips diacritics so that keyword
// matching is accent-insensitive ("Cláusulas" matches "clausula").
func Normalize(s string) string {
	out, _, err := transform.String(stripAccents, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// File classifies a document by its filename and, optionally, the URL it was
// fetched from.
func File(filename, url string) Category {
	combined := Normalize(filename + " " + url)

	for _, kw := range adminKeywords {
		if strings.Contains(combined, kw) {
			return CategoryAdmin
		}
	}
	for _, kw := range techKeywords {
		if strings.Contains(combined, kw) {
			return CategoryTech
		}
	}
	return CategoryUnknown
}

// MatchesAdmin reports whether the text contains any ADMIN keyword.
func MatchesAdmin(text string) bool {
	n := Normalize(text)
	for _, kw := range adminKeywords {
		if strings.Contains(n, kw) {
			return true
		}
	}
	return false
}

// MatchesTech reports whether the text contains any TECH keyword.
func MatchesTech(text string) bool {
	n := Normalize(text)
	for _, kw := range techKeywords {
		if strings.Contains(n, kw) {
			return true
		}
	}
	return false
}
