package linkextract

import (
	"bytes"
	"regexp"

	"github.com/ledongthuc/pdf"
)

// uriAnnotation matches the /URI entries of PDF link annotations in the raw
// document bytes. Parsing the full annotation tree is not worth it for a
// best-effort scan.
var uriAnnotation = regexp.MustCompile(`/URI\s*\(([^)]+)\)`)

// FromPdf collects candidate URLs from a summary PDF: link-annotation URIs
// found in the raw bytes plus URL-shaped substrings recovered from every
// page's extracted text. Malformed or unreadable documents yield an empty
// result, never an error.
func FromPdf(data []byte) []string {
	seen := make(map[string]struct{})
	var links []string
	add := func(u string) {
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		links = append(links, u)
	}

	for _, m := range uriAnnotation.FindAllSubmatch(data, -1) {
		add(string(m[1]))
	}

	for _, u := range pageTextUrls(data) {
		add(u)
	}

	return links
}

func pageTextUrls(data []byte) (urls []string) {
	// The pdf package panics on some malformed files; a broken summary sheet
	// must degrade to "no links found".
	defer func() {
		if r := recover(); r != nil {
			urls = nil
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil
	}

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		urls = append(urls, FindUrls(text)...)
	}
	return urls
}
