package linkextract

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"licitaciones-ai-be/pkg/docs/classify"
)

// docExtensions mark an anchor as a document candidate regardless of its text.
var docExtensions = []string{".pdf", ".doc", ".docx", ".zip", ".rar", ".xls", ".xlsx"}

// discoveryKeywords mark an anchor as a candidate when its text or attributes
// suggest a downloadable tender document.
var discoveryKeywords = []string{"descarga", "pliego", "doc"}

// ScrapeResult is the outcome of scanning one platform page: a candidate URL
// set plus at most one preferred direct hit per document slot.
type ScrapeResult struct {
	Candidates []string
	AdminUrl   string
	TechUrl    string
}

// PageFetcher fetches third-party pages, optionally through a relay that
// strips CORS restrictions (kept configurable for parity with deployments
// that front the scraper with one).
type PageFetcher struct {
	client *http.Client
	relay  string
}

func NewPageFetcher(client *http.Client, relay string) *PageFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &PageFetcher{client: client, relay: relay}
}

func (f *PageFetcher) wrap(target string) string {
	if f.relay == "" {
		return target
	}
	return f.relay + url.QueryEscape(target)
}

// ScrapePage fetches the tender platform page and walks its anchors. Fetch or
// parse failures yield an empty result; scraping never fails the caller.
func (f *PageFetcher) ScrapePage(ctx context.Context, pageUrl string) ScrapeResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.wrap(pageUrl), nil)
	if err != nil {
		return ScrapeResult{}
	}
	res, err := f.client.Do(req)
	if err != nil {
		return ScrapeResult{}
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return ScrapeResult{}
	}
	body, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return ScrapeResult{}
	}
	return ScrapeAnchors(string(body), pageUrl)
}

// ScrapeAnchors parses the page HTML and classifies its anchors: document
// candidates by extension or discovery keyword, and the first anchor matching
// ADMIN keywords and the first matching TECH keywords as preferred hits.
func ScrapeAnchors(pageHtml, pageUrl string) ScrapeResult {
	doc, err := html.Parse(strings.NewReader(pageHtml))
	if err != nil {
		return ScrapeResult{}
	}

	base, err := url.Parse(pageUrl)
	if err != nil {
		base = nil
	}

	result := ScrapeResult{}
	seen := make(map[string]struct{})

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			href := attrValue(n, "href")
			if href != "" {
				resolved := resolveUrl(base, href)
				if resolved != "" {
					probe := classify.Normalize(resolved + " " + anchorText(n) + " " + attrValue(n, "title") + " " + attrValue(n, "download"))

					if isCandidate(resolved, probe) {
						if _, ok := seen[resolved]; !ok {
							seen[resolved] = struct{}{}
							result.Candidates = append(result.Candidates, resolved)
						}
					}
					if result.AdminUrl == "" && classify.MatchesAdmin(probe) {
						result.AdminUrl = resolved
					}
					if result.TechUrl == "" && classify.MatchesTech(probe) {
						result.TechUrl = resolved
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return result
}

func isCandidate(resolved, probe string) bool {
	lower := strings.ToLower(resolved)
	for _, ext := range docExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	for _, kw := range discoveryKeywords {
		if strings.Contains(probe, kw) {
			return true
		}
	}
	return false
}

func resolveUrl(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" && ref.Scheme != "mailto" {
		return ""
	}
	return ref.String()
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func anchorText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
