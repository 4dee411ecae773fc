// Package probe resolves candidate document URLs by downloading them in
// bounded batches and classifying the results into the ADMIN and TECH slots.
// Individual link failures are absorbed: a probe run may legitimately come
// back empty but it never fails.
package probe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"licitaciones-ai-be/pkg/docs/classify"
)

const (
	batchSize = 4
	// Responses smaller than this are treated as redirect or error pages,
	// not documents.
	minDocumentSize = 1024
	maxDocumentSize = 25 << 20
)

// skipHosts are generic web, social, map and video hosts that never serve
// tender documents; they are dropped without a network call.
var skipHosts = []string{
	"facebook.com", "twitter.com", "x.com", "instagram.com", "linkedin.com",
	"youtube.com", "youtu.be", "maps.google", "goo.gl", "wikipedia.org",
	"google.com/maps",
}

// Document is one downloaded tender file.
type Document struct {
	FileName    string
	ContentType string
	SourceUrl   string
	Data        []byte
}

// Result holds at most one document per slot plus the per-link log lines the
// probe produced.
type Result struct {
	Admin *Document
	Tech  *Document
	Log   []string
}

func (r *Result) complete() bool {
	return r.Admin != nil && r.Tech != nil
}

// Prober downloads candidates through a primary relay with a secondary
// fallback. Recently failed URLs are remembered for a short period so a
// re-triggered discovery does not hammer dead links.
type Prober struct {
	client         *http.Client
	primaryRelay   string
	secondaryRelay string
	failures       *gocache.Cache
}

func NewProber(client *http.Client, primaryRelay, secondaryRelay string) *Prober {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Prober{
		client:         client,
		primaryRelay:   primaryRelay,
		secondaryRelay: secondaryRelay,
		failures:       gocache.New(10*time.Minute, 20*time.Minute),
	}
}

// ProbeLinks processes the deduplicated candidate list in sequential batches
// of up to 4 concurrent downloads, stopping early once both slots are filled.
// Within a batch the first ADMIN-classified file wins the ADMIN slot and the
// first TECH file the TECH slot; an UNKNOWN file fills whichever slot is
// still empty, ADMIN preferred.
func (p *Prober) ProbeLinks(ctx context.Context, candidates []string) Result {
	result := Result{}
	urls := dedupe(candidates)

	for start := 0; start < len(urls) && !result.complete(); start += batchSize {
		end := start + batchSize
		if end > len(urls) {
			end = len(urls)
		}
		batch := urls[start:end]
		docs := make([]*Document, len(batch))
		notes := make([]string, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		for i, link := range batch {
			g.Go(func() error {
				docs[i], notes[i] = p.probeOne(gctx, link)
				return nil
			})
		}
		_ = g.Wait() // probeOne never returns an error

		for _, note := range notes {
			if note != "" {
				result.Log = append(result.Log, note)
			}
		}

		for _, doc := range docs {
			if doc == nil {
				continue
			}
			switch classify.File(doc.FileName, doc.SourceUrl) {
			case classify.CategoryAdmin:
				if result.Admin == nil {
					result.Admin = doc
					result.Log = append(result.Log, "[OK] PCAP: "+doc.FileName)
				}
			case classify.CategoryTech:
				if result.Tech == nil {
					result.Tech = doc
					result.Log = append(result.Log, "[OK] PPT: "+doc.FileName)
				}
			default:
				if result.Admin == nil {
					result.Admin = doc
					result.Log = append(result.Log, "[OK] sin clasificar, asignado a PCAP: "+doc.FileName)
				} else if result.Tech == nil {
					result.Tech = doc
					result.Log = append(result.Log, "[OK] sin clasificar, asignado a PPT: "+doc.FileName)
				}
			}
		}
	}

	return result
}

// probeOne downloads a single candidate. All failures collapse into a nil
// document plus a log note.
func (p *Prober) probeOne(ctx context.Context, link string) (*Document, string) {
	if shouldSkip(link) {
		return nil, ""
	}
	if _, failed := p.failures.Get(link); failed {
		return nil, ""
	}

	doc, err := p.download(ctx, p.wrap(p.primaryRelay, link), link)
	if err != nil && p.secondaryRelay != "" {
		doc, err = p.download(ctx, p.wrap(p.secondaryRelay, link), link)
	}
	if err != nil {
		p.failures.SetDefault(link, true)
		return nil, fmt.Sprintf("[SKIP] %s: %v", link, err)
	}
	return doc, ""
}

func (p *Prober) wrap(relay, target string) string {
	if relay == "" {
		return target
	}
	return relay + url.QueryEscape(target)
}

func (p *Prober) download(ctx context.Context, fetchUrl, sourceUrl string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchUrl, nil)
	if err != nil {
		return nil, err
	}
	res, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", res.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxDocumentSize))
	if err != nil {
		return nil, err
	}

	contentType := res.Header.Get("Content-Type")
	if len(data) < minDocumentSize {
		return nil, fmt.Errorf("response too small (%d bytes)", len(data))
	}
	if looksLikeHtml(data, contentType) {
		return nil, fmt.Errorf("response is an html page")
	}

	return &Document{
		FileName:    fileNameFromUrl(sourceUrl),
		ContentType: contentType,
		SourceUrl:   sourceUrl,
		Data:        data,
	}, nil
}

func looksLikeHtml(data []byte, contentType string) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	head := bytes.ToLower(bytes.TrimSpace(data))
	if len(head) > 64 {
		head = head[:64]
	}
	return bytes.HasPrefix(head, []byte("<!doctype")) || bytes.HasPrefix(head, []byte("<html"))
}

func shouldSkip(link string) bool {
	lower := strings.ToLower(link)
	if strings.HasPrefix(lower, "mailto:") {
		return true
	}
	for _, host := range skipHosts {
		if strings.Contains(lower, host) {
			return true
		}
	}
	return false
}

func fileNameFromUrl(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return "document.pdf"
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "document.pdf"
	}
	return name
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
