package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"licitaciones-ai-be/internal/dto"
	"licitaciones-ai-be/internal/pkg/logger"
	"licitaciones-ai-be/internal/pkg/serverutils"
	"licitaciones-ai-be/pkg/ai/gemini"
	"licitaciones-ai-be/pkg/docs/linkextract"
	"licitaciones-ai-be/pkg/docs/probe"
	"licitaciones-ai-be/pkg/storage"
)

// platformMarkers identify links that point at the public procurement
// platform rather than at a document.
var platformMarkers = []string{"contratacion", "placsp"}

type IDiscoveryService interface {
	Discover(ctx context.Context, file *dto.UploadedFile) (*dto.DiscoverResponse, error)
	Scan(ctx context.Context, req *dto.ScanRequest) (*dto.ScanResponse, error)
}

type discoveryService struct {
	ai      AnalysisClient
	scraper PageScraper
	prober  LinkProber
	store   ObjectStorage
	logger  logger.ILogger
}

func NewDiscoveryService(
	ai AnalysisClient,
	scraper PageScraper,
	prober LinkProber,
	store ObjectStorage,
	sysLogger logger.ILogger,
) IDiscoveryService {
	return &discoveryService{
		ai:      ai,
		scraper: scraper,
		prober:  prober,
		store:   store,
		logger:  sysLogger,
	}
}

// Discover runs the registration pipeline over one summary document: AI
// metadata extraction and PDF link extraction in parallel, a platform page
// scrape when the document yields too few candidates, then batched probing.
// Resolved documents are stored and come back as URLs.
func (s *discoveryService) Discover(ctx context.Context, file *dto.UploadedFile) (*dto.DiscoverResponse, error) {
	var (
		meta     *gemini.Metadata
		pdfLinks []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.ai.ExtractMetadata(gctx, gemini.DocumentPart{
			Name:     file.FileName,
			MimeType: file.ContentType,
			Data:     file.Data,
		})
		if err != nil {
			if errors.Is(err, gemini.ErrMissingApiKey) {
				return serverutils.NewConfigError(err.Error())
			}
			s.logger.Warn("discovery", "metadata extraction failed", map[string]interface{}{
				"file":  file.FileName,
				"error": err.Error(),
			})
			m = &gemini.Metadata{}
		}
		meta = m
		return nil
	})
	g.Go(func() error {
		pdfLinks = linkextract.FromPdf(file.Data)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Direct hits from the AI go first so they win their slot in the first
	// probe batch.
	candidates := append([]string{}, meta.AdminUrl, meta.TechUrl)
	candidates = append(candidates, meta.AllLinks...)
	candidates = append(candidates, pdfLinks...)

	pageUrl := meta.TenderPageUrl
	if pageUrl == "" {
		pageUrl = platformPageFrom(candidates)
	}

	if countNonEmpty(candidates) < 2 && pageUrl != "" {
		scraped := s.scraper.ScrapePage(ctx, pageUrl)
		candidates = append([]string{scraped.AdminUrl, scraped.TechUrl}, candidates...)
		candidates = append(candidates, scraped.Candidates...)
	}

	probed := s.prober.ProbeLinks(ctx, candidates)

	summaryUrl := s.uploadDocument(ctx, storage.PrefixSummary, &probe.Document{
		FileName:    file.FileName,
		ContentType: file.ContentType,
		Data:        file.Data,
	})

	return &dto.DiscoverResponse{
		Metadata: dto.TenderMetadata{
			Name:            meta.Name,
			Budget:          meta.Budget,
			ScoringSystem:   meta.ScoringSystem,
			ExpedientNumber: meta.ExpedientNumber,
			Deadline:        meta.Deadline,
			TenderPageUrl:   pageUrl,
			AdminUrl:        meta.AdminUrl,
			TechUrl:         meta.TechUrl,
			AllLinks:        meta.AllLinks,
		},
		SummaryUrl: summaryUrl,
		AdminUrl:   s.uploadDocument(ctx, storage.PrefixAdmin, probed.Admin),
		TechUrl:    s.uploadDocument(ctx, storage.PrefixTech, probed.Tech),
		Log:        probed.Log,
	}, nil
}

// Scan is the manual variant: scrape one platform page and probe whatever it
// links to.
func (s *discoveryService) Scan(ctx context.Context, req *dto.ScanRequest) (*dto.ScanResponse, error) {
	scraped := s.scraper.ScrapePage(ctx, req.PageUrl)

	candidates := append([]string{scraped.AdminUrl, scraped.TechUrl}, scraped.Candidates...)
	probed := s.prober.ProbeLinks(ctx, candidates)

	return &dto.ScanResponse{
		AdminUrl: s.uploadDocument(ctx, storage.PrefixAdmin, probed.Admin),
		TechUrl:  s.uploadDocument(ctx, storage.PrefixTech, probed.Tech),
		Log:      probed.Log,
	}, nil
}

// uploadDocument stores one resolved document and returns its URL. Upload
// failures degrade to an empty slot.
func (s *discoveryService) uploadDocument(ctx context.Context, prefix string, doc *probe.Document) string {
	if doc == nil {
		return ""
	}
	publicUrl, err := s.store.Upload(ctx, prefix, doc.FileName, doc.ContentType, doc.Data)
	if err != nil {
		s.logger.Warn("discovery", "resolved document not stored", map[string]interface{}{
			"file":  doc.FileName,
			"error": err.Error(),
		})
		return ""
	}
	return publicUrl
}

func platformPageFrom(links []string) string {
	for _, link := range links {
		lower := strings.ToLower(link)
		for _, marker := range platformMarkers {
			if strings.Contains(lower, marker) {
				return link
			}
		}
	}
	return ""
}

func countNonEmpty(links []string) int {
	n := 0
	for _, link := range links {
		if link != "" {
			n++
		}
	}
	return n
}
