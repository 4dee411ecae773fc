package service

import (
	"context"

	"licitaciones-ai-be/internal/entity"
	"licitaciones-ai-be/pkg/ai/gemini"
	"licitaciones-ai-be/pkg/docs/linkextract"
	"licitaciones-ai-be/pkg/docs/probe"
)

// Narrow views over the infrastructure packages so services can be tested
// against fakes. The concrete types in pkg/ satisfy these.

type ObjectStorage interface {
	Upload(ctx context.Context, prefix, fileName, contentType string, data []byte) (string, error)
	Download(ctx context.Context, publicUrl string) ([]byte, string, error)
	Delete(ctx context.Context, publicUrl string) error
}

type AnalysisClient interface {
	AnalyzeTender(ctx context.Context, req gemini.AnalysisRequest) (*entity.AnalysisResult, error)
	ExtractMetadata(ctx context.Context, doc gemini.DocumentPart) (*gemini.Metadata, error)
}

type PageScraper interface {
	ScrapePage(ctx context.Context, pageUrl string) linkextract.ScrapeResult
}

type LinkProber interface {
	ProbeLinks(ctx context.Context, candidates []string) probe.Result
}
