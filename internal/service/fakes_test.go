package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"licitaciones-ai-be/internal/entity"
	"licitaciones-ai-be/internal/repository/contract"
	"licitaciones-ai-be/internal/repository/specification"
	"licitaciones-ai-be/internal/repository/unitofwork"
	"licitaciones-ai-be/pkg/ai/gemini"
	"licitaciones-ai-be/pkg/docs/linkextract"
	"licitaciones-ai-be/pkg/docs/probe"
)

// In-memory stand-ins for the persistence and infrastructure layers.

type fakeTenderRepo struct {
	mu      sync.Mutex
	tenders map[uuid.UUID]*entity.Tender
}

func newFakeTenderRepo() *fakeTenderRepo {
	return &fakeTenderRepo{tenders: make(map[uuid.UUID]*entity.Tender)}
}

func (r *fakeTenderRepo) Create(ctx context.Context, tender *entity.Tender) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tender.Id == uuid.Nil {
		tender.Id = uuid.New()
	}
	tender.CreatedAt = time.Now()
	copied := *tender
	r.tenders[tender.Id] = &copied
	return nil
}

func (r *fakeTenderRepo) Save(ctx context.Context, tender *entity.Tender) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *tender
	r.tenders[tender.Id] = &copied
	return nil
}

func (r *fakeTenderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tenders, id)
	return nil
}

func (r *fakeTenderRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tender, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tender := range r.tenders {
		if matches(tender, specs) {
			copied := *tender
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeTenderRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tender, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Tender
	for _, tender := range r.tenders {
		if matches(tender, specs) {
			copied := *tender
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeTenderRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// matches interprets the specification objects the services actually use.
func matches(tender *entity.Tender, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if tender.Id != s.ID {
				return false
			}
		case specification.ByNormalizedIdentity:
			if !tender.SameIdentity(s.ExpedientNumber, s.Name) {
				return false
			}
		case specification.ByStatus:
			if string(tender.Status) != s.Status {
				return false
			}
		case specification.NameContains:
			if !strings.Contains(strings.ToLower(tender.Name), strings.ToLower(s.Fragment)) {
				return false
			}
		case specification.ExpedientContains:
			if !strings.Contains(strings.ToLower(tender.ExpedientNumber), strings.ToLower(s.Fragment)) {
				return false
			}
		case specification.OrderBy, specification.Pagination:
			// ordering is irrelevant for these tests
		}
	}
	return true
}

type fakeRulesRepo struct {
	mu      sync.Mutex
	content string
}

func (r *fakeRulesRepo) Get(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.content, nil
}

func (r *fakeRulesRepo) Set(ctx context.Context, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.content = content
	return nil
}

type fakeUow struct {
	tenders *fakeTenderRepo
	rules   *fakeRulesRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{tenders: newFakeTenderRepo(), rules: &fakeRulesRepo{}}
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) TenderRepository() contract.TenderRepository { return u.tenders }
func (u *fakeUow) BusinessRulesRepository() contract.BusinessRulesRepository {
	return u.rules
}

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type fakeStore struct {
	mu        sync.Mutex
	uploads   []string
	deleted   []string
	deleteErr error
	downloads map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{downloads: make(map[string][]byte)}
}

func (s *fakeStore) Upload(ctx context.Context, prefix, fileName, contentType string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	publicUrl := fmt.Sprintf("http://store.local/docs/%s/%s", prefix, fileName)
	s.uploads = append(s.uploads, publicUrl)
	return publicUrl, nil
}

func (s *fakeStore) Download(ctx context.Context, publicUrl string) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.downloads[publicUrl]
	if !ok {
		return nil, "", fmt.Errorf("no such object: %s", publicUrl)
	}
	return data, "application/pdf", nil
}

func (s *fakeStore) Delete(ctx context.Context, publicUrl string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, publicUrl)
	return nil
}

type fakeAI struct {
	analysis    *entity.AnalysisResult
	analysisErr error
	metadata    *gemini.Metadata
	metadataErr error

	analysisReqs []gemini.AnalysisRequest
}

func (a *fakeAI) AnalyzeTender(ctx context.Context, req gemini.AnalysisRequest) (*entity.AnalysisResult, error) {
	a.analysisReqs = append(a.analysisReqs, req)
	if a.analysisErr != nil {
		return nil, a.analysisErr
	}
	return a.analysis, nil
}

func (a *fakeAI) ExtractMetadata(ctx context.Context, doc gemini.DocumentPart) (*gemini.Metadata, error) {
	if a.metadataErr != nil {
		return nil, a.metadataErr
	}
	if a.metadata == nil {
		return &gemini.Metadata{}, nil
	}
	return a.metadata, nil
}

type fakeScraper struct {
	result linkextract.ScrapeResult
	calls  []string
}

func (s *fakeScraper) ScrapePage(ctx context.Context, pageUrl string) linkextract.ScrapeResult {
	s.calls = append(s.calls, pageUrl)
	return s.result
}

type fakeProber struct {
	result probe.Result
	calls  [][]string
}

func (p *fakeProber) ProbeLinks(ctx context.Context, candidates []string) probe.Result {
	p.calls = append(p.calls, candidates)
	return p.result
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }
