package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"licitaciones-ai-be/internal/dto"
	"licitaciones-ai-be/internal/entity"
	"licitaciones-ai-be/internal/pkg/serverutils"
	"licitaciones-ai-be/pkg/ai/gemini"
)

type tenderFixture struct {
	service   ITenderService
	uow       *fakeUow
	store     *fakeStore
	ai        *fakeAI
	publisher *fakePublisher
}

func newTenderFixture() *tenderFixture {
	uow := newFakeUow()
	store := newFakeStore()
	ai := &fakeAI{}
	publisher := &fakePublisher{}
	rules := NewRulesService(&fakeFactory{uow: uow})
	svc := NewTenderService(&fakeFactory{uow: uow}, store, ai, rules, publisher, noopLogger{})
	return &tenderFixture{service: svc, uow: uow, store: store, ai: ai, publisher: publisher}
}

func apiStatus(t *testing.T, err error) int {
	t.Helper()
	var apiErr *serverutils.ApiError
	require.ErrorAs(t, err, &apiErr)
	return apiErr.Status
}

func TestCreateTenderStartsPending(t *testing.T) {
	f := newTenderFixture()

	res, err := f.service.Create(context.Background(), &dto.CreateTenderRequest{
		Name:            "Mantenimiento de parques",
		ExpedientNumber: "EXP-2024-001",
	}, nil, nil, nil)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, res.Id)

	stored, err := f.uow.tenders.FindOne(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.StatusPending, stored.Status)
	assert.Len(t, f.publisher.payloads, 1)
}

func TestCreateTenderUploadsFilesConcurrently(t *testing.T) {
	f := newTenderFixture()

	summary := &dto.UploadedFile{FileName: "resumen.pdf", ContentType: "application/pdf", Data: []byte("x")}
	admin := &dto.UploadedFile{FileName: "pcap.pdf", ContentType: "application/pdf", Data: []byte("x")}
	tech := &dto.UploadedFile{FileName: "ppt.pdf", ContentType: "application/pdf", Data: []byte("x")}

	res, err := f.service.Create(context.Background(), &dto.CreateTenderRequest{
		Name: "Obra civil",
	}, summary, admin, tech)
	require.NoError(t, err)

	stored, err := f.service.Show(context.Background(), res.Id)
	require.NoError(t, err)
	assert.Equal(t, "http://store.local/docs/summaries/resumen.pdf", stored.SummaryUrl)
	assert.Equal(t, "http://store.local/docs/admin/pcap.pdf", stored.AdminUrl)
	assert.Equal(t, "http://store.local/docs/tech/ppt.pdf", stored.TechUrl)
	assert.Len(t, f.store.uploads, 3)
}

func TestCreateTenderRejectsNormalizedDuplicate(t *testing.T) {
	f := newTenderFixture()

	_, err := f.service.Create(context.Background(), &dto.CreateTenderRequest{
		Name:            "Servicio de limpieza",
		ExpedientNumber: "EXP-77",
	}, nil, nil, nil)
	require.NoError(t, err)

	// Same identity modulo case and whitespace.
	_, err = f.service.Create(context.Background(), &dto.CreateTenderRequest{
		Name:            "  SERVICIO DE LIMPIEZA ",
		ExpedientNumber: "exp-77",
	}, &dto.UploadedFile{FileName: "a.pdf", Data: []byte("x")}, nil, nil)
	assert.Equal(t, fiber.StatusConflict, apiStatus(t, err))

	// The rejected create must not have stored anything.
	assert.Empty(t, f.store.uploads)
	count, _ := f.uow.tenders.Count(context.Background())
	assert.EqualValues(t, 1, count)
}

func TestUpdateStatusRejectsUnknownState(t *testing.T) {
	f := newTenderFixture()
	res, err := f.service.Create(context.Background(), &dto.CreateTenderRequest{Name: "T"}, nil, nil, nil)
	require.NoError(t, err)

	_, err = f.service.UpdateStatus(context.Background(), &dto.UpdateStatusRequest{Id: res.Id, Status: "DONE"})
	assert.Equal(t, fiber.StatusBadRequest, apiStatus(t, err))

	updated, err := f.service.UpdateStatus(context.Background(), &dto.UpdateStatusRequest{Id: res.Id, Status: "ARCHIVED"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusArchived, updated.Status)
	assert.Equal(t, "ARCHIVADO", updated.StatusLabel)
}

func TestAnalyzeMapsDecisionToStatus(t *testing.T) {
	cases := []struct {
		decision entity.AnalysisDecision
		want     entity.TenderStatus
	}{
		{entity.DecisionKeep, entity.StatusInProgress},
		{entity.DecisionDiscard, entity.StatusRejected},
		{entity.DecisionReview, entity.StatusInDoubt},
		{"", entity.StatusPending},
		{"MAYBE", entity.StatusPending},
	}

	for _, tc := range cases {
		t.Run(string(tc.decision), func(t *testing.T) {
			f := newTenderFixture()
			f.ai.analysis = &entity.AnalysisResult{Decision: tc.decision}

			res, err := f.service.Create(context.Background(), &dto.CreateTenderRequest{Name: "T"}, nil, nil, nil)
			require.NoError(t, err)

			analyzed, err := f.service.Analyze(context.Background(), res.Id)
			require.NoError(t, err)
			assert.Equal(t, tc.want, analyzed.Status)
			require.NotNil(t, analyzed.AiAnalysis)
			assert.Equal(t, tc.decision, analyzed.AiAnalysis.Decision)
		})
	}
}

func TestAnalyzeCarriesRulesAndStoredDocuments(t *testing.T) {
	f := newTenderFixture()
	f.ai.analysis = &entity.AnalysisResult{Decision: entity.DecisionKeep}

	summary := &dto.UploadedFile{FileName: "resumen.pdf", ContentType: "application/pdf", Data: []byte("pdfdata")}
	res, err := f.service.Create(context.Background(), &dto.CreateTenderRequest{Name: "T"}, summary, nil, nil)
	require.NoError(t, err)
	f.store.downloads["http://store.local/docs/summaries/resumen.pdf"] = []byte("pdfdata")

	require.NoError(t, f.uow.rules.Set(context.Background(), "solo ENS nivel alto"))

	_, err = f.service.Analyze(context.Background(), res.Id)
	require.NoError(t, err)

	require.Len(t, f.ai.analysisReqs, 1)
	req := f.ai.analysisReqs[0]
	assert.Equal(t, "solo ENS nivel alto", req.Rules)
	require.Len(t, req.Documents, 1)
	assert.Equal(t, []byte("pdfdata"), req.Documents[0].Data)
}

func TestAnalyzeMissingApiKeyIsConfigError(t *testing.T) {
	f := newTenderFixture()
	f.ai.analysisErr = gemini.ErrMissingApiKey

	res, err := f.service.Create(context.Background(), &dto.CreateTenderRequest{Name: "T"}, nil, nil, nil)
	require.NoError(t, err)

	_, err = f.service.Analyze(context.Background(), res.Id)
	assert.Equal(t, fiber.StatusServiceUnavailable, apiStatus(t, err))
}

func TestAnalyzeUnknownTender(t *testing.T) {
	f := newTenderFixture()
	_, err := f.service.Analyze(context.Background(), uuid.New())
	assert.Equal(t, fiber.StatusNotFound, apiStatus(t, err))
}

func TestAnalyzeFailureKeepsPreviousResult(t *testing.T) {
	f := newTenderFixture()
	f.ai.analysis = &entity.AnalysisResult{Decision: entity.DecisionKeep}

	res, err := f.service.Create(context.Background(), &dto.CreateTenderRequest{Name: "T"}, nil, nil, nil)
	require.NoError(t, err)
	_, err = f.service.Analyze(context.Background(), res.Id)
	require.NoError(t, err)

	f.ai.analysis = nil
	f.ai.analysisErr = errors.New("model timeout")
	_, err = f.service.Analyze(context.Background(), res.Id)
	assert.Equal(t, fiber.StatusUnprocessableEntity, apiStatus(t, err))

	// The previous analysis and its status survive the failed run.
	current, err := f.service.Show(context.Background(), res.Id)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, current.Status)
	require.NotNil(t, current.AiAnalysis)
}

func TestDeleteRemovesObjectsThenRow(t *testing.T) {
	f := newTenderFixture()

	summary := &dto.UploadedFile{FileName: "resumen.pdf", Data: []byte("x")}
	admin := &dto.UploadedFile{FileName: "pcap.pdf", Data: []byte("x")}
	res, err := f.service.Create(context.Background(), &dto.CreateTenderRequest{Name: "T"}, summary, admin, nil)
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(context.Background(), res.Id))

	assert.ElementsMatch(t, []string{
		"http://store.local/docs/summaries/resumen.pdf",
		"http://store.local/docs/admin/pcap.pdf",
	}, f.store.deleted)

	count, _ := f.uow.tenders.Count(context.Background())
	assert.EqualValues(t, 0, count)
}

func TestDeleteSurvivesStorageFailure(t *testing.T) {
	f := newTenderFixture()
	summary := &dto.UploadedFile{FileName: "resumen.pdf", Data: []byte("x")}
	res, err := f.service.Create(context.Background(), &dto.CreateTenderRequest{Name: "T"}, summary, nil, nil)
	require.NoError(t, err)

	f.store.deleteErr = errors.New("bucket offline")
	require.NoError(t, f.service.Delete(context.Background(), res.Id))

	count, _ := f.uow.tenders.Count(context.Background())
	assert.EqualValues(t, 0, count)
}

func TestListFiltersByStatus(t *testing.T) {
	f := newTenderFixture()

	a, err := f.service.Create(context.Background(), &dto.CreateTenderRequest{Name: "A", ExpedientNumber: "1"}, nil, nil, nil)
	require.NoError(t, err)
	_, err = f.service.Create(context.Background(), &dto.CreateTenderRequest{Name: "B", ExpedientNumber: "2"}, nil, nil, nil)
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(context.Background(), &dto.UpdateStatusRequest{Id: a.Id, Status: "ARCHIVED"})
	require.NoError(t, err)

	archived, err := f.service.List(context.Background(), &dto.ListTendersRequest{Status: "ARCHIVED"})
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, "A", archived[0].Name)

	_, err = f.service.List(context.Background(), &dto.ListTendersRequest{Status: "NOPE"})
	assert.Equal(t, fiber.StatusBadRequest, apiStatus(t, err))
}
