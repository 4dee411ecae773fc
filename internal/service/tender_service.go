package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"licitaciones-ai-be/internal/dto"
	"licitaciones-ai-be/internal/entity"
	"licitaciones-ai-be/internal/pkg/logger"
	"licitaciones-ai-be/internal/pkg/serverutils"
	"licitaciones-ai-be/internal/repository/specification"
	"licitaciones-ai-be/internal/repository/unitofwork"
	"licitaciones-ai-be/pkg/ai/gemini"
	"licitaciones-ai-be/pkg/events"
	"licitaciones-ai-be/pkg/storage"
)

type ITenderService interface {
	List(ctx context.Context, req *dto.ListTendersRequest) ([]*dto.TenderResponse, error)
	Create(ctx context.Context, req *dto.CreateTenderRequest, summary, admin, tech *dto.UploadedFile) (*dto.CreateTenderResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.TenderResponse, error)
	UpdateStatus(ctx context.Context, req *dto.UpdateStatusRequest) (*dto.TenderResponse, error)
	Analyze(ctx context.Context, id uuid.UUID) (*dto.TenderResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type tenderService struct {
	uowFactory       unitofwork.RepositoryFactory
	store            ObjectStorage
	ai               AnalysisClient
	rulesService     IRulesService
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewTenderService(
	uowFactory unitofwork.RepositoryFactory,
	store ObjectStorage,
	ai AnalysisClient,
	rulesService IRulesService,
	publisherService IPublisherService,
	sysLogger logger.ILogger,
) ITenderService {
	return &tenderService{
		uowFactory:       uowFactory,
		store:            store,
		ai:               ai,
		rulesService:     rulesService,
		publisherService: publisherService,
		logger:           sysLogger,
	}
}

func (s *tenderService) List(ctx context.Context, req *dto.ListTendersRequest) ([]*dto.TenderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{}
	if req.Status != "" {
		if !entity.TenderStatus(req.Status).IsValid() {
			return nil, serverutils.NewBadRequest("estado desconocido: " + req.Status)
		}
		specs = append(specs, specification.ByStatus{Status: req.Status})
	}
	if req.Name != "" {
		specs = append(specs, specification.NameContains{Fragment: req.Name})
	}
	if req.Expedient != "" {
		specs = append(specs, specification.ExpedientContains{Fragment: req.Expedient})
	}
	switch req.Sort {
	case "asc":
		specs = append(specs, specification.OrderBy{Field: "deadline"})
	case "desc":
		specs = append(specs, specification.OrderBy{Field: "deadline", Desc: true})
	default:
		specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})
	}

	tenders, err := uow.TenderRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.TenderResponse, 0, len(tenders))
	for _, tender := range tenders {
		result = append(result, toTenderResponse(tender))
	}
	return result, nil
}

func (s *tenderService) Create(ctx context.Context, req *dto.CreateTenderRequest, summary, admin, tech *dto.UploadedFile) (*dto.CreateTenderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Duplicate check runs before any upload so a rejected create leaves no
	// orphaned objects behind.
	existing, err := uow.TenderRepository().FindOne(ctx, specification.ByNormalizedIdentity{
		ExpedientNumber: req.ExpedientNumber,
		Name:            req.Name,
	})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.NewConflict("Ya existe una licitación con ese expediente y nombre")
	}

	tender := &entity.Tender{
		Name:            req.Name,
		Budget:          req.Budget,
		ScoringSystem:   req.ScoringSystem,
		ExpedientNumber: req.ExpedientNumber,
		Deadline:        req.Deadline,
		TenderPageUrl:   req.TenderPageUrl,
		SummaryUrl:      req.SummaryUrl,
		AdminUrl:        req.AdminUrl,
		TechUrl:         req.TechUrl,
		Status:          entity.StatusPending,
	}

	// The three uploads run concurrently; each slot keeps a pre-resolved URL
	// from a discovery run when no fresh file was attached.
	g, gctx := errgroup.WithContext(ctx)
	upload := func(prefix string, file *dto.UploadedFile, slot *string) {
		if file == nil {
			return
		}
		g.Go(func() error {
			publicUrl, err := s.store.Upload(gctx, prefix, file.FileName, file.ContentType, file.Data)
			if err != nil {
				return err
			}
			*slot = publicUrl
			return nil
		})
	}
	upload(storage.PrefixSummary, summary, &tender.SummaryUrl)
	upload(storage.PrefixAdmin, admin, &tender.AdminUrl)
	upload(storage.PrefixTech, tech, &tender.TechUrl)
	if err := g.Wait(); err != nil {
		return nil, serverutils.NewUpstreamError("no se pudo subir el documento: " + err.Error())
	}

	if err := uow.TenderRepository().Create(ctx, tender); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TenderCreated, tender.Id, map[string]interface{}{
		"name": tender.Name,
	})

	return &dto.CreateTenderResponse{Id: tender.Id}, nil
}

func (s *tenderService) Show(ctx context.Context, id uuid.UUID) (*dto.TenderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tender, err := uow.TenderRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if tender == nil {
		return nil, serverutils.NewNotFound("licitación no encontrada")
	}
	return toTenderResponse(tender), nil
}

func (s *tenderService) UpdateStatus(ctx context.Context, req *dto.UpdateStatusRequest) (*dto.TenderResponse, error) {
	status := entity.TenderStatus(req.Status)
	if !status.IsValid() {
		return nil, serverutils.NewBadRequest("estado desconocido: " + req.Status)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	tender, err := uow.TenderRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if tender == nil {
		return nil, serverutils.NewNotFound("licitación no encontrada")
	}

	tender.Status = status
	if err := uow.TenderRepository().Save(ctx, tender); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TenderStatusChanged, tender.Id, map[string]interface{}{
		"status": string(status),
	})

	return toTenderResponse(tender), nil
}

func (s *tenderService) Analyze(ctx context.Context, id uuid.UUID) (*dto.TenderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tender, err := uow.TenderRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if tender == nil {
		return nil, serverutils.NewNotFound("licitación no encontrada")
	}

	rules, err := s.rulesService.Current(ctx)
	if err != nil {
		return nil, err
	}

	docs := s.collectDocuments(ctx, tender)
	analysis, err := s.ai.AnalyzeTender(ctx, gemini.AnalysisRequest{
		Name:            tender.Name,
		ExpedientNumber: tender.ExpedientNumber,
		Budget:          tender.Budget,
		Rules:           rules,
		Documents:       docs,
	})
	if err != nil {
		if errors.Is(err, gemini.ErrMissingApiKey) {
			return nil, serverutils.NewConfigError(err.Error())
		}
		return nil, serverutils.NewDataError("el análisis ha fallado: " + err.Error())
	}

	// Re-analysis replaces the previous result wholesale; the decision drives
	// the lifecycle state.
	tender.AiAnalysis = analysis
	tender.Status = entity.StatusForDecision(analysis.Decision)
	if err := uow.TenderRepository().Save(ctx, tender); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TenderAnalyzed, tender.Id, map[string]interface{}{
		"decision": string(analysis.Decision),
		"status":   string(tender.Status),
	})

	return toTenderResponse(tender), nil
}

func (s *tenderService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tender, err := uow.TenderRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if tender == nil {
		return serverutils.NewNotFound("licitación no encontrada")
	}

	// Objects go first; a failed object delete is logged but never blocks
	// removing the row.
	for _, publicUrl := range []string{tender.SummaryUrl, tender.AdminUrl, tender.TechUrl} {
		if publicUrl == "" {
			continue
		}
		if err := s.store.Delete(ctx, publicUrl); err != nil {
			s.logger.Warn("tender", "stored object not deleted", map[string]interface{}{
				"url":   publicUrl,
				"error": err.Error(),
			})
		}
	}

	if err := uow.TenderRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvent(ctx, events.TenderDeleted, id, nil)
	return nil
}

// collectDocuments pulls the stored binaries back for the analysis prompt.
// A missing or unreadable object costs a warning, not the whole run.
func (s *tenderService) collectDocuments(ctx context.Context, tender *entity.Tender) []gemini.DocumentPart {
	slots := []struct {
		label     string
		publicUrl string
	}{
		{"resumen", tender.SummaryUrl},
		{"pcap", tender.AdminUrl},
		{"ppt", tender.TechUrl},
	}

	docs := make([]gemini.DocumentPart, 0, len(slots))
	for _, slot := range slots {
		if slot.publicUrl == "" {
			continue
		}
		data, contentType, err := s.store.Download(ctx, slot.publicUrl)
		if err != nil {
			s.logger.Warn("tender", "stored document unavailable for analysis", map[string]interface{}{
				"slot":  slot.label,
				"url":   slot.publicUrl,
				"error": err.Error(),
			})
			continue
		}
		docs = append(docs, gemini.DocumentPart{
			Name:     slot.label + ".pdf",
			MimeType: contentType,
			Data:     data,
		})
	}
	return docs
}

func (s *tenderService) publishEvent(ctx context.Context, eventType string, id uuid.UUID, data map[string]interface{}) {
	event := events.NewTenderEvent(eventType, id.String(), data)
	payload, err := json.Marshal(dto.TenderEventMessage{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("tender", "event not published", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func toTenderResponse(tender *entity.Tender) *dto.TenderResponse {
	return &dto.TenderResponse{
		Id:              tender.Id,
		Name:            tender.Name,
		Budget:          tender.Budget,
		ScoringSystem:   tender.ScoringSystem,
		ExpedientNumber: tender.ExpedientNumber,
		Deadline:        tender.Deadline,
		TenderPageUrl:   tender.TenderPageUrl,
		SummaryUrl:      tender.SummaryUrl,
		AdminUrl:        tender.AdminUrl,
		TechUrl:         tender.TechUrl,
		Status:          tender.Status,
		StatusLabel:     tender.Status.Label(),
		AiAnalysis:      tender.AiAnalysis,
		CreatedAt:       tender.CreatedAt,
		UpdatedAt:       tender.UpdatedAt,
	}
}
