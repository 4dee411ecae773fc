package mapper

import (
	"encoding/json"
	"time"

	"licitaciones-ai-be/internal/entity"
	"licitaciones-ai-be/internal/model"
)

type TenderMapper struct{}

func NewTenderMapper() *TenderMapper {
	return &TenderMapper{}
}

func (m *TenderMapper) ToEntity(t *model.Tender) *entity.Tender {
	if t == nil {
		return nil
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	var analysis *entity.AnalysisResult
	if len(t.AiAnalysis) > 0 {
		var a entity.AnalysisResult
		// An unreadable stored analysis degrades to "no analysis yet"; it is
		// replaced wholesale on the next run anyway.
		if err := json.Unmarshal(t.AiAnalysis, &a); err == nil {
			analysis = &a
		}
	}

	status := entity.TenderStatus(t.Status)
	if !status.IsValid() {
		status = entity.StatusPending
	}

	return &entity.Tender{
		Id:              t.Id,
		Name:            t.Name,
		Budget:          t.Budget,
		ScoringSystem:   t.ScoringSystem,
		ExpedientNumber: t.ExpedientNumber,
		Deadline:        t.Deadline,
		TenderPageUrl:   t.TenderPageUrl,
		SummaryUrl:      t.SummaryUrl,
		AdminUrl:        t.AdminUrl,
		TechUrl:         t.TechUrl,
		Status:          status,
		AiAnalysis:      analysis,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *TenderMapper) ToModel(t *entity.Tender) *model.Tender {
	if t == nil {
		return nil
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	var analysisJson []byte
	if t.AiAnalysis != nil {
		analysisJson, _ = json.Marshal(t.AiAnalysis)
	}

	return &model.Tender{
		Id:              t.Id,
		Name:            t.Name,
		Budget:          t.Budget,
		ScoringSystem:   t.ScoringSystem,
		ExpedientNumber: t.ExpedientNumber,
		Deadline:        t.Deadline,
		TenderPageUrl:   t.TenderPageUrl,
		SummaryUrl:      t.SummaryUrl,
		AdminUrl:        t.AdminUrl,
		TechUrl:         t.TechUrl,
		Status:          string(t.Status),
		AiAnalysis:      analysisJson,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *TenderMapper) ToEntities(tenders []*model.Tender) []*entity.Tender {
	entities := make([]*entity.Tender, len(tenders))
	for i, t := range tenders {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
