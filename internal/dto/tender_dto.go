package dto

import (
	"time"

	"github.com/google/uuid"

	"licitaciones-ai-be/internal/entity"
)

type CreateTenderRequest struct {
	Name            string `form:"name" json:"name" validate:"required"`
	Budget          string `form:"budget" json:"budget"`
	ScoringSystem   string `form:"scoring_system" json:"scoring_system"`
	ExpedientNumber string `form:"expedient_number" json:"expedient_number"`
	Deadline        string `form:"deadline" json:"deadline"`
	TenderPageUrl   string `form:"tender_page_url" json:"tender_page_url"`

	// URLs already resolved by a discovery run. Each one is used only when no
	// fresh file arrives for the same slot.
	SummaryUrl string `form:"summary_url" json:"summary_url"`
	AdminUrl   string `form:"admin_url" json:"admin_url"`
	TechUrl    string `form:"tech_url" json:"tech_url"`
}

type CreateTenderResponse struct {
	Id uuid.UUID `json:"id"`
}

type TenderResponse struct {
	Id              uuid.UUID              `json:"id"`
	Name            string                 `json:"name"`
	Budget          string                 `json:"budget"`
	ScoringSystem   string                 `json:"scoring_system"`
	ExpedientNumber string                 `json:"expedient_number"`
	Deadline        string                 `json:"deadline"`
	TenderPageUrl   string                 `json:"tender_page_url"`
	SummaryUrl      string                 `json:"summary_url"`
	AdminUrl        string                 `json:"admin_url"`
	TechUrl         string                 `json:"tech_url"`
	Status          entity.TenderStatus    `json:"status"`
	StatusLabel     string                 `json:"status_label"`
	AiAnalysis      *entity.AnalysisResult `json:"ai_analysis"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       *time.Time             `json:"updated_at"`
}

// ListTendersRequest carries the board and archive view filters. Sort only
// applies to the deadline column; the default listing is created_at DESC.
type ListTendersRequest struct {
	Expedient string `query:"expedient"`
	Name      string `query:"name"`
	Status    string `query:"status"`
	Sort      string `query:"sort" validate:"omitempty,oneof=asc desc"`
}

type UpdateStatusRequest struct {
	Id     uuid.UUID
	Status string `json:"status" validate:"required"`
}
