package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Tender struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string    `gorm:"type:varchar(512);not null"`
	Budget          string    `gorm:"type:varchar(255)"`
	ScoringSystem   string    `gorm:"type:text"`
	ExpedientNumber string    `gorm:"type:varchar(255);index"`
	Deadline        string    `gorm:"type:varchar(64)"`
	TenderPageUrl   string    `gorm:"type:text"`

	SummaryUrl string `gorm:"type:text"`
	AdminUrl   string `gorm:"type:text"`
	TechUrl    string `gorm:"type:text"`

	Status     string         `gorm:"type:varchar(32);not null;index"`
	AiAnalysis datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Tender) TableName() string {
	return "tenders"
}
