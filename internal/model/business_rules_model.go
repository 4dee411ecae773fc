package model

import "time"

// BusinessRules is a single-row table keyed by a constant id.
type BusinessRules struct {
	Id        string    `gorm:"type:varchar(64);primaryKey"`
	Content   string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (BusinessRules) TableName() string {
	return "business_rules"
}

// BusinessRulesId is the constant key of the single rules row.
const BusinessRulesId = "default"
