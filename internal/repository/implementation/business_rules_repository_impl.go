package implementation

import (
	"context"
	"errors"

	"licitaciones-ai-be/internal/model"
	"licitaciones-ai-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BusinessRulesRepositoryImpl struct {
	db *gorm.DB
}

func NewBusinessRulesRepository(db *gorm.DB) contract.BusinessRulesRepository {
	return &BusinessRulesRepositoryImpl{db: db}
}

func (r *BusinessRulesRepositoryImpl) Get(ctx context.Context) (string, error) {
	var m model.BusinessRules
	err := r.db.WithContext(ctx).First(&m, "id = ?", model.BusinessRulesId).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return m.Content, nil
}

func (r *BusinessRulesRepositoryImpl) Set(ctx context.Context, content string) error {
	m := model.BusinessRules{
		Id:      model.BusinessRulesId,
		Content: content,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(&m).Error
}
