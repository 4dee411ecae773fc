package implementation

import (
	"context"
	"errors"

	"licitaciones-ai-be/internal/entity"
	"licitaciones-ai-be/internal/mapper"
	"licitaciones-ai-be/internal/model"
	"licitaciones-ai-be/internal/repository/contract"
	"licitaciones-ai-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TenderMapper
}

func NewTenderRepository(db *gorm.DB) contract.TenderRepository {
	return &TenderRepositoryImpl{
		db:     db,
		mapper: mapper.NewTenderMapper(),
	}
}

func (r *TenderRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TenderRepositoryImpl) Create(ctx context.Context, tender *entity.Tender) error {
	m := r.mapper.ToModel(tender)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*tender = *r.mapper.ToEntity(m)
	return nil
}

func (r *TenderRepositoryImpl) Save(ctx context.Context, tender *entity.Tender) error {
	m := r.mapper.ToModel(tender)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*tender = *r.mapper.ToEntity(m)
	return nil
}

func (r *TenderRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Tender{}, id).Error
}

func (r *TenderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tender, error) {
	var m model.Tender
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TenderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tender, error) {
	var models []*model.Tender
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TenderRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Tender{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
